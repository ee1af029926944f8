package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/quickbill/quickbill/internal/clock"
	"github.com/quickbill/quickbill/internal/config"
	"github.com/quickbill/quickbill/internal/document/builder"
	"github.com/quickbill/quickbill/internal/document/calc"
	"github.com/quickbill/quickbill/internal/document/domain"
	"github.com/quickbill/quickbill/internal/document/format"
	"github.com/quickbill/quickbill/pkg/db"
	"github.com/quickbill/quickbill/pkg/db/option"
	"github.com/quickbill/quickbill/pkg/db/pagination"
	"github.com/quickbill/quickbill/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const numberRetries = 3

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Defaults *config.DefaultsHolder
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID    *snowflake.Node
	clock    clock.Clock
	defaults *config.DefaultsHolder

	docrepo repository.Repository[domain.Document]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("document.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		defaults: p.Defaults,

		docrepo: repository.ProvideStore[domain.Document](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Document, error) {
	docType := req.Type
	if docType == "" {
		docType = domain.TypeInvoice
	}
	if !docType.Valid() {
		return nil, domain.ErrInvalidType
	}

	defaults := s.defaults.Get()
	now := s.clock.Now()
	issueDate := now.Format("2006-01-02")

	doc := domain.Document{
		ID:        s.genID.Generate(),
		Type:      docType,
		Status:    domain.StatusDraft,
		IssueDate: issueDate,
		Settings: datatypes.NewJSONType(domain.Settings{
			Currency:     defaults.Currency,
			Template:     defaults.Template,
			PrimaryColor: defaults.PrimaryColor,
			AccentColor:  defaults.AccentColor,
			Font:         defaults.Font,
		}),
		CustomFields: datatypes.NewJSONType([]domain.CustomField{}),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.From != nil {
		doc.From = datatypes.NewJSONType(*req.From)
	}
	if req.To != nil {
		doc.To = datatypes.NewJSONType(*req.To)
	}
	if docType != domain.TypeReceipt {
		due := now.AddDate(0, 0, defaults.DueDays).Format("2006-01-02")
		doc.DueDate = &due
	}

	items := []domain.LineItem{builder.NewLineItem()}

	if err := s.insertWithNumber(ctx, &doc, items, now); err != nil {
		return nil, err
	}

	s.log.Info("document created",
		zap.String("id", doc.ID.String()),
		zap.String("type", string(doc.Type)),
		zap.String("number", doc.Number),
	)

	doc.Items = items
	return &doc, nil
}

// insertWithNumber assigns the next per-type document number and inserts the
// document with its items. A concurrent writer can win the same sequence; the
// unique index on number surfaces that as a duplicate-key error. Each attempt
// runs in its own transaction (a failed INSERT aborts the surrounding
// transaction on postgres) and advances the candidate sequence, so racers
// converge instead of recomputing the same collision.
func (s *Service) insertWithNumber(ctx context.Context, doc *domain.Document, items []domain.LineItem, now time.Time) error {
	var lastErr error
	for attempt := int64(0); attempt < numberRetries; attempt++ {
		seq, err := s.nextSequence(ctx, s.db, doc.Type)
		if err != nil {
			return err
		}
		doc.Number = format.DocumentNumber(doc.Type, now, seq+attempt)

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.WithContext(ctx).Create(doc).Error; err != nil {
				return err
			}
			return s.replaceItems(ctx, tx, doc, items)
		})
		if err != nil {
			if db.IsDuplicateKeyErr(err) {
				lastErr = err
				continue
			}
			return err
		}

		return nil
	}
	return lastErr
}

// nextSequence allocates one past the highest sequence ever issued for the
// type. Deleting a document leaves a gap in the numbering; row counts would
// re-issue a taken number, so the surviving number suffixes are authoritative.
func (s *Service) nextSequence(ctx context.Context, tx *gorm.DB, docType domain.DocumentType) (int64, error) {
	var numbers []string
	err := tx.WithContext(ctx).
		Model(&domain.Document{}).
		Where("type = ?", docType).
		Pluck("number", &numbers).Error
	if err != nil {
		return 0, err
	}

	var highest int64
	for _, number := range numbers {
		if seq, ok := format.SequenceFromNumber(number); ok && seq > highest {
			highest = seq
		}
	}
	return highest + 1, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	filter := &domain.Document{}
	if req.Status != nil {
		if !req.Status.Valid() {
			return domain.ListResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = *req.Status
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return domain.ListResponse{}, domain.ErrInvalidType
		}
		filter.Type = *req.Type
	}

	limit := req.Limit()
	options := []option.QueryOption{
		option.WithSortBy(option.QuerySortBy{Field: "created_at", Desc: true, Allow: map[string]bool{"created_at": true}}),
		option.WithLimit(limit + 1),
	}
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return domain.ListResponse{}, domain.ErrInvalidRequest
		}
		cursorAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return domain.ListResponse{}, domain.ErrInvalidRequest
		}
		options = append(options, option.ApplyOperator(option.Condition{
			Field:    "created_at",
			Operator: option.LT,
			Value:    cursorAt,
		}))
	}

	rows, err := s.docrepo.Find(ctx, filter, options...)
	if err != nil {
		return domain.ListResponse{}, err
	}

	rows, pageInfo := pagination.BuildCursorPageInfo(rows, limit, func(d *domain.Document) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        d.ID.String(),
			CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		return token
	})

	docs := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, *row)
	}

	return domain.ListResponse{
		PageInfo:  *pageInfo,
		Documents: docs,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	doc, err := s.docrepo.FindOne(ctx, &domain.Document{ID: docID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	items, err := s.loadItems(ctx, s.db, docID)
	if err != nil {
		return nil, err
	}
	doc.Items = items
	return doc, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Document, error) {
	docID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var updated *domain.Document
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(ctx, tx, docID)
		if err != nil {
			return err
		}

		if req.Type != nil && *req.Type != doc.Type {
			if !req.Type.Valid() {
				return domain.ErrInvalidType
			}
			doc.Type = *req.Type
			// The number prefix follows the type; regenerate it.
			seq, err := s.nextSequence(ctx, tx, doc.Type)
			if err != nil {
				return err
			}
			doc.Number = format.DocumentNumber(doc.Type, s.clock.Now(), seq)
		}
		if req.From != nil {
			doc.From = datatypes.NewJSONType(*req.From)
		}
		if req.To != nil {
			doc.To = datatypes.NewJSONType(*req.To)
		}
		if req.IssueDate != nil {
			doc.IssueDate = *req.IssueDate
		}
		if req.DueDate != nil {
			doc.DueDate = req.DueDate
		}
		if req.Notes != nil {
			doc.Notes = *req.Notes
		}
		if req.Terms != nil {
			doc.Terms = *req.Terms
		}
		if req.CustomFields != nil {
			fields := *req.CustomFields
			for i := range fields {
				if fields[i].ID == "" {
					fields[i].ID = format.NewItemID()
				}
			}
			doc.CustomFields = datatypes.NewJSONType(fields)
		}
		if req.Settings != nil {
			doc.Settings = datatypes.NewJSONType(*req.Settings)
		}
		doc.UpdatedAt = s.clock.Now()

		if err := tx.WithContext(ctx).Save(doc).Error; err != nil {
			return err
		}

		items, err := s.loadItems(ctx, tx, docID)
		if err != nil {
			return err
		}
		doc.Items = items
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	docID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(ctx, tx, docID)
		if err != nil {
			return err
		}

		if err := tx.WithContext(ctx).
			Where("document_id = ?", docID).
			Delete(&domain.LineItem{}).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Delete(doc).Error
	})
}

func (s *Service) UpdateStatus(ctx context.Context, id string, req domain.StatusRequest) (*domain.Document, error) {
	if !req.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	docID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var updated *domain.Document
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadForUpdate(ctx, tx, docID)
		if err != nil {
			return err
		}

		doc.Status = req.Status
		if req.Status == domain.StatusPaid || req.Status == domain.StatusPartial {
			if req.PaidAmount != nil {
				doc.PaidAmount = req.PaidAmount
			} else if req.Status == domain.StatusPaid {
				total := doc.Total
				doc.PaidAmount = &total
			}
			if req.PaidDate != nil {
				doc.PaidDate = req.PaidDate
			} else {
				today := s.clock.Now().Format("2006-01-02")
				doc.PaidDate = &today
			}
		}
		doc.UpdatedAt = s.clock.Now()

		if err := tx.WithContext(ctx).Save(doc).Error; err != nil {
			return err
		}

		items, err := s.loadItems(ctx, tx, docID)
		if err != nil {
			return err
		}
		doc.Items = items
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("document status changed",
		zap.String("id", updated.ID.String()),
		zap.String("status", string(updated.Status)),
	)
	return updated, nil
}

func (s *Service) loadForUpdate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*domain.Document, error) {
	var doc domain.Document
	err := tx.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *Service) loadItems(ctx context.Context, tx *gorm.DB, docID snowflake.ID) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := tx.WithContext(ctx).
		Where("document_id = ?", docID).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(raw)
}

// replaceItems persists a fresh item snapshot wholesale and stores the
// recomputed totals on the document. Totals are never carried forward
// incrementally; they always derive from the full sequence being written.
func (s *Service) replaceItems(ctx context.Context, tx *gorm.DB, doc *domain.Document, items []domain.LineItem) error {
	if err := tx.WithContext(ctx).
		Where("document_id = ?", doc.ID).
		Delete(&domain.LineItem{}).Error; err != nil {
		return err
	}

	rows := make([]*domain.LineItem, 0, len(items))
	for i := range items {
		items[i].DocumentID = doc.ID
		items[i].Position = i
		rows = append(rows, &items[i])
	}
	if len(rows) > 0 {
		if err := tx.WithContext(ctx).Create(rows).Error; err != nil {
			return err
		}
	}

	totals := calc.Compute(items)
	doc.Subtotal = totals.Subtotal
	doc.DiscountTotal = totals.DiscountTotal
	doc.TaxTotal = totals.TaxTotal
	doc.Total = totals.Total
	doc.UpdatedAt = s.clock.Now()

	return tx.WithContext(ctx).Save(doc).Error
}
