package service

import (
	"context"

	"github.com/quickbill/quickbill/internal/document/builder"
	"github.com/quickbill/quickbill/internal/document/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Line-item mutations all follow the same shape: load the current item
// snapshot, apply one pure builder operation, then persist the resulting
// sequence wholesale together with freshly computed totals.

func (s *Service) AddLineItem(ctx context.Context, docID string, req domain.AddLineItemRequest) (*domain.Document, error) {
	return s.mutateItems(ctx, docID, func(items []domain.LineItem) ([]domain.LineItem, error) {
		return builder.Append(items, builder.FromRequest(req)), nil
	})
}

func (s *Service) UpdateLineItem(ctx context.Context, docID, itemID string, patch domain.LineItemPatch) (*domain.Document, error) {
	return s.mutateItems(ctx, docID, func(items []domain.LineItem) ([]domain.LineItem, error) {
		next, found := builder.ApplyEdit(items, itemID, patch)
		if !found {
			return nil, domain.ErrItemNotFound
		}
		return next, nil
	})
}

func (s *Service) RemoveLineItem(ctx context.Context, docID, itemID string) (*domain.Document, error) {
	return s.mutateItems(ctx, docID, func(items []domain.LineItem) ([]domain.LineItem, error) {
		next, found := builder.Remove(items, itemID)
		if !found {
			return nil, domain.ErrItemNotFound
		}
		return next, nil
	})
}

func (s *Service) mutateItems(ctx context.Context, id string, op func([]domain.LineItem) ([]domain.LineItem, error)) (*domain.Document, error) {
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

		items, err := s.loadItems(ctx, tx, docID)
		if err != nil {
			return err
		}

		next, err := op(items)
		if err != nil {
			return err
		}

		if err := s.replaceItems(ctx, tx, doc, next); err != nil {
			return err
		}

		doc.Items = next
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("line items updated",
		zap.String("document_id", updated.ID.String()),
		zap.Int("count", len(updated.Items)),
		zap.Float64("total", updated.Total),
	)
	return updated, nil
}
