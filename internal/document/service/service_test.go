package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quickbill/quickbill/internal/clock"
	"github.com/quickbill/quickbill/internal/config"
	"github.com/quickbill/quickbill/internal/document/domain"
	"github.com/quickbill/quickbill/pkg/db/pagination"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Document{}, &domain.LineItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	defaults, err := config.NewDefaultsHolder()
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC))

	svc := NewService(ServiceParam{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    fake,
		Defaults: defaults,
	})
	return svc, fake, conn
}

func TestCreateAssignsNumberAndDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)

	assert.Equal(t, domain.TypeInvoice, doc.Type)
	assert.Equal(t, domain.StatusDraft, doc.Status)
	assert.Equal(t, "INV-2026-001", doc.Number)
	assert.Equal(t, "2026-02-07", doc.IssueDate)
	require.NotNil(t, doc.DueDate)
	assert.Equal(t, "2026-03-09", *doc.DueDate)
	assert.Equal(t, "USD", doc.Settings.Data().Currency)

	// Every new document starts with one blank line.
	require.Len(t, doc.Items, 1)
	assert.Equal(t, 1.0, doc.Items[0].Quantity)
	assert.Equal(t, 0.0, doc.Items[0].Rate)
	assert.NotEmpty(t, doc.Items[0].ID)
}

func TestCreateSequencesPerType(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)
	second, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)
	quote, err := svc.Create(ctx, domain.CreateRequest{Type: domain.TypeQuote})
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-001", first.Number)
	assert.Equal(t, "INV-2026-002", second.Number)
	assert.Equal(t, "QUO-2026-001", quote.Number)
}

func TestCreateAfterDeleteContinuesNumbering(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)
	second, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-001", first.Number)
	assert.Equal(t, "INV-2026-002", second.Number)

	// Deleting an earlier document leaves a gap; the next create must not
	// re-issue the surviving document's number.
	require.NoError(t, svc.Delete(ctx, first.ID.String()))

	third, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-003", third.Number)
}

func TestTypeChangeAfterDeleteContinuesNumbering(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	firstQuote, err := svc.Create(ctx, domain.CreateRequest{Type: domain.TypeQuote})
	require.NoError(t, err)
	keptQuote, err := svc.Create(ctx, domain.CreateRequest{Type: domain.TypeQuote})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, firstQuote.ID.String()))

	invoice, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)

	quote := domain.TypeQuote
	updated, err := svc.Update(ctx, invoice.ID.String(), domain.UpdateRequest{Type: &quote})
	require.NoError(t, err)
	assert.Equal(t, "QUO-2026-003", updated.Number)
	assert.NotEqual(t, keptQuote.Number, updated.Number)
}

func TestCreateReceiptHasNoDueDate(t *testing.T) {
	svc, _, _ := newTestService(t)

	doc, err := svc.Create(context.Background(), domain.CreateRequest{Type: domain.TypeReceipt})
	require.NoError(t, err)
	assert.Nil(t, doc.DueDate)
	assert.Equal(t, "REC-2026-001", doc.Number)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Type: "memo"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestLineItemMutationsRecomputeTotals(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)
	id := doc.ID.String()

	discount := 10.0
	taxRate := 5.0
	quantity := 2.0
	doc, err = svc.AddLineItem(ctx, id, domain.AddLineItemRequest{
		Description: "Website Design & Development",
		Quantity:    &quantity,
		Rate:        500,
		Discount:    &discount,
		TaxRate:     &taxRate,
	})
	require.NoError(t, err)

	require.Len(t, doc.Items, 2)
	added := doc.Items[1]
	assert.Equal(t, 900.0, added.Amount)
	assert.Equal(t, 1000.0, doc.Subtotal)
	assert.Equal(t, 100.0, doc.DiscountTotal)
	assert.Equal(t, 45.0, doc.TaxTotal)
	assert.Equal(t, 945.0, doc.Total)

	newRate := 250.0
	doc, err = svc.UpdateLineItem(ctx, id, added.ID, domain.LineItemPatch{Rate: &newRate})
	require.NoError(t, err)
	assert.Equal(t, 500.0, doc.Subtotal)
	assert.Equal(t, 50.0, doc.DiscountTotal)
	assert.Equal(t, 22.5, doc.TaxTotal)
	assert.Equal(t, 472.5, doc.Total)

	doc, err = svc.RemoveLineItem(ctx, id, added.ID)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, 0.0, doc.Subtotal)
	assert.Equal(t, 0.0, doc.Total)
}

func TestUpdateLineItemUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)

	rate := 100.0
	_, err = svc.UpdateLineItem(ctx, doc.ID.String(), "missing", domain.LineItemPatch{Rate: &rate})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemOrderSurvivesReload(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)
	id := doc.ID.String()

	for _, desc := range []string{"first", "second", "third"} {
		_, err = svc.AddLineItem(ctx, id, domain.AddLineItemRequest{Description: desc, Rate: 10})
		require.NoError(t, err)
	}

	reloaded, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 4)
	assert.Equal(t, "first", reloaded.Items[1].Description)
	assert.Equal(t, "second", reloaded.Items[2].Description)
	assert.Equal(t, "third", reloaded.Items[3].Description)
}

func TestUpdateTypeRegeneratesNumber(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-001", doc.Number)

	estimate := domain.TypeEstimate
	updated, err := svc.Update(ctx, doc.ID.String(), domain.UpdateRequest{Type: &estimate})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeEstimate, updated.Type)
	assert.Equal(t, "EST-2026-001", updated.Number)
}

func TestUpdateStatusPaidDefaults(t *testing.T) {
	svc, fake, _ := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)

	_, err = svc.AddLineItem(ctx, doc.ID.String(), domain.AddLineItemRequest{Description: "Consulting", Rate: 300})
	require.NoError(t, err)

	fake.Advance(48 * time.Hour)
	updated, err := svc.UpdateStatus(ctx, doc.ID.String(), domain.StatusRequest{Status: domain.StatusPaid})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPaid, updated.Status)
	require.NotNil(t, updated.PaidAmount)
	assert.Equal(t, 300.0, *updated.PaidAmount)
	require.NotNil(t, updated.PaidDate)
	assert.Equal(t, "2026-02-09", *updated.PaidDate)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateStatus(context.Background(), "1", domain.StatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestGetByIDErrors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(ctx, "123456789")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteRemovesDocumentAndItems(t *testing.T) {
	svc, _, conn := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, domain.CreateRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, doc.ID.String()))

	_, err = svc.GetByID(ctx, doc.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int64
	require.NoError(t, conn.Model(&domain.LineItem{}).Where("document_id = ?", doc.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc, fake, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, domain.CreateRequest{})
		require.NoError(t, err)
		fake.Advance(time.Hour)
	}
	_, err := svc.Create(ctx, domain.CreateRequest{Type: domain.TypeQuote})
	require.NoError(t, err)
	fake.Advance(time.Hour)

	invoice := domain.TypeInvoice
	resp, err := svc.List(ctx, domain.ListRequest{Type: &invoice})
	require.NoError(t, err)
	assert.Len(t, resp.Documents, 3)
	assert.False(t, resp.HasMore)

	resp, err = svc.List(ctx, domain.ListRequest{
		Pagination: pagination.Pagination{PageSize: 2},
		Type:       &invoice,
	})
	require.NoError(t, err)
	require.Len(t, resp.Documents, 2)
	assert.True(t, resp.HasMore)
	require.NotEmpty(t, resp.NextPageToken)

	next, err := svc.List(ctx, domain.ListRequest{
		Pagination: pagination.Pagination{PageSize: 2, PageToken: resp.NextPageToken},
		Type:       &invoice,
	})
	require.NoError(t, err)
	assert.Len(t, next.Documents, 1)
	assert.False(t, next.HasMore)
}

func TestListRejectsBadFilters(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	badStatus := domain.DocumentStatus("archived")
	_, err := svc.List(ctx, domain.ListRequest{Status: &badStatus})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	badType := domain.DocumentType("memo")
	_, err = svc.List(ctx, domain.ListRequest{Type: &badType})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}
