package domain

import (
	"context"

	"github.com/quickbill/quickbill/pkg/db/pagination"
)

type CreateRequest struct {
	Type DocumentType  `json:"type"`
	From *BusinessInfo `json:"from,omitempty"`
	To   *Client       `json:"to,omitempty"`
}

type ListRequest struct {
	pagination.Pagination
	Status *DocumentStatus `form:"status"`
	Type   *DocumentType   `form:"type"`
}

type ListResponse struct {
	pagination.PageInfo
	Documents []Document `json:"documents"`
}

type UpdateRequest struct {
	Type         *DocumentType  `json:"type,omitempty"`
	From         *BusinessInfo  `json:"from,omitempty"`
	To           *Client        `json:"to,omitempty"`
	IssueDate    *string        `json:"issue_date,omitempty"`
	DueDate      *string        `json:"due_date,omitempty"`
	Notes        *string        `json:"notes,omitempty"`
	Terms        *string        `json:"terms,omitempty"`
	CustomFields *[]CustomField `json:"custom_fields,omitempty"`
	Settings     *Settings      `json:"settings,omitempty"`
}

type AddLineItemRequest struct {
	Description  string       `json:"description"`
	Quantity     *float64     `json:"quantity,omitempty"`
	Rate         float64      `json:"rate"`
	TaxRate      *float64     `json:"tax_rate,omitempty"`
	Discount     *float64     `json:"discount,omitempty"`
	DiscountType DiscountType `json:"discount_type,omitempty"`
}

// LineItemPatch is a partial line-item edit. Set fields are applied, unset
// fields keep their current value.
type LineItemPatch struct {
	Description  *string       `json:"description,omitempty"`
	Quantity     *float64      `json:"quantity,omitempty"`
	Rate         *float64      `json:"rate,omitempty"`
	TaxRate      *float64      `json:"tax_rate,omitempty"`
	Discount     *float64      `json:"discount,omitempty"`
	DiscountType *DiscountType `json:"discount_type,omitempty"`
}

type StatusRequest struct {
	Status     DocumentStatus `json:"status"`
	PaidAmount *float64       `json:"paid_amount,omitempty"`
	PaidDate   *string        `json:"paid_date,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Document, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (*Document, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Document, error)
	Delete(ctx context.Context, id string) error

	AddLineItem(ctx context.Context, docID string, req AddLineItemRequest) (*Document, error)
	UpdateLineItem(ctx context.Context, docID, itemID string, patch LineItemPatch) (*Document, error)
	RemoveLineItem(ctx context.Context, docID, itemID string) (*Document, error)

	UpdateStatus(ctx context.Context, docID string, req StatusRequest) (*Document, error)
}
