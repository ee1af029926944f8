// Package domain contains persistence models for billable documents.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// DocumentType is the business-document variant. It affects labeling and
// number prefixes only, never arithmetic.
type DocumentType string

const (
	TypeInvoice       DocumentType = "invoice"
	TypeQuote         DocumentType = "quote"
	TypeEstimate      DocumentType = "estimate"
	TypeReceipt       DocumentType = "receipt"
	TypeProforma      DocumentType = "proforma"
	TypePurchaseOrder DocumentType = "purchase-order"
	TypeCreditNote    DocumentType = "credit-note"
	TypeTimesheet     DocumentType = "timesheet"
)

// KnownTypes lists every supported document type.
var KnownTypes = []DocumentType{
	TypeInvoice,
	TypeQuote,
	TypeEstimate,
	TypeReceipt,
	TypeProforma,
	TypePurchaseOrder,
	TypeCreditNote,
	TypeTimesheet,
}

// Valid reports whether t is one of the supported document types.
func (t DocumentType) Valid() bool {
	for _, known := range KnownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DocumentStatus represents document lifecycle states.
type DocumentStatus string

const (
	StatusDraft   DocumentStatus = "draft"
	StatusSent    DocumentStatus = "sent"
	StatusPaid    DocumentStatus = "paid"
	StatusOverdue DocumentStatus = "overdue"
	StatusPartial DocumentStatus = "partial"
)

// Valid reports whether s is one of the supported lifecycle states.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusPartial:
		return true
	}
	return false
}

// DiscountType governs how a line item's discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// BusinessInfo is the issuing party block printed on a document.
type BusinessInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

// Client is the receiving party block.
type Client struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Settings carries presentation options. They never influence totals.
type Settings struct {
	Currency     string `json:"currency"`
	Template     string `json:"template"`
	PrimaryColor string `json:"primary_color"`
	AccentColor  string `json:"accent_color"`
	Font         string `json:"font"`
}

// CustomField is an arbitrary label/value pair printed on the document.
type CustomField struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// LineItem is one billable row. Amount is derived: quantity times rate,
// reduced by the item's own discount, never negative. It must be recomputed
// whenever quantity, rate, discount or discount type changes.
type LineItem struct {
	ID           string       `gorm:"primaryKey;type:text" json:"id"`
	DocumentID   snowflake.ID `gorm:"not null;index" json:"-"`
	Position     int          `gorm:"not null" json:"-"`
	Description  string       `gorm:"type:text" json:"description"`
	Quantity     float64      `gorm:"not null;default:1" json:"quantity"`
	Rate         float64      `gorm:"not null;default:0" json:"rate"`
	Amount       float64      `gorm:"not null;default:0" json:"amount"`
	TaxRate      *float64     `gorm:"type:numeric" json:"tax_rate,omitempty"`
	Discount     *float64     `gorm:"type:numeric" json:"discount,omitempty"`
	DiscountType DiscountType `gorm:"type:text" json:"discount_type,omitempty"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "document_line_items" }

// EffectiveDiscountType resolves the discount interpretation, defaulting to
// percentage when a discount is present and the type is unset.
func (i LineItem) EffectiveDiscountType() DiscountType {
	if i.DiscountType == DiscountFlat {
		return DiscountFlat
	}
	return DiscountPercentage
}

// Document is a billable document with its denormalized totals. Totals are
// always recomputed from the full item sequence on every mutation; they are
// never accumulated incrementally.
type Document struct {
	ID     snowflake.ID   `gorm:"primaryKey" json:"id"`
	Type   DocumentType   `gorm:"type:text;not null;default:'invoice'" json:"type"`
	Number string         `gorm:"type:text;not null;uniqueIndex" json:"number"`
	Status DocumentStatus `gorm:"type:text;not null;default:'draft'" json:"status"`

	From datatypes.JSONType[BusinessInfo] `gorm:"column:from_party" json:"from"`
	To   datatypes.JSONType[Client]       `gorm:"column:to_party" json:"to"`

	IssueDate string  `gorm:"type:text;not null" json:"issue_date"`
	DueDate   *string `gorm:"type:text" json:"due_date,omitempty"`

	Subtotal      float64 `gorm:"not null;default:0" json:"subtotal"`
	DiscountTotal float64 `gorm:"not null;default:0" json:"discount_total"`
	TaxTotal      float64 `gorm:"not null;default:0" json:"tax_total"`
	Total         float64 `gorm:"not null;default:0" json:"total"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`
	Terms string `gorm:"type:text" json:"terms,omitempty"`

	CustomFields datatypes.JSONType[[]CustomField] `gorm:"column:custom_fields" json:"custom_fields"`
	Settings     datatypes.JSONType[Settings]      `gorm:"column:settings" json:"settings"`

	PaidAmount *float64 `gorm:"type:numeric" json:"paid_amount,omitempty"`
	PaidDate   *string  `gorm:"type:text" json:"paid_date,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []LineItem `gorm:"-" json:"line_items"`
}

// TableName sets the database table name.
func (Document) TableName() string { return "documents" }
