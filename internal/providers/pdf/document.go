package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/quickbill/quickbill/internal/document/domain"
	"github.com/quickbill/quickbill/internal/document/format"
)

var typeTitles = map[domain.DocumentType]string{
	domain.TypeInvoice:       "Invoice",
	domain.TypeQuote:         "Quote",
	domain.TypeEstimate:      "Estimate",
	domain.TypeReceipt:       "Receipt",
	domain.TypeProforma:      "Proforma Invoice",
	domain.TypePurchaseOrder: "Purchase Order",
	domain.TypeCreditNote:    "Credit Note",
	domain.TypeTimesheet:     "Timesheet",
}

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) GenerateDocument(ctx context.Context, doc domain.Document) (io.Reader, error) {
	currency := doc.Settings.Data().Currency
	from := doc.From.Data()
	to := doc.To.Data()

	title, ok := typeTitles[doc.Type]
	if !ok {
		title = "Document"
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, title, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, doc.Number, props.Text{
			Size:  12,
			Align: align.Right,
			Top:   4,
		}),
	)

	// Document meta
	dueDate := ""
	if doc.DueDate != nil {
		dueDate = *doc.DueDate
	}
	metaCol := col.New(6).Add(
		text.New("Date of issue: "+format.Date(doc.IssueDate), props.Text{Top: 0}),
	)
	if dueDate != "" {
		metaCol.Add(text.New("Date due: "+format.Date(dueDate), props.Text{Top: 4}))
	}
	m.AddRow(16, metaCol, col.New(6))

	// Addresses
	m.AddRow(40,
		col.New(6).Add(
			text.New(from.Name, props.Text{Style: fontstyle.Bold}),
			text.New(addressLine(from.Address, from.City, from.State, from.Zip), props.Text{Top: 5}),
			text.New(from.Email, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold}),
			text.New(to.Name, props.Text{Top: 5}),
			text.New(addressLine(to.Address, to.City, to.State, to.Zip), props.Text{Top: 10}),
			text.New(to.Email, props.Text{Top: 15}),
		),
	)

	// Custom fields
	for i, field := range doc.CustomFields.Data() {
		m.AddRow(8,
			text.NewCol(12, field.Label+": "+field.Value, props.Text{Size: 9, Top: float64(i)}),
		)
	}

	// Table Header
	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	// Items
	for _, item := range doc.Items {
		m.AddRow(12,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, formatQuantity(item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, format.Money(item.Rate, currency), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, format.Money(item.Amount, currency), props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Footer Totals
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, format.Money(doc.Subtotal, currency), props.Text{Size: 9, Align: align.Right}),
	)
	if doc.DiscountTotal > 0 {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, "-"+format.Money(doc.DiscountTotal, currency), props.Text{Size: 9, Align: align.Right}),
		)
	}
	if doc.TaxTotal > 0 {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Tax", props.Text{Size: 9}),
			text.NewCol(2, format.Money(doc.TaxTotal, currency), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, format.Money(doc.Total, currency), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if doc.Notes != "" {
		m.AddRow(20,
			text.NewCol(12, doc.Notes, props.Text{Size: 8, Top: 6}),
		)
	}
	if doc.Terms != "" {
		m.AddRow(20,
			text.NewCol(12, doc.Terms, props.Text{Size: 8, Top: 6}),
		)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(out.GetBytes()), nil
}

func formatQuantity(v float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	if s == "" {
		return "0"
	}
	return s
}

func addressLine(address, city, state, zip string) string {
	parts := make([]string, 0, 3)
	if address != "" {
		parts = append(parts, address)
	}
	if city != "" || state != "" {
		parts = append(parts, strings.Trim(city+", "+state, ", "))
	}
	if zip != "" {
		parts = append(parts, zip)
	}
	return strings.Join(parts, ", ")
}
