package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/quickbill/quickbill/internal/document/domain"
	"github.com/quickbill/quickbill/internal/document/format"
)

const documentHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{typeLabel .Document.Type}} {{.Document.Number}}</title>
  <style>
    :root {
      --primary: {{.Theme.PrimaryColor}};
      --accent: {{.Theme.AccentColor}};
      --font: {{.Theme.FontFamily}}, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: var(--font);
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .document-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 60px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .header-left h1 {
      margin: 0;
      font-size: 24px;
      font-weight: 700;
      color: var(--primary);
    }
    .header-right {
      text-align: right;
      font-weight: 600;
      color: #8792a2;
      font-size: 16px;
    }
    .meta-grid {
      display: flex;
      justify-content: space-between;
      margin-bottom: 40px;
    }
    .col { flex: 1; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 6px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value {
      font-size: 14px;
      line-height: 1.5;
      color: #1a1f36;
    }
    table.items {
      width: 100%;
      border-collapse: collapse;
      margin-bottom: 30px;
    }
    table.items th {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      text-align: right;
      padding: 8px 0;
      border-bottom: 2px solid var(--primary);
    }
    table.items th.desc { text-align: left; }
    table.items td {
      font-size: 13px;
      padding: 10px 0;
      text-align: right;
      border-bottom: 1px solid #e3e8ee;
    }
    table.items td.desc { text-align: left; }
    .totals {
      margin-left: auto;
      width: 280px;
    }
    .total-row {
      display: flex;
      justify-content: space-between;
      padding: 6px 0;
      font-size: 13px;
    }
    .total-label { color: #8792a2; }
    .total-final {
      border-top: 2px solid var(--primary);
      font-weight: 700;
      font-size: 16px;
    }
    .total-final .total-value { color: var(--accent); }
    .footer {
      margin-top: 40px;
      font-size: 12px;
      color: #8792a2;
      line-height: 1.6;
    }
  </style>
</head>
<body>
  <div class="document-card">
    <div class="header">
      <div class="header-left">
        <h1>{{typeLabel .Document.Type}}</h1>
      </div>
      <div class="header-right">{{.Document.Number}}</div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">From</div>
        <div class="value">
          {{with .From}}{{.Name}}<br>{{.Address}}<br>{{.City}}{{if .State}}, {{.State}}{{end}} {{.Zip}}<br>{{.Email}}{{end}}
        </div>
      </div>
      <div class="col">
        <div class="label">Bill To</div>
        <div class="value">
          {{with .To}}{{.Name}}<br>{{if .Address}}{{.Address}}<br>{{end}}{{.Email}}{{end}}
        </div>
      </div>
      <div class="col">
        <div class="label">Issue Date</div>
        <div class="value">{{formatDate .Document.IssueDate}}</div>
        {{if .Document.DueDate}}
        <div class="label" style="margin-top: 12px;">Due Date</div>
        <div class="value">{{formatDate (deref .Document.DueDate)}}</div>
        {{end}}
      </div>
    </div>

    {{if .CustomFields}}
    <div class="meta-grid">
      {{range .CustomFields}}
      <div class="col">
        <div class="label">{{.Label}}</div>
        <div class="value">{{.Value}}</div>
      </div>
      {{end}}
    </div>
    {{end}}

    <table class="items">
      <thead>
        <tr>
          <th class="desc">Description</th>
          <th>Qty</th>
          <th>Rate</th>
          <th>Amount</th>
        </tr>
      </thead>
      <tbody>
        {{$currency := .Currency}}
        {{range .Document.Items}}
        <tr>
          <td class="desc">{{.Description}}</td>
          <td>{{formatQuantity .Quantity}}</td>
          <td>{{formatMoney .Rate $currency}}</td>
          <td>{{formatMoney .Amount $currency}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row">
        <span class="total-label">Subtotal</span>
        <span class="total-value">{{formatMoney .Document.Subtotal .Currency}}</span>
      </div>
      {{if gt .Document.DiscountTotal 0.0}}
      <div class="total-row">
        <span class="total-label">Discount</span>
        <span class="total-value">-{{formatMoney .Document.DiscountTotal .Currency}}</span>
      </div>
      {{end}}
      {{if gt .Document.TaxTotal 0.0}}
      <div class="total-row">
        <span class="total-label">Tax</span>
        <span class="total-value">{{formatMoney .Document.TaxTotal .Currency}}</span>
      </div>
      {{end}}
      <div class="total-row total-final">
        <span class="total-label" style="color: #1a1f36;">Total</span>
        <span class="total-value">{{formatMoney .Document.Total .Currency}}</span>
      </div>
    </div>

    {{if or .Document.Notes .Document.Terms}}
    <div class="footer">
      {{.Document.Notes}}
      {{if .Document.Terms}}<br><br>{{.Document.Terms}}{{end}}
    </div>
    {{end}}

  </div>
</body>
</html>
`

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
)

// fontFamilies maps settings font ids to CSS families.
var fontFamilies = map[string]string{
	"inter":        "Inter",
	"roboto":       "Roboto",
	"lato":         "Lato",
	"poppins":      "Poppins",
	"opensans":     "Open Sans",
	"montserrat":   "Montserrat",
	"playfair":     "Playfair Display",
	"merriweather": "Merriweather",
	"sourcesans":   "Source Sans 3",
	"raleway":      "Raleway",
}

var typeLabels = map[domain.DocumentType]string{
	domain.TypeInvoice:       "Invoice",
	domain.TypeQuote:         "Quote",
	domain.TypeEstimate:      "Estimate",
	domain.TypeReceipt:       "Receipt",
	domain.TypeProforma:      "Proforma Invoice",
	domain.TypePurchaseOrder: "Purchase Order",
	domain.TypeCreditNote:    "Credit Note",
	domain.TypeTimesheet:     "Timesheet",
}

// Theme is the sanitized presentation settings fed into the template.
type Theme struct {
	PrimaryColor string
	AccentColor  string
	FontFamily   string
}

// RenderInput carries one document and its resolved presentation.
type RenderInput struct {
	Document     domain.Document
	From         domain.BusinessInfo
	To           domain.Client
	CustomFields []domain.CustomField
	Currency     string
	Theme        Theme
}

// Renderer renders a document to standalone HTML for previews.
type Renderer interface {
	RenderHTML(doc domain.Document) (string, error)
}

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney":    format.Money,
		"formatDate":     format.Date,
		"formatQuantity": formatQuantity,
		"typeLabel":      typeLabel,
		"deref":          func(s *string) string { return *s },
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("document").Funcs(funcs).Parse(documentHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(doc domain.Document) (string, error) {
	settings := doc.Settings.Data()

	input := RenderInput{
		Document:     doc,
		From:         doc.From.Data(),
		To:           doc.To.Data(),
		CustomFields: doc.CustomFields.Data(),
		Currency:     settings.Currency,
		Theme: Theme{
			PrimaryColor: sanitizeColor(settings.PrimaryColor, "#1e40af"),
			AccentColor:  sanitizeColor(settings.AccentColor, "#10b981"),
			FontFamily:   sanitizeFont(settings.Font),
		},
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func formatQuantity(value float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
	if s == "" {
		return "0"
	}
	return s
}

func typeLabel(t domain.DocumentType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return "Document"
}

func sanitizeColor(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return fallback
}

func sanitizeFont(value string) string {
	if family, ok := fontFamilies[strings.ToLower(strings.TrimSpace(value))]; ok {
		return family
	}
	trimmed := strings.TrimSpace(value)
	if trimmed != "" && fontFamilyFilter.MatchString(trimmed) {
		return trimmed
	}
	return "Inter"
}
