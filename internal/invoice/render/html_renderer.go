package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	"github.com/flowbooks/flowbooks/pkg/money"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .invoice-card {
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
    }
    .header-right {
      text-align: right;
      font-weight: 600;
      color: #8792a2;
      font-size: 16px;
    }
    .status-badge {
      display: inline-block;
      margin-top: 8px;
      padding: 2px 10px;
      border-radius: 10px;
      background: #e3e8ee;
      font-size: 11px;
      text-transform: uppercase;
      letter-spacing: 0.3px;
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
    }
    .amount-section { margin-bottom: 40px; }
    .amount-large {
      font-size: 32px;
      font-weight: 700;
      margin-bottom: 4px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      margin-bottom: 30px;
    }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    td {
      padding: 16px 0;
      border-bottom: 1px solid #e3e8ee;
      font-size: 14px;
      vertical-align: top;
    }
    .td-right { text-align: right; }
    .totals {
      width: 100%;
      display: flex;
      flex-direction: column;
      align-items: flex-end;
    }
    .total-row {
      display: flex;
      justify-content: space-between;
      width: 280px;
      padding: 6px 0;
      font-size: 14px;
    }
    .total-label { color: #697386; }
    .total-value { text-align: right; font-weight: 500; }
    .total-final {
      border-top: 1px solid #e3e8ee;
      margin-top: 10px;
      padding-top: 10px;
      font-weight: 700;
      font-size: 16px;
    }
    .footer {
      margin-top: 60px;
      font-size: 12px;
      color: #8792a2;
      border-top: 1px solid #e3e8ee;
      padding-top: 20px;
      white-space: pre-line;
    }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <div class="header-left">
        <h1>Invoice</h1>
        <div class="label" style="margin-top: 12px;">Invoice number</div>
        <div class="value">{{.Invoice.Number}}</div>
        <div class="status-badge">{{.Invoice.Status}}</div>
      </div>
      <div class="header-right">
        {{.Profile.Name}}<br>
        {{if .Profile.Email}}<span class="value">{{deref .Profile.Email}}</span><br>{{end}}
        {{if .Profile.TaxID}}<span class="value">Tax ID: {{deref .Profile.TaxID}}</span>{{end}}
      </div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">Bill to</div>
        <div class="value">
          <strong>{{.Client.Name}}</strong><br>
          {{if .Client.Email}}{{deref .Client.Email}}<br>{{end}}
          {{if .Client.AddressLine1}}{{.Client.AddressLine1}}<br>{{end}}
          {{if .Client.AddressCity}}{{.Client.AddressCity}} {{.Client.AddressPostalCode}}<br>{{end}}
          {{if .Client.AddressCountry}}{{.Client.AddressCountry}}{{end}}
        </div>
      </div>
      <div class="col" style="flex: 0 0 200px;">
        <div class="label">Date issued</div>
        <div class="value">{{formatDate .Invoice.IssueDate}}</div>

        <div class="label" style="margin-top: 16px;">Date due</div>
        <div class="value">{{formatDate .Invoice.DueDate}}</div>
      </div>
    </div>

    <div class="amount-section">
      <div class="amount-large">{{formatMoney .Invoice.AmountDue .Invoice.Currency}}</div>
      <div class="value" style="color: #697386;">due {{formatDate .Invoice.DueDate}}</div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">Description</th>
          <th class="td-right">Qty</th>
          <th class="td-right">Unit Price</th>
          <th class="td-right">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Invoice.Items}}
        <tr>
          <td>{{.Description}}</td>
          <td class="td-right">{{formatQuantity .Quantity}}</td>
          <td class="td-right">{{formatMoney .UnitPrice $.Invoice.Currency}}</td>
          <td class="td-right" style="font-weight: 500;">{{formatMoney .Amount $.Invoice.Currency}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row">
        <span class="total-label">Subtotal</span>
        <span class="total-value">{{formatMoney .Invoice.Subtotal .Invoice.Currency}}</span>
      </div>
      {{if not .Invoice.TaxTotal.IsZero}}
      <div class="total-row">
        <span class="total-label">Tax</span>
        <span class="total-value">{{formatMoney .Invoice.TaxTotal .Invoice.Currency}}</span>
      </div>
      {{end}}
      {{if not .Invoice.DiscountTotal.IsZero}}
      <div class="total-row">
        <span class="total-label">Discount</span>
        <span class="total-value">&minus;{{formatMoney .Invoice.DiscountTotal .Invoice.Currency}}</span>
      </div>
      {{end}}
      <div class="total-row total-final">
        <span class="total-label" style="color: #1a1f36;">Total</span>
        <span class="total-value">{{formatMoney .Invoice.Total .Invoice.Currency}}</span>
      </div>
      {{if not .Invoice.AmountPaid.IsZero}}
      <div class="total-row">
        <span class="total-label">Amount paid</span>
        <span class="total-value">&minus;{{formatMoney .Invoice.AmountPaid .Invoice.Currency}}</span>
      </div>
      <div class="total-row">
        <span class="total-label">Amount due</span>
        <span class="total-value">{{formatMoney .Invoice.AmountDue .Invoice.Currency}}</span>
      </div>
      {{end}}
    </div>

    {{if .Invoice.Notes}}
    <div class="footer">{{deref .Invoice.Notes}}</div>
    {{end}}
    {{if .Invoice.TermsAndConditions}}
    <div class="footer">{{deref .Invoice.TermsAndConditions}}</div>
    {{end}}
  </div>
</body>
</html>
`

// currencySymbols maps the currencies we print a glyph for. Anything
// else renders as its ISO code.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"AED": "د.إ",
}

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney":    formatMoney,
		"formatDate":     formatDate,
		"formatQuantity": formatQuantity,
		"deref":          deref,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	if input.Invoice == nil {
		return "", invoicedomain.ErrNotFound
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatMoney renders an amount with the currency's symbol, falling
// back to "CODE amount" for currencies without one.
func FormatMoney(amount money.Money, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	rendered := amount.StringFixed(money.Scale)
	if symbol, ok := currencySymbols[currency]; ok {
		return symbol + rendered
	}
	if currency == "" {
		return rendered
	}
	return fmt.Sprintf("%s %s", currency, rendered)
}

func formatMoney(amount money.Money, currency string) string {
	return FormatMoney(amount, currency)
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}

// formatQuantity drops the trailing zeros a fixed-scale decimal would
// carry, so "2.0000" prints as "2".
func formatQuantity(value money.Money) string {
	s := value.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
