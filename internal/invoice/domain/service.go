package domain

import (
	"context"

	"github.com/flowbooks/flowbooks/pkg/money"
)

// LineItemInput is a caller-supplied line. Quantity and UnitPrice bind
// strictly: malformed numbers are rejected at the boundary instead of
// being zero-coerced.
type LineItemInput struct {
	Description string      `json:"description"`
	Quantity    money.Money `json:"quantity"`
	UnitPrice   money.Money `json:"unit_price"`
	TaxRateName *string     `json:"tax_rate_name,omitempty"`
}

// CreateInvoiceRequest carries validated input from the API layer.
// Dates are YYYY-MM-DD; a missing or unparsable issue date falls back
// to today, a missing due date to issue date + the configured net days.
type CreateInvoiceRequest struct {
	ClientID  string          `json:"client_id"`
	Items     []LineItemInput `json:"items"`
	TaxRates  []TaxRate       `json:"tax_rates,omitempty"`
	Discount  *Discount       `json:"discount,omitempty"`
	Currency  string          `json:"currency,omitempty"`
	Status    string          `json:"status,omitempty"`
	IssueDate string          `json:"issue_date,omitempty"`
	DueDate   string          `json:"due_date,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
}

// Service is the invoice write/read surface used by the API layer.
type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context) ([]InvoiceSummary, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	RecordPayment(ctx context.Context, id string, amount money.Money) (*Invoice, error)
	Delete(ctx context.Context, id string) error
}
