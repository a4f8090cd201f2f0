// Package domain contains the invoice aggregate and its persistence models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/flowbooks/flowbooks/pkg/money"
)

// TaxRate is a named percentage rate. The set of rates applied to an
// invoice is snapshotted onto the invoice itself, so later edits to the
// rate table never change historical documents.
type TaxRate struct {
	Name     string      `json:"name"`
	Rate     money.Money `json:"rate"`
	Compound bool        `json:"compound"`
}

// DiscountType selects the discount variant.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed_amount"
)

// Discount is applied to the pre-tax subtotal. An invoice carries at
// most one. A fixed discount may legally exceed the subtotal; guarding
// against a negative total is the caller's concern.
type Discount struct {
	Type  DiscountType `json:"type"`
	Value money.Money  `json:"value"`
}

// Valid reports whether the variant tag is a known one.
func (d Discount) Valid() bool {
	return d.Type == DiscountPercentage || d.Type == DiscountFixed
}

// PaymentTerms are the agreed payment terms for an invoice.
type PaymentTerms string

const (
	TermsDueOnReceipt PaymentTerms = "due_on_receipt"
	TermsNet15        PaymentTerms = "net_15"
	TermsNet30        PaymentTerms = "net_30"
	TermsNet60        PaymentTerms = "net_60"
	TermsNet90        PaymentTerms = "net_90"
)

// ParsePaymentTerms parses a terms string strictly.
func ParsePaymentTerms(raw string) (PaymentTerms, error) {
	switch PaymentTerms(raw) {
	case TermsDueOnReceipt, TermsNet15, TermsNet30, TermsNet60, TermsNet90:
		return PaymentTerms(raw), nil
	default:
		return "", ErrInvalidPaymentTerms
	}
}

// Invoice is the aggregate root. It exclusively owns its line items:
// they are created with it in one atomic unit, are immutable afterwards,
// and are removed with it on delete. Only Status, AmountPaid/AmountDue
// and UpdatedAt may change post-creation.
type Invoice struct {
	ID     snowflake.ID  `gorm:"primaryKey" json:"id"`
	Number string        `gorm:"type:text;not null;uniqueIndex:ux_invoices_number" json:"number"`
	Status InvoiceStatus `gorm:"type:text;not null;default:'draft'" json:"status"`

	ClientID          snowflake.ID `gorm:"not null;index" json:"client_id"`
	BusinessProfileID snowflake.ID `gorm:"not null;index" json:"business_profile_id"`

	IssueDate time.Time `gorm:"not null" json:"issue_date"`
	DueDate   time.Time `gorm:"not null;index" json:"due_date"`

	Currency string `gorm:"type:text;not null" json:"currency"`

	// Items are loaded alongside the header; they live in their own table.
	Items []LineItem `gorm:"-" json:"items"`

	TaxRates []TaxRate `gorm:"serializer:json;type:text" json:"tax_rates"`
	Discount *Discount `gorm:"serializer:json;type:text" json:"discount,omitempty"`

	Subtotal      money.Money `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	TaxTotal      money.Money `gorm:"type:decimal(18,2);not null" json:"tax_total"`
	DiscountTotal money.Money `gorm:"type:decimal(18,2);not null" json:"discount_total"`
	Total         money.Money `gorm:"type:decimal(18,2);not null" json:"total"`
	AmountPaid    money.Money `gorm:"type:decimal(18,2);not null" json:"amount_paid"`
	AmountDue     money.Money `gorm:"type:decimal(18,2);not null" json:"amount_due"`

	PaymentTerms       PaymentTerms      `gorm:"type:text;not null;default:'net_30'" json:"payment_terms"`
	Notes              *string           `gorm:"type:text" json:"notes,omitempty"`
	TermsAndConditions *string           `gorm:"type:text" json:"terms_and_conditions,omitempty"`
	Metadata           datatypes.JSONMap `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// LineItem is a single line on an invoice. Amount is the value charged
// at invoice time (quantity x unit price, rounded once); it is persisted,
// never recomputed on read.
type LineItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Quantity    money.Money  `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitPrice   money.Money  `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	Amount      money.Money  `gorm:"type:decimal(18,2);not null" json:"amount"`
	TaxRateName *string      `gorm:"type:text" json:"tax_rate_name,omitempty"`
	SortOrder   int          `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "invoice_items" }

// InvoiceSummary is the lightweight listing projection: no items, just
// what an index screen needs.
type InvoiceSummary struct {
	ID        snowflake.ID  `json:"id"`
	Number    string        `json:"number"`
	Status    InvoiceStatus `json:"status"`
	ClientID  snowflake.ID  `json:"client_id"`
	IssueDate time.Time     `json:"issue_date"`
	DueDate   time.Time     `json:"due_date"`
	Currency  string        `json:"currency"`
	Total     money.Money   `json:"total"`
	AmountDue money.Money   `json:"amount_due"`
	CreatedAt time.Time     `json:"created_at"`
}
