package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"

	"github.com/flowbooks/flowbooks/pkg/money"
)

// Repository owns durable invoice state. Create persists the header and
// all line items as one atomic unit; no reader ever observes a partial
// invoice. The store also enforces the lifecycle transition graph and
// the uniqueness of invoice numbers.
type Repository interface {
	// Create persists invoice and its items in a single transaction.
	// Returns ErrNumberConflict when the number is taken,
	// ErrClientNotFound / ErrProfileNotFound when a reference is absent,
	// and ErrTotalsMismatch when the supplied totals disagree with the
	// items.
	Create(ctx context.Context, invoice *Invoice) error

	// GetByID returns the full aggregate with items in sort order, or
	// (nil, nil) when absent.
	GetByID(ctx context.Context, id snowflake.ID) (*Invoice, error)

	// ListAll returns summaries ordered by creation time, newest first.
	ListAll(ctx context.Context) ([]InvoiceSummary, error)

	// Count returns the number of invoices ever visible in the store.
	Count(ctx context.Context) (int64, error)

	// UpdateStatus moves the invoice through the lifecycle graph.
	// Returns ErrNotFound for an unknown id and ErrInvalidTransition
	// when the move is not allowed.
	UpdateStatus(ctx context.Context, id snowflake.ID, status InvoiceStatus) error

	// RecordPayment adds amount to AmountPaid and rederives AmountDue.
	// When the balance reaches zero and the lifecycle allows it, the
	// invoice moves to paid.
	RecordPayment(ctx context.Context, id snowflake.ID, amount money.Money) (*Invoice, error)

	// Delete removes the invoice and cascades to its items. Deleting an
	// absent id is not an error.
	Delete(ctx context.Context, id snowflake.ID) error
}
