package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	clientdomain "github.com/flowbooks/flowbooks/internal/client/domain"
	"github.com/flowbooks/flowbooks/internal/invoice/calc"
	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	profiledomain "github.com/flowbooks/flowbooks/internal/profile/domain"
	"github.com/flowbooks/flowbooks/pkg/db"
	"github.com/flowbooks/flowbooks/pkg/money"
)

type repo struct {
	db *gorm.DB
}

func Provide(conn *gorm.DB) invoicedomain.Repository {
	return &repo{db: conn}
}

// Create persists the invoice header and every line item inside one
// transaction. If anything fails, no row of the invoice is observable.
func (r *repo) Create(ctx context.Context, invoice *invoicedomain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var clientCount int64
		if err := tx.Model(&clientdomain.Client{}).
			Where("id = ?", invoice.ClientID).
			Count(&clientCount).Error; err != nil {
			return err
		}
		if clientCount == 0 {
			return invoicedomain.ErrClientNotFound
		}

		var profileCount int64
		if err := tx.Model(&profiledomain.BusinessProfile{}).
			Where("id = ?", invoice.BusinessProfileID).
			Count(&profileCount).Error; err != nil {
			return err
		}
		if profileCount == 0 {
			return invoicedomain.ErrProfileNotFound
		}

		if err := verifyTotals(invoice); err != nil {
			return err
		}

		if err := tx.Omit("Items").Create(invoice).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				return invoicedomain.ErrNumberConflict
			}
			return err
		}

		for i := range invoice.Items {
			invoice.Items[i].InvoiceID = invoice.ID
			if err := tx.Create(&invoice.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// verifyTotals is the defensive consistency check: the persisted derived
// values must agree with the supplied items. The snapshot is the source
// of truth for what was charged; a disagreement here means a caller bug.
func verifyTotals(invoice *invoicedomain.Invoice) error {
	for _, item := range invoice.Items {
		if !item.Amount.Equal(money.LineAmount(item.Quantity, item.UnitPrice)) {
			return invoicedomain.ErrTotalsMismatch
		}
	}

	subtotal, taxTotal, discountTotal, total := calc.GrandTotal(invoice.Items, invoice.TaxRates, invoice.Discount)
	if !subtotal.Equal(invoice.Subtotal) ||
		!taxTotal.Equal(invoice.TaxTotal) ||
		!discountTotal.Equal(invoice.DiscountTotal) ||
		!total.Equal(invoice.Total) {
		return invoicedomain.ErrTotalsMismatch
	}

	if !invoice.AmountDue.Equal(invoice.Total.Sub(invoice.AmountPaid)) {
		return invoicedomain.ErrTotalsMismatch
	}

	return nil
}

// GetByID reads the aggregate inside a transaction so a concurrent
// delete cannot surface the header without its items.
func (r *repo) GetByID(ctx context.Context, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var result *invoicedomain.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := loadAggregate(tx, id)
		if err != nil {
			return err
		}
		result = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// loadAggregate reads the header plus its items; it never returns a
// partially populated invoice.
func loadAggregate(tx *gorm.DB, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := tx.First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	err = tx.
		Where("invoice_id = ?", id).
		Order("sort_order asc, id asc").
		Find(&invoice.Items).Error
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *repo) ListAll(ctx context.Context) ([]invoicedomain.InvoiceSummary, error) {
	var summaries []invoicedomain.InvoiceSummary
	err := r.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Select("id, number, status, client_id, issue_date, due_date, currency, total, amount_due, created_at").
		Order("created_at desc, id desc").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Count(&count).Error
	return count, err
}

// UpdateStatus enforces the lifecycle graph inside the store so that no
// caller can move an invoice through a forbidden transition.
func (r *repo) UpdateStatus(ctx context.Context, id snowflake.ID, status invoicedomain.InvoiceStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice invoicedomain.Invoice
		err := tx.First(&invoice, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoicedomain.ErrNotFound
			}
			return err
		}

		if !invoice.Status.CanTransition(status) {
			return invoicedomain.ErrInvalidTransition
		}

		return tx.Model(&invoicedomain.Invoice{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":     status,
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

func (r *repo) RecordPayment(ctx context.Context, id snowflake.ID, amount money.Money) (*invoicedomain.Invoice, error) {
	if amount.LessThanOrEqual(money.Zero()) {
		return nil, invoicedomain.ErrInvalidPayment
	}

	var result *invoicedomain.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := loadAggregate(tx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return invoicedomain.ErrNotFound
		}

		paid := invoice.AmountPaid.Add(amount)
		due := invoice.Total.Sub(paid)
		now := time.Now().UTC()

		updates := map[string]any{
			"amount_paid": paid,
			"amount_due":  due,
			"updated_at":  now,
		}
		if due.LessThanOrEqual(money.Zero()) && invoice.Status.CanTransition(invoicedomain.StatusPaid) {
			updates["status"] = invoicedomain.StatusPaid
			invoice.Status = invoicedomain.StatusPaid
		}

		if err := tx.Model(&invoicedomain.Invoice{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return err
		}

		invoice.AmountPaid = paid
		invoice.AmountDue = due
		invoice.UpdatedAt = now
		result = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the invoice and cascades to its items. Deleting an
// absent id is a no-op.
func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&invoicedomain.LineItem{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&invoicedomain.Invoice{}, "id = ?", id).Error
	})
}
