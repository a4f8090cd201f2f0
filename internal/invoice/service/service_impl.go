package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/flowbooks/flowbooks/internal/clock"
	"github.com/flowbooks/flowbooks/internal/config"
	"github.com/flowbooks/flowbooks/internal/invoice/calc"
	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	"github.com/flowbooks/flowbooks/internal/invoice/number"
	"github.com/flowbooks/flowbooks/internal/observability/metrics"
	profiledomain "github.com/flowbooks/flowbooks/internal/profile/domain"
	"github.com/flowbooks/flowbooks/pkg/money"
)

// createAttempts bounds the number-conflict retry loop. Each retry
// rereads the count, so collisions with a concurrent creator resolve on
// the next pass.
const createAttempts = 3

const dateLayout = "2006-01-02"

type ServiceParam struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Metrics  *metrics.Metrics
	Invoices invoicedomain.Repository
	Profiles profiledomain.Repository
}

type Service struct {
	cfg     config.Config
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	metrics *metrics.Metrics
	gen     *number.Generator

	invoices invoicedomain.Repository
	profiles profiledomain.Repository
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		cfg:     p.Cfg,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		metrics: p.Metrics,
		gen:     number.NewGenerator(p.Cfg.InvoiceNumberPrefix, p.Clock),

		invoices: p.Invoices,
		profiles: p.Profiles,
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (*invoicedomain.Invoice, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(req.ClientID))
	if err != nil {
		return nil, invoicedomain.ErrInvalidClientID
	}
	if len(req.Items) == 0 {
		return nil, invoicedomain.ErrNoLineItems
	}
	if req.Discount != nil && !req.Discount.Valid() {
		return nil, invoicedomain.ErrInvalidDiscount
	}

	status := invoicedomain.StatusDraft
	if req.Status != "" {
		status, err = invoicedomain.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
	}

	profile, err := s.profiles.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, invoicedomain.ErrProfileNotFound
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = profile.DefaultCurrency
	}
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	issueDate := s.parseDate(req.IssueDate, "issue_date", s.clock.Now().Truncate(24*time.Hour))
	dueDate := s.parseDate(req.DueDate, "due_date", issueDate.AddDate(0, 0, s.cfg.DefaultDueDays))

	now := s.clock.Now()
	invoiceID := s.genID.Generate()
	items := make([]invoicedomain.LineItem, 0, len(req.Items))
	for i, input := range req.Items {
		items = append(items, invoicedomain.LineItem{
			ID:          s.genID.Generate(),
			InvoiceID:   invoiceID,
			Description: input.Description,
			Quantity:    input.Quantity,
			UnitPrice:   input.UnitPrice,
			Amount:      money.LineAmount(input.Quantity, input.UnitPrice),
			TaxRateName: input.TaxRateName,
			SortOrder:   i,
			CreatedAt:   now,
		})
	}

	subtotal, taxTotal, discountTotal, total := calc.GrandTotal(items, req.TaxRates, req.Discount)

	terms := profile.DefaultPaymentTerms
	if terms == "" {
		terms = invoicedomain.TermsNet30
	}

	invoice := &invoicedomain.Invoice{
		ID:                invoiceID,
		Status:            status,
		ClientID:          clientID,
		BusinessProfileID: profile.ID,
		IssueDate:         issueDate,
		DueDate:           dueDate,
		Currency:          currency,
		Items:             items,
		TaxRates:          req.TaxRates,
		Discount:          req.Discount,
		Subtotal:          subtotal,
		TaxTotal:          taxTotal,
		DiscountTotal:     discountTotal,
		Total:             total,
		AmountPaid:        money.Zero(),
		AmountDue:         total,
		PaymentTerms:      terms,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// The generated number is a proposal derived from the current count;
	// the store's unique constraint is the arbiter. On conflict, retry
	// with a fresh count.
	for attempt := 0; attempt < createAttempts; attempt++ {
		count, err := s.invoices.Count(ctx)
		if err != nil {
			return nil, err
		}
		invoice.Number = s.gen.Next(count)

		err = s.invoices.Create(ctx, invoice)
		if err == nil {
			s.metrics.InvoicesCreated.Inc()
			s.log.Info("invoice created",
				zap.String("invoice_id", invoice.ID.String()),
				zap.String("number", invoice.Number),
				zap.String("total", invoice.Total.StringFixed(money.Scale)),
			)
			return invoice, nil
		}
		if errors.Is(err, invoicedomain.ErrNumberConflict) {
			s.metrics.NumberConflicts.Inc()
			s.log.Warn("invoice number conflict, retrying with fresh count",
				zap.String("number", invoice.Number),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		return nil, err
	}

	return nil, invoicedomain.ErrNumberConflict
}

// parseDate accepts YYYY-MM-DD. A present but unparsable value falls
// back like an absent one, but is logged rather than silently ignored.
func (s *Service) parseDate(raw, field string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		s.log.Warn("unparsable date, using fallback",
			zap.String("field", field),
			zap.String("value", raw),
		)
		return fallback
	}
	return parsed
}

func (s *Service) GetByID(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, invoicedomain.ErrInvalidInvoiceID
	}

	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, invoicedomain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context) ([]invoicedomain.InvoiceSummary, error) {
	return s.invoices.ListAll(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status string) error {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return invoicedomain.ErrInvalidInvoiceID
	}

	next, err := invoicedomain.ParseStatus(status)
	if err != nil {
		return err
	}

	return s.invoices.UpdateStatus(ctx, invoiceID, next)
}

func (s *Service) RecordPayment(ctx context.Context, id string, amount money.Money) (*invoicedomain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, invoicedomain.ErrInvalidInvoiceID
	}

	return s.invoices.RecordPayment(ctx, invoiceID, amount)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return invoicedomain.ErrInvalidInvoiceID
	}
	return s.invoices.Delete(ctx, invoiceID)
}
