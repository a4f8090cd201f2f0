package analytics

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flowbooks/flowbooks/internal/clock"
	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	"github.com/flowbooks/flowbooks/pkg/money"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.AutoMigrate(&invoicedomain.Invoice{}, &invoicedomain.LineItem{}))
	return conn
}

func seedInvoice(t *testing.T, conn *gorm.DB, node *snowflake.Node, status invoicedomain.InvoiceStatus, total, paid string, due time.Time) {
	t.Helper()

	totalM := money.MustFromString(total)
	paidM := money.MustFromString(paid)
	now := time.Now().UTC()

	require.NoError(t, conn.Create(&invoicedomain.Invoice{
		ID:                node.Generate(),
		Number:            fmt.Sprintf("INV-2026-%05d", node.Generate()%100000),
		Status:            status,
		ClientID:          node.Generate(),
		BusinessProfileID: node.Generate(),
		IssueDate:         due.AddDate(0, 0, -30),
		DueDate:           due,
		Currency:          "USD",
		Subtotal:          totalM,
		TaxTotal:          money.Zero(),
		DiscountTotal:     money.Zero(),
		Total:             totalM,
		AmountPaid:        paidM,
		AmountDue:         totalM.Sub(paidM),
		PaymentTerms:      invoicedomain.TermsNet30,
		CreatedAt:         now,
		UpdatedAt:         now,
	}).Error)
}

func TestRevenueMetrics(t *testing.T) {
	conn := newTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 20)

	// Paid in full, collected revenue.
	seedInvoice(t, conn, node, invoicedomain.StatusPaid, "100.00", "100.00", past)
	// Sent, not yet due, half collected.
	seedInvoice(t, conn, node, invoicedomain.StatusSent, "200.00", "50.00", future)
	// Sent and past due: counts as overdue even without the status flip.
	seedInvoice(t, conn, node, invoicedomain.StatusSent, "80.00", "0.00", past)
	// Explicitly overdue.
	seedInvoice(t, conn, node, invoicedomain.StatusOverdue, "40.00", "10.00", past)
	// Cancelled invoices are invisible to revenue.
	seedInvoice(t, conn, node, invoicedomain.StatusCancelled, "999.00", "0.00", past)
	// Draft is outstanding but never overdue.
	seedInvoice(t, conn, node, invoicedomain.StatusDraft, "60.00", "0.00", past)

	svc := NewService(ServiceParam{
		Log:   zap.NewNop(),
		DB:    conn,
		Clock: clock.NewFakeClock(now),
	})

	m, err := svc.RevenueMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), m.InvoiceCount)
	assert.Equal(t, int64(1), m.PaidCount)
	assert.Equal(t, int64(2), m.OverdueCount)
	assert.True(t, m.TotalRevenue.Equal(money.MustFromString("160.00")), m.TotalRevenue.String())
	assert.True(t, m.TotalOutstanding.Equal(money.MustFromString("320.00")), m.TotalOutstanding.String())
	assert.True(t, m.TotalOverdue.Equal(money.MustFromString("110.00")), m.TotalOverdue.String())
}

func TestRevenueMetricsEmptyStore(t *testing.T) {
	conn := newTestDB(t)

	svc := NewService(ServiceParam{
		Log:   zap.NewNop(),
		DB:    conn,
		Clock: clock.System(),
	})

	m, err := svc.RevenueMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.InvoiceCount)
	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.TotalOutstanding.IsZero())
	assert.True(t, m.TotalOverdue.IsZero())
}
