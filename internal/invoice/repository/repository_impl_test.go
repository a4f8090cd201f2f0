package repository

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
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	clientdomain "github.com/flowbooks/flowbooks/internal/client/domain"
	"github.com/flowbooks/flowbooks/internal/invoice/calc"
	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	profiledomain "github.com/flowbooks/flowbooks/internal/profile/domain"
	"github.com/flowbooks/flowbooks/pkg/money"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A per-test named memory database keeps tests isolated while still
	// sharing the store across pooled connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, conn.AutoMigrate(
		&clientdomain.Client{},
		&profiledomain.BusinessProfile{},
		&invoicedomain.Invoice{},
		&invoicedomain.LineItem{},
	))
	return conn
}

// newFileTestDB opens a file-backed WAL database with a real connection
// pool, the same shape the app runs with, so readers and writers hit
// separate connections.
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s/store.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", t.TempDir())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&clientdomain.Client{},
		&profiledomain.BusinessProfile{},
		&invoicedomain.Invoice{},
		&invoicedomain.LineItem{},
	))
	return conn
}

func seedRefs(t *testing.T, conn *gorm.DB, node *snowflake.Node) (clientID, profileID snowflake.ID) {
	t.Helper()

	client := &clientdomain.Client{
		ID:        node.Generate(),
		Name:      "Acme Corp",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, conn.Create(client).Error)

	profile := &profiledomain.BusinessProfile{
		ID:                  node.Generate(),
		Name:                "Flowbooks Ltd",
		DefaultCurrency:     "USD",
		DefaultPaymentTerms: invoicedomain.TermsNet30,
		CreatedAt:           time.Now().UTC(),
		UpdatedAt:           time.Now().UTC(),
	}
	require.NoError(t, conn.Create(profile).Error)

	return client.ID, profile.ID
}

// newInvoice builds a consistent two-line invoice: 2 x 100.00 plus
// 1 x 50.00, with a 10% tax.
func newInvoice(node *snowflake.Node, clientID, profileID snowflake.ID, num string) *invoicedomain.Invoice {
	now := time.Now().UTC()
	id := node.Generate()

	items := []invoicedomain.LineItem{
		{
			ID:          node.Generate(),
			InvoiceID:   id,
			Description: "Consulting",
			Quantity:    money.MustFromString("2"),
			UnitPrice:   money.MustFromString("100.00"),
			SortOrder:   0,
			CreatedAt:   now,
		},
		{
			ID:          node.Generate(),
			InvoiceID:   id,
			Description: "Hosting",
			Quantity:    money.MustFromString("1"),
			UnitPrice:   money.MustFromString("50.00"),
			SortOrder:   1,
			CreatedAt:   now,
		},
	}
	for i := range items {
		items[i].Amount = money.LineAmount(items[i].Quantity, items[i].UnitPrice)
	}

	taxRates := []invoicedomain.TaxRate{
		{Name: "VAT", Rate: money.MustFromString("10")},
	}

	subtotal, taxTotal, discountTotal, total := calc.GrandTotal(items, taxRates, nil)

	return &invoicedomain.Invoice{
		ID:                id,
		Number:            num,
		Status:            invoicedomain.StatusDraft,
		ClientID:          clientID,
		BusinessProfileID: profileID,
		IssueDate:         now.Truncate(24 * time.Hour),
		DueDate:           now.Truncate(24*time.Hour).AddDate(0, 0, 30),
		Currency:          "USD",
		Items:             items,
		TaxRates:          taxRates,
		Subtotal:          subtotal,
		TaxTotal:          taxTotal,
		DiscountTotal:     discountTotal,
		Total:             total,
		AmountPaid:        money.Zero(),
		AmountDue:         total,
		PaymentTerms:      invoicedomain.TermsNet30,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	in := newInvoice(node, clientID, profileID, "INV-2026-00001")
	require.NoError(t, repo.Create(ctx, in))

	out, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "INV-2026-00001", out.Number)
	assert.Equal(t, invoicedomain.StatusDraft, out.Status)
	assert.Equal(t, clientID, out.ClientID)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Consulting", out.Items[0].Description)
	assert.Equal(t, "Hosting", out.Items[1].Description)
	assert.True(t, out.Subtotal.Equal(money.MustFromString("250.00")))
	assert.True(t, out.TaxTotal.Equal(money.MustFromString("25.00")))
	assert.True(t, out.Total.Equal(money.MustFromString("275.00")))
	assert.True(t, out.AmountDue.Equal(out.Total))
	require.Len(t, out.TaxRates, 1)
	assert.Equal(t, "VAT", out.TaxRates[0].Name)
}

func TestCreateRejectsUnknownClient(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	_, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)

	in := newInvoice(node, node.Generate(), profileID, "INV-2026-00001")
	err := repo.Create(context.Background(), in)
	assert.ErrorIs(t, err, invoicedomain.ErrClientNotFound)
}

func TestCreateRejectsUnknownProfile(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, _ := seedRefs(t, conn, node)
	repo := Provide(conn)

	in := newInvoice(node, clientID, node.Generate(), "INV-2026-00001")
	err := repo.Create(context.Background(), in)
	assert.ErrorIs(t, err, invoicedomain.ErrProfileNotFound)
}

func TestCreateDuplicateNumberConflicts(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newInvoice(node, clientID, profileID, "INV-2026-00001")))

	err := repo.Create(ctx, newInvoice(node, clientID, profileID, "INV-2026-00001"))
	assert.ErrorIs(t, err, invoicedomain.ErrNumberConflict)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateRollsBackOnItemFailure(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	// Give both items the same primary key; the second insert fails and
	// the whole invoice must vanish, header included.
	in := newInvoice(node, clientID, profileID, "INV-2026-00001")
	in.Items[1].ID = in.Items[0].ID

	err := repo.Create(ctx, in)
	require.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	var itemCount int64
	require.NoError(t, conn.Model(&invoicedomain.LineItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
}

func TestCreateRejectsTotalsMismatch(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)

	in := newInvoice(node, clientID, profileID, "INV-2026-00001")
	in.Total = in.Total.Add(money.MustFromString("0.01"))

	err := repo.Create(context.Background(), in)
	assert.ErrorIs(t, err, invoicedomain.ErrTotalsMismatch)
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := Provide(conn)

	out, err := repo.GetByID(context.Background(), node.Generate())
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestListAllNewestFirst(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	older := newInvoice(node, clientID, profileID, "INV-2026-00001")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, older))

	newer := newInvoice(node, clientID, profileID, "INV-2026-00002")
	require.NoError(t, repo.Create(ctx, newer))

	summaries, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "INV-2026-00002", summaries[0].Number)
	assert.Equal(t, "INV-2026-00001", summaries[1].Number)
	assert.True(t, summaries[0].Total.Equal(money.MustFromString("275.00")))
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	in := newInvoice(node, clientID, profileID, "INV-2026-00001")
	require.NoError(t, repo.Create(ctx, in))

	require.NoError(t, repo.UpdateStatus(ctx, in.ID, invoicedomain.StatusPending))
	require.NoError(t, repo.UpdateStatus(ctx, in.ID, invoicedomain.StatusSent))

	// No going backwards.
	err := repo.UpdateStatus(ctx, in.ID, invoicedomain.StatusDraft)
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidTransition)

	out, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusSent, out.Status)
}

func TestUpdateStatusTerminalStates(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	in := newInvoice(node, clientID, profileID, "INV-2026-00001")
	require.NoError(t, repo.Create(ctx, in))
	require.NoError(t, repo.UpdateStatus(ctx, in.ID, invoicedomain.StatusCancelled))

	err := repo.UpdateStatus(ctx, in.ID, invoicedomain.StatusPending)
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidTransition)
}

func TestUpdateStatusUnknownInvoice(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := Provide(conn)

	err := repo.UpdateStatus(context.Background(), node.Generate(), invoicedomain.StatusPending)
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestRecordPaymentPartialThenFull(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	in := newInvoice(node, clientID, profileID, "INV-2026-00001")
	require.NoError(t, repo.Create(ctx, in))
	require.NoError(t, repo.UpdateStatus(ctx, in.ID, invoicedomain.StatusPending))
	require.NoError(t, repo.UpdateStatus(ctx, in.ID, invoicedomain.StatusSent))

	out, err := repo.RecordPayment(ctx, in.ID, money.MustFromString("100.00"))
	require.NoError(t, err)
	assert.True(t, out.AmountPaid.Equal(money.MustFromString("100.00")))
	assert.True(t, out.AmountDue.Equal(money.MustFromString("175.00")))
	assert.Equal(t, invoicedomain.StatusSent, out.Status)

	out, err = repo.RecordPayment(ctx, in.ID, money.MustFromString("175.00"))
	require.NoError(t, err)
	assert.True(t, out.AmountDue.Equal(money.Zero()))
	assert.Equal(t, invoicedomain.StatusPaid, out.Status)

	// The state change survives reload.
	reloaded, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, invoicedomain.StatusPaid, reloaded.Status)
	assert.True(t, reloaded.AmountPaid.Equal(money.MustFromString("275.00")))
}

func TestRecordPaymentRejectsNonPositive(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	in := newInvoice(node, clientID, profileID, "INV-2026-00001")
	require.NoError(t, repo.Create(ctx, in))

	_, err := repo.RecordPayment(ctx, in.ID, money.Zero())
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidPayment)

	_, err = repo.RecordPayment(ctx, in.ID, money.MustFromString("-5.00"))
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidPayment)
}

func TestRecordPaymentUnknownInvoice(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	repo := Provide(conn)

	_, err := repo.RecordPayment(context.Background(), node.Generate(), money.MustFromString("10.00"))
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

// A reader racing a delete must see the whole invoice or nothing; a
// header with its items already gone is never a valid observation.
func TestGetByIDNeverObservesHeaderWithoutItems(t *testing.T) {
	conn := newFileTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		in := newInvoice(node, clientID, profileID, fmt.Sprintf("INV-2026-%05d", i+1))
		require.NoError(t, repo.Create(ctx, in))

		done := make(chan error, 1)
		go func() {
			done <- repo.Delete(ctx, in.ID)
		}()

		for {
			out, err := repo.GetByID(ctx, in.ID)
			require.NoError(t, err)
			if out == nil {
				break
			}
			require.Len(t, out.Items, 2)
		}
		require.NoError(t, <-done)
	}
}

func TestDeleteCascadesToItems(t *testing.T) {
	conn := newTestDB(t)
	node, _ := snowflake.NewNode(1)
	clientID, profileID := seedRefs(t, conn, node)
	repo := Provide(conn)
	ctx := context.Background()

	in := newInvoice(node, clientID, profileID, "INV-2026-00001")
	require.NoError(t, repo.Create(ctx, in))

	require.NoError(t, repo.Delete(ctx, in.ID))

	out, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Nil(t, out)

	var itemCount int64
	require.NoError(t, conn.Model(&invoicedomain.LineItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)

	// Deleting again is a no-op, not an error.
	require.NoError(t, repo.Delete(ctx, in.ID))
}
