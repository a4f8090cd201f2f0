package migration

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return conn
}

func TestRunMigrations(t *testing.T) {
	conn := openSQLite(t)
	sqlDB, err := conn.DB()
	require.NoError(t, err)

	require.NoError(t, RunMigrations(sqlDB, "sqlite"))

	// Running again is a no-op.
	require.NoError(t, RunMigrations(sqlDB, "sqlite"))

	for _, table := range []string{"business_profiles", "clients", "invoices", "invoice_items"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}

	// The unique index on invoice numbers is live.
	insert := `INSERT INTO invoices
		(id, number, status, client_id, business_profile_id, issue_date, due_date, currency,
		 subtotal, tax_total, discount_total, total, amount_paid, amount_due, payment_terms,
		 created_at, updated_at)
		VALUES (?, ?, 'draft', 1, 1, '2026-01-01', '2026-01-31', 'USD',
		 0, 0, 0, 0, 0, 0, 'net_30', '2026-01-01', '2026-01-01')`
	require.NoError(t, conn.Exec(insert, 100, "INV-2026-00001").Error)

	err = conn.Exec(insert, 101, "INV-2026-00001").Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestRunMigrationsUnknownDatabaseType(t *testing.T) {
	conn := openSQLite(t)
	sqlDB, err := conn.DB()
	require.NoError(t, err)

	err = RunMigrations(sqlDB, "oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}
