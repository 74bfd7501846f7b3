package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createCustomerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE customers (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL UNIQUE,
		password_hash TEXT,
		fingerprint_hash TEXT,
		finger_mappings TEXT DEFAULT '[]',
		balance REAL NOT NULL DEFAULT 0,
		vault_balance REAL NOT NULL DEFAULT 0,
		transactions TEXT DEFAULT '[]',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		enrolled_by_id TEXT,
		enrollment_date DATETIME,
		monthly_budget REAL DEFAULT 0,
		version INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL UNIQUE,
		business_name TEXT NOT NULL,
		business_type TEXT NOT NULL,
		owner_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		balance REAL NOT NULL DEFAULT 0,
		total_sales REAL NOT NULL DEFAULT 0,
		total_transactions INTEGER NOT NULL DEFAULT 0,
		sales_analytics TEXT DEFAULT '{}',
		credit_score INTEGER NOT NULL DEFAULT 0,
		credit_limit REAL NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		version INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createAgentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE agents (
		id TEXT PRIMARY KEY,
		agent_id TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		tier TEXT NOT NULL DEFAULT 'AG-LV1',
		commission TEXT DEFAULT '{}',
		performance TEXT DEFAULT '{}',
		balance REAL NOT NULL DEFAULT 0,
		liquidity TEXT DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT 1,
		version INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		transaction_id TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		merchant_id TEXT,
		agent_id TEXT,
		amount REAL NOT NULL,
		fee REAL NOT NULL DEFAULT 0,
		total_amount REAL NOT NULL,
		finger_used TEXT,
		status TEXT NOT NULL,
		description TEXT,
		location TEXT DEFAULT '{}',
		device_id TEXT,
		metadata TEXT DEFAULT '{}',
		initiated_at DATETIME NOT NULL,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
