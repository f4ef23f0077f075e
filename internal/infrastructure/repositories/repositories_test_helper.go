package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"localtrade.backend/internal/domain/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL UNIQUE,
		display_name TEXT,
		bio TEXT,
		avatar_url TEXT,
		location TEXT,
		phone_number TEXT,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		is_suspended BOOLEAN NOT NULL DEFAULT 0,
		show_wallet_address BOOLEAN NOT NULL DEFAULT 0,
		notifications_enabled BOOLEAN NOT NULL DEFAULT 0,
		on_chain_since DATETIME,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`)
}

func createAdminTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admin_users (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);`)
	mustExec(t, db, `CREATE TABLE audit_logs (
		id TEXT PRIMARY KEY,
		admin_id TEXT NOT NULL,
		action TEXT NOT NULL,
		target_type TEXT,
		target_id TEXT,
		details TEXT,
		created_at DATETIME NOT NULL
	);`)
}

func createOfferTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE offers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		min_limit TEXT NOT NULL,
		max_limit TEXT NOT NULL,
		exchange_rate TEXT,
		location TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		description TEXT,
		payment_methods TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		base_chain_tx_hash TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`)
}

func createDealTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE deals (
		id TEXT PRIMARY KEY,
		offer_id TEXT NOT NULL,
		buyer_id TEXT NOT NULL,
		seller_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		base_chain_tx_hash TEXT,
		notes TEXT,
		created_at DATETIME NOT NULL,
		completed_at DATETIME,
		cancelled_at DATETIME
	);`)
}

func createReportTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE reports (
		id TEXT PRIMARY KEY,
		reporter_id TEXT NOT NULL,
		offer_id TEXT,
		user_id TEXT,
		reason TEXT NOT NULL,
		description TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		reviewed_at DATETIME,
		reviewed_by TEXT
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createUserTable(t, db)
	createAdminTables(t, db)
	createOfferTable(t, db)
	createDealTable(t, db)
	createReportTable(t, db)
}

func seedUser(t *testing.T, repo *UserRepository, address string) *entities.User {
	t.Helper()
	u := &entities.User{WalletAddress: address}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func seedOffer(t *testing.T, repo *OfferRepository, owner uuid.UUID, typ entities.OfferType, createdAt time.Time) *entities.Offer {
	t.Helper()
	o := &entities.Offer{
		UserID:         owner,
		Type:           typ,
		Amount:         decimal.NewFromInt(1000),
		MinLimit:       decimal.NewFromInt(100),
		MaxLimit:       decimal.NewFromInt(500),
		Location:       "Mumbai",
		PaymentMethods: []string{"cash", "upi"},
		IsActive:       true,
		CreatedAt:      createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

const (
	addrAlice = "0x1111111111111111111111111111111111111111"
	addrBob   = "0x2222222222222222222222222222222222222222"
	addrCarol = "0x3333333333333333333333333333333333333333"
)
