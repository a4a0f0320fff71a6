// Package testutil provides a throwaway SQLite database for package tests
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Default account codes seeded into every test database
const (
	CashAccountCode = "CASH"
	BankAccountCode = "BANK"
)

// NewTestDB opens a private in-memory database, migrates it and seeds the
// default cash accounts, walk-in customer and document sequences. The single
// connection serialises writers the same way a file-backed SQLite would.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := zap.NewNop()
	require.NoError(t, database.AutoMigrate(db, log))
	require.NoError(t, database.SeedDefaultData(db, database.SeedOptions{
		CashAccountCode: CashAccountCode,
		BankAccountCode: BankAccountCode,
	}, log))
	return db
}
