package datastore

import (
	"context"
	"database/sql"
	"testing"

	"keyquest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	return db
}

func newKeyTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, CreateTableKeyBalance(ctx, db))
	require.NoError(t, CreateTableKeyEntry(ctx, db))

	return db
}

func TestGetKeyBalanceMaterializes(t *testing.T) {
	ctx := context.Background()
	db := newKeyTestDB(t)

	balance, err := GetKeyBalance(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Count)

	// second read observes the same row, not a second insert
	balance, err = GetKeyBalance(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Count)
}

func TestCreditKeysAccumulates(t *testing.T) {
	ctx := context.Background()
	db := newKeyTestDB(t)

	count, err := CreditKeys(ctx, db, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = CreditKeys(ctx, db, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestDebitKeysNeverNegative(t *testing.T) {
	ctx := context.Background()
	db := newKeyTestDB(t)

	_, err := CreditKeys(ctx, db, 1, 2)
	require.NoError(t, err)

	count, ok, err := DebitKeys(ctx, db, 1, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, count)

	// failed debit leaves the balance untouched
	balance, err := GetKeyBalance(ctx, db, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, balance.Count)

	count, ok, err = DebitKeys(ctx, db, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, count)
}

func TestDebitKeysMissingRow(t *testing.T) {
	ctx := context.Background()
	db := newKeyTestDB(t)

	_, ok, err := DebitKeys(ctx, db, 99, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsertKeyEntry(t *testing.T) {
	ctx := context.Background()
	db := newKeyTestDB(t)

	err := InsertKeyEntry(ctx, db, &models.KeyEntry{UserID: 1, Delta: 3, Reason: "task_completion"})
	require.NoError(t, err)

	err = InsertKeyEntry(ctx, db, &models.KeyEntry{UserID: 1, Delta: -1, Reason: "loot_box:1"})
	require.NoError(t, err)

	var entries []models.KeyEntry
	err = db.NewSelect().Model(&entries).Where("user_id = ?", 1).Order("id ASC").Scan(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].Delta)
	assert.Equal(t, -1, entries[1].Delta)
}
