package datastore

import (
	"context"
	"keyquest/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableKeyBalance(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.KeyBalance)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreateTableKeyEntry(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.KeyEntry)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.KeyEntry)(nil)).Index("index_key_entry_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// GetKeyBalance materializes the balance row on first access so callers always
// observe a count, never absence.
func GetKeyBalance(ctx context.Context, db bun.IDB, userID int64) (*models.KeyBalance, error) {
	balance := &models.KeyBalance{UserID: userID}
	_, err := db.NewInsert().Model(balance).On("CONFLICT (user_id) DO NOTHING").Exec(ctx)
	if err != nil {
		return nil, err
	}

	balance = new(models.KeyBalance)
	err = db.NewSelect().Model(balance).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return balance, nil
}

// CreditKeys adds amount to the user's balance in a single upsert, creating
// the row if absent. Returns the new count.
func CreditKeys(ctx context.Context, db bun.IDB, userID int64, amount int) (int, error) {
	balance := &models.KeyBalance{UserID: userID, Count: amount}
	_, err := db.NewInsert().Model(balance).
		On("CONFLICT (user_id) DO UPDATE").
		Set("count = key_balance.count + EXCLUDED.count").
		Returning("count").
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return balance.Count, nil
}

// DebitKeys subtracts amount with a conditional update so the count can never
// go negative, even under concurrent debits. The second return reports whether
// the debit was applied; false means the balance was short.
func DebitKeys(ctx context.Context, db bun.IDB, userID int64, amount int) (int, bool, error) {
	balance := new(models.KeyBalance)
	res, err := db.NewUpdate().Model(balance).
		Set("count = count - ?", amount).
		Where("user_id = ?", userID).
		Where("count >= ?", amount).
		Returning("count").
		Exec(ctx)
	if err != nil {
		return 0, false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}

	if n == 0 {
		return 0, false, nil
	}

	return balance.Count, true, nil
}

func InsertKeyEntry(ctx context.Context, db bun.IDB, entry *models.KeyEntry) error {
	_, err := db.NewInsert().Model(entry).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}
