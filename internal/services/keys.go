package services

import (
	"context"

	"keyquest/internal/datastore"
	"keyquest/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceKeys owns the key ledger. Credits and debits are single conditional
// statements at the storage layer, so the non-negative invariant holds without
// any in-process lock.
type ServiceKeys struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
}

func NewServiceKeys(container *do.Injector) (*ServiceKeys, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	return &ServiceKeys{container, postgresDB, readonlyPostgresDB}, nil
}

func (service *ServiceKeys) GetBalance(ctx context.Context, userID int64) (int, error) {
	balance, err := datastore.GetKeyBalance(ctx, service.postgresDB, userID)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	return balance.Count, nil
}

func (service *ServiceKeys) Credit(ctx context.Context, userID int64, amount int, reason string) (int, error) {
	if amount <= 0 {
		return 0, errorx.Wrap(ErrInvalidAmount, errorx.Validation)
	}

	var count int
	err := service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		count, err = datastore.CreditKeys(ctx, tx, userID, amount)
		if err != nil {
			return err
		}

		return datastore.InsertKeyEntry(ctx, tx, &models.KeyEntry{
			UserID: userID,
			Delta:  amount,
			Reason: reason,
		})
	})
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	return count, nil
}

func (service *ServiceKeys) Debit(ctx context.Context, userID int64, amount int, reason string) (int, error) {
	if amount <= 0 {
		return 0, errorx.Wrap(ErrInvalidAmount, errorx.Validation)
	}

	var count int
	err := service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		remaining, ok, err := datastore.DebitKeys(ctx, tx, userID, amount)
		if err != nil {
			return err
		}

		if !ok {
			return ErrInsufficientFunds
		}

		count = remaining
		return datastore.InsertKeyEntry(ctx, tx, &models.KeyEntry{
			UserID: userID,
			Delta:  -amount,
			Reason: reason,
		})
	})
	if err == ErrInsufficientFunds {
		return 0, errorx.Wrap(err, errorx.Validation)
	}
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	return count, nil
}
