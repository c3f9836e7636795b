package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"keyquest/internal/datastore"
	"keyquest/internal/interfaces"
	"keyquest/internal/models"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceReward is the reward economy orchestrator: it composes the key
// ledger, the catalog, the resolver and the ownership ledger into the two
// user-facing transactions (open a loot box, activate a reward).
type ServiceReward struct {
	container          *do.Injector
	rs                 *redsync.Redsync
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	limiter            interfaces.Limiter

	serviceKeys    *ServiceKeys
	serviceCatalog *ServiceCatalog
	resolver       *Resolver
}

func NewServiceReward(container *do.Injector) (*ServiceReward, error) {
	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceKeys, err := do.Invoke[*ServiceKeys](container)
	if err != nil {
		return nil, err
	}

	serviceCatalog, err := do.Invoke[*ServiceCatalog](container)
	if err != nil {
		return nil, err
	}

	resolver, err := do.Invoke[*Resolver](container)
	if err != nil {
		return nil, err
	}

	return &ServiceReward{container, rs, postgresDB, readonlyPostgresDB, limiter, serviceKeys, serviceCatalog, resolver}, nil
}

func (service *ServiceReward) GetKeys(ctx context.Context, userID int64) (int, error) {
	return service.serviceKeys.GetBalance(ctx, userID)
}

// CreditKeysForTaskCompletion is the only write-path the task tracker is
// allowed to invoke. Double-crediting the same completion event is the
// caller's problem, not guarded here.
func (service *ServiceReward) CreditKeysForTaskCompletion(ctx context.Context, userID int64, amount int) (int, error) {
	return service.serviceKeys.Credit(ctx, userID, amount, "task_completion")
}

func (service *ServiceReward) ListLootBoxes(ctx context.Context) ([]models.LootBox, error) {
	return service.serviceCatalog.ListLootBoxes(ctx)
}

// OpenLootBox serializes opens per user with a redsync mutex, then runs the
// debit + acquisition as one transaction.
func (service *ServiceReward) OpenLootBox(ctx context.Context, userID int64, lootBoxID int64) (*models.LootBoxOpening, error) {
	err := service.limiter.Allow(ctx, LimitKeyUserLootBox(userID), redis_rate.PerMinute(LOOT_BOX_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.RateLimiting)
	}

	mutex := service.rs.NewMutex(LockKeyUserLootBox(userID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrLootBoxLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	return service.openLootBox(ctx, userID, lootBoxID)
}

func (service *ServiceReward) openLootBox(ctx context.Context, userID int64, lootBoxID int64) (*models.LootBoxOpening, error) {
	box, err := service.serviceCatalog.GetLootBox(ctx, lootBoxID)
	if err != nil {
		return nil, err
	}

	// funds check before any draw so a user is never charged then denied
	balance, err := service.serviceKeys.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if balance < box.Cost {
		return nil, errorx.Wrap(ErrInsufficientFunds, errorx.Validation)
	}

	rewardID, err := service.resolver.Resolve(box)
	if errors.Is(err, ErrDegenerateBox) {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	reward, err := service.serviceCatalog.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	opening := &models.LootBoxOpening{Reward: *reward}
	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		remaining, ok, err := datastore.DebitKeys(ctx, tx, userID, box.Cost)
		if err != nil {
			return err
		}

		if !ok {
			// the pre-check passed, so something else drained the balance
			return ErrConflict
		}

		record := &models.OwnershipRecord{
			UserID:     userID,
			RewardID:   rewardID,
			AcquiredAt: time.Now().UTC(),
		}
		isNew, err := datastore.InsertOwnershipRecord(ctx, tx, record)
		if err != nil {
			return err
		}

		err = datastore.InsertKeyEntry(ctx, tx, &models.KeyEntry{
			UserID: userID,
			Delta:  -box.Cost,
			Reason: fmt.Sprintf("loot_box:%d", box.ID),
		})
		if err != nil {
			return err
		}

		opening.IsNew = isNew
		opening.RemainingKeys = remaining
		return nil
	})
	if errors.Is(err, ErrConflict) {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return opening, nil
}

// ActivateReward flips the target record active and clears every other record
// of the same type for the user, atomically. Activating an already-active
// reward is a no-op that still leaves the invariant intact.
func (service *ServiceReward) ActivateReward(ctx context.Context, userID int64, rewardID int64) (*models.OwnershipRecord, error) {
	reward, err := service.serviceCatalog.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	var record *models.OwnershipRecord
	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		owned, err := datastore.HasOwnershipRecord(ctx, tx, userID, rewardID)
		if err != nil {
			return err
		}

		if !owned {
			return ErrNotOwned
		}

		err = datastore.DeactivateSiblingRewards(ctx, tx, userID, reward.Type, rewardID)
		if err != nil {
			return err
		}

		err = datastore.ActivateOwnershipRecord(ctx, tx, userID, rewardID)
		if err != nil {
			return err
		}

		record, err = datastore.GetOwnershipRecord(ctx, tx, userID, rewardID)
		return err
	})
	if errors.Is(err, ErrNotOwned) {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return record, nil
}

func (service *ServiceReward) ListOwnedRewards(ctx context.Context, userID int64) ([]models.OwnershipRecord, error) {
	records, err := datastore.ListOwnershipRecords(ctx, service.readonlyPostgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return records, nil
}

func (service *ServiceReward) ListActiveRewards(ctx context.Context, userID int64) ([]models.OwnershipRecord, error) {
	records, err := datastore.ListActiveOwnershipRecords(ctx, service.readonlyPostgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return records, nil
}
