package services

import (
	"context"
	"database/sql"
	"errors"

	"keyquest/internal/datastore"
	"keyquest/internal/models"
	"keyquest/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ServiceCatalog is the read side of the reward/loot-box catalog. Population
// is a seed concern, see cmd/migrate.
type ServiceCatalog struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceCatalog(container *do.Injector) (*ServiceCatalog, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceCatalog{container, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceCatalog) GetLootBox(ctx context.Context, id int64) (*models.LootBox, error) {
	callback := func() (*models.LootBox, error) {
		return datastore.GetLootBoxByID(ctx, service.readonlyPostgresDB, id)
	}

	lootBox, err := caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyLootBox(id), CACHE_TTL_5_MINS, callback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return lootBox, nil
}

func (service *ServiceCatalog) GetReward(ctx context.Context, id int64) (*models.Reward, error) {
	callback := func() (*models.Reward, error) {
		return datastore.GetRewardByID(ctx, service.readonlyPostgresDB, id)
	}

	reward, err := caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyReward(id), CACHE_TTL_5_MINS, callback)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return reward, nil
}

func (service *ServiceCatalog) ListLootBoxes(ctx context.Context) ([]models.LootBox, error) {
	callback := func() ([]models.LootBox, error) {
		lootBoxes, err := datastore.ListLootBoxes(ctx, service.readonlyPostgresDB)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return lootBoxes, err
	}

	lootBoxes, err := caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyLootBoxes(), CACHE_TTL_5_MINS, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return lootBoxes, nil
}
