package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"keyquest/internal/datastore"
	"keyquest/internal/models"

	"github.com/go-redis/cache/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// fakeCache always misses so reads hit the database.
type fakeCache struct{}

func (fakeCache) Get(ctx context.Context, key string, target any) error {
	return cache.ErrCacheMiss
}

func (fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (fakeCache) Delete(ctx context.Context, key string) error {
	return nil
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, datastore.CreateTableKeyBalance(ctx, db))
	require.NoError(t, datastore.CreateTableKeyEntry(ctx, db))
	require.NoError(t, datastore.CreateTableReward(ctx, db))
	require.NoError(t, datastore.CreateTableLootBox(ctx, db))
	require.NoError(t, datastore.CreateTableOwnershipRecord(ctx, db))

	return db
}

func newTestServiceReward(db *bun.DB, source RandSource) *ServiceReward {
	cash := fakeCache{}
	serviceKeys := &ServiceKeys{postgresDB: db, readonlyPostgresDB: db}
	serviceCatalog := &ServiceCatalog{postgresDB: db, readonlyPostgresDB: db, cache: cash, readonlyCache: cash}

	return &ServiceReward{
		postgresDB:         db,
		readonlyPostgresDB: db,
		serviceKeys:        serviceKeys,
		serviceCatalog:     serviceCatalog,
		resolver:           NewResolver(source),
	}
}

func seedReward(t *testing.T, db *bun.DB, name string, rewardType models.RewardType, rarity models.Rarity) *models.Reward {
	t.Helper()

	reward := &models.Reward{Name: name, Type: rewardType, Rarity: rarity}
	require.NoError(t, datastore.InsertReward(context.Background(), db, reward))
	require.NotZero(t, reward.ID)

	return reward
}

func seedLootBox(t *testing.T, db *bun.DB, name string, cost int, items []models.LootBoxItem) *models.LootBox {
	t.Helper()

	box := &models.LootBox{Name: name, Cost: cost, Rarity: models.RarityCommon, Items: items}
	require.NoError(t, datastore.InsertLootBox(context.Background(), db, box))
	require.NotZero(t, box.ID)

	return box
}

func TestOpenLootBoxDebitsAndGrants(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	service := newTestServiceReward(db, fixedRandSource{0.1})

	common := seedReward(t, db, "Midnight Theme", models.RewardTypeTheme, models.RarityCommon)
	uncommon := seedReward(t, db, "Ember Theme", models.RewardTypeTheme, models.RarityUncommon)
	box := seedLootBox(t, db, "Basic Loot Box", 3, []models.LootBoxItem{
		{RewardID: common.ID, Weight: 70},
		{RewardID: uncommon.ID, Weight: 30},
	})

	userID := int64(1)
	_, err := service.serviceKeys.Credit(ctx, userID, 5, "task_completion")
	require.NoError(t, err)

	opening, err := service.openLootBox(ctx, userID, box.ID)
	require.NoError(t, err)
	assert.Equal(t, common.ID, opening.Reward.ID)
	assert.True(t, opening.IsNew)
	assert.Equal(t, 2, opening.RemainingKeys)

	owned, err := service.ListOwnedRewards(ctx, userID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, common.ID, owned[0].RewardID)
	assert.False(t, owned[0].IsActive)

	// 2 keys left, the box costs 3
	_, err = service.openLootBox(ctx, userID, box.ID)
	assert.ErrorContains(t, err, ErrInsufficientFunds.Error())

	balance, err := service.GetKeys(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, balance)
}

func TestOpenLootBoxDuplicateWin(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	service := newTestServiceReward(db, fixedRandSource{0.1})

	reward := seedReward(t, db, "Early Bird Badge", models.RewardTypeBadge, models.RarityCommon)
	box := seedLootBox(t, db, "Basic Loot Box", 1, []models.LootBoxItem{
		{RewardID: reward.ID, Weight: 100},
	})

	userID := int64(1)
	_, err := service.serviceKeys.Credit(ctx, userID, 2, "task_completion")
	require.NoError(t, err)

	opening, err := service.openLootBox(ctx, userID, box.ID)
	require.NoError(t, err)
	assert.True(t, opening.IsNew)

	// duplicate win still costs a key and grants nothing new
	opening, err = service.openLootBox(ctx, userID, box.ID)
	require.NoError(t, err)
	assert.False(t, opening.IsNew)
	assert.Equal(t, 0, opening.RemainingKeys)

	owned, err := service.ListOwnedRewards(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestOpenLootBoxDegenerate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	service := newTestServiceReward(db, fixedRandSource{0.1})

	box := seedLootBox(t, db, "Empty Loot Box", 1, nil)

	userID := int64(1)
	_, err := service.serviceKeys.Credit(ctx, userID, 5, "task_completion")
	require.NoError(t, err)

	_, err = service.openLootBox(ctx, userID, box.ID)
	assert.ErrorContains(t, err, ErrDegenerateBox.Error())

	// nothing was charged
	balance, err := service.GetKeys(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 5, balance)
}

func TestOpenLootBoxUnknown(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	service := newTestServiceReward(db, fixedRandSource{0.1})

	_, err := service.openLootBox(ctx, 1, 999)
	assert.Error(t, err)
}

func TestActivateRewardExclusivity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	service := newTestServiceReward(db, fixedRandSource{0.1})

	themeA := seedReward(t, db, "Midnight Theme", models.RewardTypeTheme, models.RarityCommon)
	themeB := seedReward(t, db, "Ember Theme", models.RewardTypeTheme, models.RarityUncommon)
	badge := seedReward(t, db, "Early Bird Badge", models.RewardTypeBadge, models.RarityCommon)

	userID := int64(1)
	for _, reward := range []*models.Reward{themeA, themeB, badge} {
		_, err := datastore.InsertOwnershipRecord(ctx, db, &models.OwnershipRecord{
			UserID:     userID,
			RewardID:   reward.ID,
			AcquiredAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	record, err := service.ActivateReward(ctx, userID, themeA.ID)
	require.NoError(t, err)
	assert.True(t, record.IsActive)

	// activating a sibling theme deactivates the previous one
	record, err = service.ActivateReward(ctx, userID, themeB.ID)
	require.NoError(t, err)
	assert.True(t, record.IsActive)

	// a badge activates independently of themes
	_, err = service.ActivateReward(ctx, userID, badge.ID)
	require.NoError(t, err)

	active, err := service.ListActiveRewards(ctx, userID)
	require.NoError(t, err)
	require.Len(t, active, 2)

	activeIDs := []int64{active[0].RewardID, active[1].RewardID}
	assert.ElementsMatch(t, []int64{themeB.ID, badge.ID}, activeIDs)
}

func TestActivateRewardIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	service := newTestServiceReward(db, fixedRandSource{0.1})

	theme := seedReward(t, db, "Midnight Theme", models.RewardTypeTheme, models.RarityCommon)

	userID := int64(1)
	_, err := datastore.InsertOwnershipRecord(ctx, db, &models.OwnershipRecord{
		UserID:     userID,
		RewardID:   theme.ID,
		AcquiredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = service.ActivateReward(ctx, userID, theme.ID)
	require.NoError(t, err)

	record, err := service.ActivateReward(ctx, userID, theme.ID)
	require.NoError(t, err)
	assert.True(t, record.IsActive)

	active, err := service.ListActiveRewards(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestActivateRewardNotOwned(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	service := newTestServiceReward(db, fixedRandSource{0.1})

	theme := seedReward(t, db, "Midnight Theme", models.RewardTypeTheme, models.RarityCommon)

	_, err := service.ActivateReward(ctx, 1, theme.ID)
	assert.ErrorContains(t, err, ErrNotOwned.Error())
}

func TestCreditKeysValidation(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	service := newTestServiceReward(db, fixedRandSource{0.1})

	_, err := service.CreditKeysForTaskCompletion(ctx, 1, 0)
	assert.ErrorContains(t, err, ErrInvalidAmount.Error())

	_, err = service.CreditKeysForTaskCompletion(ctx, 1, -3)
	assert.ErrorContains(t, err, ErrInvalidAmount.Error())

	count, err := service.CreditKeysForTaskCompletion(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
