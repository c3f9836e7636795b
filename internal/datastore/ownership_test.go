package datastore

import (
	"context"
	"testing"
	"time"

	"keyquest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newOwnershipTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, CreateTableReward(ctx, db))
	require.NoError(t, CreateTableOwnershipRecord(ctx, db))

	return db
}

func insertTestReward(t *testing.T, db *bun.DB, name string, rewardType models.RewardType) *models.Reward {
	t.Helper()

	reward := &models.Reward{Name: name, Type: rewardType, Rarity: models.RarityCommon}
	require.NoError(t, InsertReward(context.Background(), db, reward))

	return reward
}

func TestInsertOwnershipRecordUnique(t *testing.T) {
	ctx := context.Background()
	db := newOwnershipTestDB(t)

	reward := insertTestReward(t, db, "Midnight Theme", models.RewardTypeTheme)

	record := &models.OwnershipRecord{UserID: 1, RewardID: reward.ID, AcquiredAt: time.Now().UTC()}
	isNew, err := InsertOwnershipRecord(ctx, db, record)
	require.NoError(t, err)
	assert.True(t, isNew)

	dup := &models.OwnershipRecord{UserID: 1, RewardID: reward.ID, AcquiredAt: time.Now().UTC()}
	isNew, err = InsertOwnershipRecord(ctx, db, dup)
	require.NoError(t, err)
	assert.False(t, isNew)

	// another user owning the same reward is fine
	other := &models.OwnershipRecord{UserID: 2, RewardID: reward.ID, AcquiredAt: time.Now().UTC()}
	isNew, err = InsertOwnershipRecord(ctx, db, other)
	require.NoError(t, err)
	assert.True(t, isNew)
}

func TestDeactivateSiblingRewards(t *testing.T) {
	ctx := context.Background()
	db := newOwnershipTestDB(t)

	themeA := insertTestReward(t, db, "Midnight Theme", models.RewardTypeTheme)
	themeB := insertTestReward(t, db, "Ember Theme", models.RewardTypeTheme)
	badge := insertTestReward(t, db, "Early Bird Badge", models.RewardTypeBadge)

	for _, reward := range []*models.Reward{themeA, themeB, badge} {
		_, err := InsertOwnershipRecord(ctx, db, &models.OwnershipRecord{
			UserID:     1,
			RewardID:   reward.ID,
			AcquiredAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		require.NoError(t, ActivateOwnershipRecord(ctx, db, 1, reward.ID))
	}

	// deactivate every theme except B, the badge is untouched
	require.NoError(t, DeactivateSiblingRewards(ctx, db, 1, models.RewardTypeTheme, themeB.ID))

	active, err := ListActiveOwnershipRecords(ctx, db, 1)
	require.NoError(t, err)
	require.Len(t, active, 2)

	activeIDs := []int64{active[0].RewardID, active[1].RewardID}
	assert.ElementsMatch(t, []int64{themeB.ID, badge.ID}, activeIDs)
}

func TestListOwnershipRecordsLoadsReward(t *testing.T) {
	ctx := context.Background()
	db := newOwnershipTestDB(t)

	reward := insertTestReward(t, db, "Midnight Theme", models.RewardTypeTheme)
	_, err := InsertOwnershipRecord(ctx, db, &models.OwnershipRecord{
		UserID:     1,
		RewardID:   reward.ID,
		AcquiredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	records, err := ListOwnershipRecords(ctx, db, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Reward)
	assert.Equal(t, "Midnight Theme", records[0].Reward.Name)
}
