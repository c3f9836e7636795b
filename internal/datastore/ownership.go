package datastore

import (
	"context"
	"keyquest/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableOwnershipRecord(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.OwnershipRecord)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.OwnershipRecord)(nil)).Index("index_ownership_record_user_id_reward_id").Unique().IfNotExists().Column("user_id", "reward_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.OwnershipRecord)(nil)).Index("index_ownership_record_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func HasOwnershipRecord(ctx context.Context, db bun.IDB, userID int64, rewardID int64) (bool, error) {
	return db.NewSelect().Model((*models.OwnershipRecord)(nil)).
		Where("user_id = ?", userID).
		Where("reward_id = ?", rewardID).
		Exists(ctx)
}

func GetOwnershipRecord(ctx context.Context, db bun.IDB, userID int64, rewardID int64) (*models.OwnershipRecord, error) {
	var record models.OwnershipRecord
	err := db.NewSelect().Model(&record).
		Relation("Reward").
		Where("ownership_record.user_id = ?", userID).
		Where("ownership_record.reward_id = ?", rewardID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// InsertOwnershipRecord creates the record unless the (user, reward) pair
// already owns it. Returns whether a new record was written; winning a
// duplicate is a no-op on ownership.
func InsertOwnershipRecord(ctx context.Context, db bun.IDB, record *models.OwnershipRecord) (bool, error) {
	res, err := db.NewInsert().Model(record).On("CONFLICT (user_id, reward_id) DO NOTHING").Exec(ctx)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// DeactivateSiblingRewards clears is_active on every record of the user whose
// reward shares a type with the one being activated. One statement, the
// exclusivity invariant is never observable half-applied within a transaction.
func DeactivateSiblingRewards(ctx context.Context, db bun.IDB, userID int64, rewardType models.RewardType, keepRewardID int64) error {
	_, err := db.NewUpdate().Model((*models.OwnershipRecord)(nil)).
		Set("is_active = ?", false).
		Where("user_id = ?", userID).
		Where("reward_id != ?", keepRewardID).
		Where("reward_id IN (SELECT id FROM reward WHERE type = ?)", rewardType).
		Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func ActivateOwnershipRecord(ctx context.Context, db bun.IDB, userID int64, rewardID int64) error {
	_, err := db.NewUpdate().Model((*models.OwnershipRecord)(nil)).
		Set("is_active = ?", true).
		Where("user_id = ?", userID).
		Where("reward_id = ?", rewardID).
		Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func ListOwnershipRecords(ctx context.Context, db bun.IDB, userID int64) ([]models.OwnershipRecord, error) {
	var records []models.OwnershipRecord
	err := db.NewSelect().Model(&records).
		Relation("Reward").
		Where("ownership_record.user_id = ?", userID).
		Order("acquired_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func ListActiveOwnershipRecords(ctx context.Context, db bun.IDB, userID int64) ([]models.OwnershipRecord, error) {
	var records []models.OwnershipRecord
	err := db.NewSelect().Model(&records).
		Relation("Reward").
		Where("ownership_record.user_id = ?", userID).
		Where("ownership_record.is_active = ?", true).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}
