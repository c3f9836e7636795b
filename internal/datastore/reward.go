package datastore

import (
	"context"
	"keyquest/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableReward(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Reward)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Reward)(nil)).Index("index_reward_name").Unique().IfNotExists().Column("name").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertReward(ctx context.Context, db bun.IDB, reward *models.Reward) error {
	_, err := db.NewInsert().Model(reward).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetRewardByID(ctx context.Context, db bun.IDB, id int64) (*models.Reward, error) {
	var reward models.Reward
	err := db.NewSelect().Model(&reward).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &reward, nil
}

func GetRewardByName(ctx context.Context, db bun.IDB, name string) (*models.Reward, error) {
	var reward models.Reward
	err := db.NewSelect().Model(&reward).Where("name = ?", name).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &reward, nil
}
