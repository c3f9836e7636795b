package datastore

import (
	"context"
	"keyquest/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableLootBox(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.LootBox)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.LootBox)(nil)).Index("index_loot_box_name").Unique().IfNotExists().Column("name").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertLootBox(ctx context.Context, db bun.IDB, lootBox *models.LootBox) error {
	_, err := db.NewInsert().Model(lootBox).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetLootBoxByID(ctx context.Context, db bun.IDB, id int64) (*models.LootBox, error) {
	var lootBox models.LootBox
	err := db.NewSelect().Model(&lootBox).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &lootBox, nil
}

// ListLootBoxes returns the whole catalog, cheapest first. Ordering is a
// display convenience.
func ListLootBoxes(ctx context.Context, db bun.IDB) ([]models.LootBox, error) {
	var lootBoxes []models.LootBox
	err := db.NewSelect().Model(&lootBoxes).Order("cost ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return lootBoxes, nil
}
