package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"keyquest/internal/datastore"
	"keyquest/internal/models"
	"keyquest/internal/services"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigMigration(),
			commandSeedCatalog(),
			commandGrantKeys(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableKeyBalance(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableKeyEntry(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableReward(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableLootBox(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableOwnershipRecord(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert default configs to db
func commandConfigMigration() *cli.Command {
	return &cli.Command{
		Name:        "migrate-config",
		Description: "Insert default configs to db",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			configs := []models.Config{
				{Key: services.CONFIG_SERVER_MODE, Value: "production"},
				{Key: services.CONFIG_TASK_COMPLETION_KEYS, Value: "1"},
				{Key: services.CONFIG_CATALOG_CACHE_TTL, Value: "300"},
			}

			for _, config := range configs {
				err = datastore.InsertConfig(ctx, db, config)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func commandSeedCatalog() *cli.Command {
	return &cli.Command{
		Name:        "seed-catalog",
		Description: "Insert the default reward and loot box catalog",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			byRarity := map[models.Rarity][]int64{}
			for _, reward := range seedRewards {
				reward := reward
				err := datastore.InsertReward(ctx, db, &reward)
				if err != nil {
					log.Println(err)
					continue
				}

				byRarity[reward.Rarity] = append(byRarity[reward.Rarity], reward.ID)
			}

			rarities := []models.Rarity{
				models.RarityCommon,
				models.RarityUncommon,
				models.RarityRare,
				models.RarityEpic,
				models.RarityLegendary,
			}

			for _, box := range seedLootBoxes {
				box := box
				var items []models.LootBoxItem
				for _, rarity := range rarities {
					share, ok := box.shares[rarity]
					if !ok {
						continue
					}

					ids := byRarity[rarity]
					if len(ids) == 0 {
						continue
					}

					for _, id := range ids {
						items = append(items, models.LootBoxItem{
							RewardID: id,
							Weight:   share / float64(len(ids)),
						})
					}
				}

				box.lootBox.Items = items
				err := datastore.InsertLootBox(ctx, db, &box.lootBox)
				if err != nil {
					log.Println(err)
				}
			}

			fmt.Println("Catalog seeded")

			return nil
		},
	}
}

func commandGrantKeys() *cli.Command {
	return &cli.Command{
		Name:        "grant-keys",
		Description: "Credit keys to a user (ops escape hatch)",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:     "user",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "amount",
				Value: 1,
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			userID := c.Int64("user")
			amount := c.Int("amount")
			if amount <= 0 {
				return services.ErrInvalidAmount
			}

			return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				count, err := datastore.CreditKeys(ctx, tx, userID, amount)
				if err != nil {
					return err
				}

				err = datastore.InsertKeyEntry(ctx, tx, &models.KeyEntry{
					UserID: userID,
					Delta:  amount,
					Reason: "ops_grant",
				})
				if err != nil {
					return err
				}

				fmt.Printf("user %d now has %d keys\n", userID, count)
				return nil
			})
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
