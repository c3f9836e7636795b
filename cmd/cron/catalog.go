package main

import (
	"context"
	"log"
	"time"

	"keyquest/internal/datastore"
	"keyquest/internal/pkg/caching"
	"keyquest/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
)

// CatalogRewarmJob refreshes the loot box and reward cache entries on a
// schedule so reads after a catalog edit never serve a cold cache stampede.
type CatalogRewarmJob struct {
	Cache caching.Cache
	Db    *bun.DB
}

func NewCatalogRewarmJob(redisClient redis.UniversalClient, db *bun.DB) *CatalogRewarmJob {
	cash, err := caching.NewCacheRedis(redisClient, false)
	if err != nil {
		log.Fatal(err)
	}

	return &CatalogRewarmJob{
		Cache: cash,
		Db:    db,
	}
}

func (j *CatalogRewarmJob) Start(cronRunner *cron.Cron) {
	timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, "CRONJOB_TIME_CATALOG_REWARM")
	if err != nil {
		log.Println(err)
		return
	}

	if timeline == nil || timeline.Value == "" {
		log.Println("No timeline found")
		return
	}

	_, err = cronRunner.AddFunc(timeline.Value, j.runScheduledTask)
	log.Println("Catalog rewarm cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", timeline.Value, err)
	j.runScheduledTask()
}

func (j *CatalogRewarmJob) runScheduledTask() {
	ctx := context.Background()
	log.Println("Start rewarming catalog cache ...")

	lootBoxes, err := datastore.ListLootBoxes(ctx, j.Db)
	if err != nil {
		log.Println(err)
		return
	}

	err = j.Cache.Set(ctx, services.DBKeyLootBoxes(), lootBoxes, services.CACHE_TTL_5_MINS)
	if err != nil {
		log.Println(err)
	}

	for _, box := range lootBoxes {
		box := box
		err = j.Cache.Set(ctx, services.DBKeyLootBox(box.ID), &box, services.CACHE_TTL_5_MINS)
		if err != nil {
			log.Println(err)
		}

		for _, item := range box.Items {
			reward, err := datastore.GetRewardByID(ctx, j.Db, item.RewardID)
			if err != nil {
				log.Println(err)
				continue
			}

			err = j.Cache.Set(ctx, services.DBKeyReward(reward.ID), reward, services.CACHE_TTL_5_MINS)
			if err != nil {
				log.Println(err)
			}
		}
	}

	log.Println("Catalog cache rewarmed")
}
