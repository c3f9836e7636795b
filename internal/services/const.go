package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidAmount = errors.New("amount must be a positive number of keys")
var ErrInsufficientFunds = errors.New("not enough keys")
var ErrDegenerateBox = errors.New("loot box has no openable items")
var ErrNotOwned = errors.New("reward not owned")
var ErrConflict = errors.New("balance changed concurrently, try again")
var ErrLootBoxLock = errors.New("loot box opening locked")

const (
	CONFIG_SERVER_MODE          = "SERVER_MODE"
	CONFIG_TASK_COMPLETION_KEYS = "TASK_COMPLETION_KEYS"
	CONFIG_CATALOG_CACHE_TTL    = "CATALOG_CACHE_TTL_SECONDS"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_STAGING     = "staging"
	SERVER_MODE_PRODUCTION  = "production"

	DEFAULT_TASK_COMPLETION_KEYS = 1

	LOOT_BOX_RATE_LIMIT_PER_MINUTE = 30

	CACHE_TTL_5_SECONDS = 5 * time.Second
	CACHE_TTL_1_MIN     = 1 * time.Minute
	CACHE_TTL_5_MINS    = 5 * time.Minute
	CACHE_TTL_1_HOUR    = 1 * time.Hour
)

func LockKeyUserLootBox(userID int64) string {
	return fmt.Sprintf("lock:user-loot-box:%d", userID)
}

// db
func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyLootBoxes() string {
	return "loot_boxes:all"
}

func DBKeyLootBox(id int64) string {
	return fmt.Sprintf("loot_box:%d", id)
}

func DBKeyReward(id int64) string {
	return fmt.Sprintf("reward:%d", id)
}

func DBKeyUser(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func LimitKeyUserLootBox(userID int64) string {
	return fmt.Sprintf("limit:user-loot-box:%d", userID)
}
