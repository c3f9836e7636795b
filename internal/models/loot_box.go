package models

import (
	"time"

	"github.com/uptrace/bun"
)

// LootBoxItem pairs a reward with its relative draw weight. Weights are
// relative, not percentages; the resolver normalizes over their sum.
type LootBoxItem struct {
	RewardID int64   `json:"reward_id"`
	Weight   float64 `json:"weight"`
}

type LootBox struct {
	bun.BaseModel `bun:"table:loot_box"`
	ID            int64         `bun:"id,pk,autoincrement" json:"id"`
	Name          string        `bun:"name,notnull" json:"name"`
	Description   string        `bun:"description" json:"description"`
	Cost          int           `bun:"cost,notnull" json:"cost"`
	Rarity        Rarity        `bun:"rarity,notnull" json:"rarity"`
	Items         []LootBoxItem `bun:"items,type:jsonb" json:"items"`
	ImageURL      *string       `bun:"image_url" json:"image_url"`
	CreatedAt     time.Time     `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time     `bun:"updated_at" json:"updated_at"`
}

// LootBoxOpening is the result of a paid open: what dropped, whether the user
// already owned it, and the balance left after the debit.
type LootBoxOpening struct {
	Reward        Reward `json:"reward"`
	IsNew         bool   `json:"is_new"`
	RemainingKeys int    `json:"key_balance"`
}
