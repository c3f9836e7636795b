package models

import (
	"time"

	"github.com/uptrace/bun"
)

type RewardType string

const (
	RewardTypeTheme     RewardType = "theme"
	RewardTypeBadge     RewardType = "badge"
	RewardTypeAnimation RewardType = "animation"
	RewardTypeFeature   RewardType = "feature"
)

func (t RewardType) Valid() bool {
	switch t {
	case RewardTypeTheme, RewardTypeBadge, RewardTypeAnimation, RewardTypeFeature:
		return true
	}

	return false
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rank orders rarities weakest to strongest. Unknown rarities sort first.
func (r Rarity) Rank() int {
	switch r {
	case RarityCommon:
		return 1
	case RarityUncommon:
		return 2
	case RarityRare:
		return 3
	case RarityEpic:
		return 4
	case RarityLegendary:
		return 5
	}

	return 0
}

func (r Rarity) Valid() bool {
	return r.Rank() > 0
}

// Reward is a catalog entry. Payload is opaque to the engine, the frontend
// interprets it (theme colors, animation timings, feature flags...).
type Reward struct {
	bun.BaseModel `bun:"table:reward"`
	ID            int64                  `bun:"id,pk,autoincrement" json:"id"`
	Name          string                 `bun:"name,notnull" json:"name"`
	Type          RewardType             `bun:"type,notnull" json:"type"`
	Description   string                 `bun:"description" json:"description"`
	Rarity        Rarity                 `bun:"rarity,notnull" json:"rarity"`
	Payload       map[string]interface{} `bun:"payload,type:jsonb" json:"payload"`
	ImageURL      *string                `bun:"image_url" json:"image_url"`
	CreatedAt     time.Time              `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time              `bun:"updated_at" json:"updated_at"`
}
