package models

import (
	"time"

	"github.com/uptrace/bun"
)

// OwnershipRecord marks that a user holds a reward. At most one record exists
// per (user, reward) pair, and at most one record per reward type may be
// active for a user at a time.
type OwnershipRecord struct {
	bun.BaseModel `bun:"table:ownership_record"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	RewardID      int64     `bun:"reward_id,notnull" json:"reward_id"`
	IsActive      bool      `bun:"is_active,notnull,default:false" json:"is_active"`
	AcquiredAt    time.Time `bun:"acquired_at,notnull" json:"acquired_at"`

	Reward *Reward `bun:"rel:belongs-to,join:reward_id=id" json:"reward,omitempty"`
}
