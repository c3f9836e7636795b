package models

import (
	"time"

	"github.com/uptrace/bun"
)

// KeyBalance holds the spendable key count per user. The count is kept
// non-negative by conditional updates in the datastore, not by a constraint.
type KeyBalance struct {
	bun.BaseModel `bun:"table:key_balance"`
	UserID        int64     `bun:"user_id,pk" json:"user_id"`
	Count         int       `bun:"count,notnull,default:0" json:"count"`
	UpdatedAt     time.Time `bun:"updated_at,default:current_timestamp" json:"updated_at"`
}

// KeyEntry is an append-only audit line for every balance mutation.
type KeyEntry struct {
	bun.BaseModel `bun:"table:key_entry"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	Delta         int       `bun:"delta,notnull" json:"delta"`
	Reason        string    `bun:"reason,notnull" json:"reason"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
