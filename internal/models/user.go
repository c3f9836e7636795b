package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User mirrors the identity the auth layer hands us. The engine itself only
// ever needs the id.
type User struct {
	bun.BaseModel `bun:"table:user"`
	ID            int64     `bun:"id,pk" json:"id"`
	Username      string    `bun:"username" json:"username"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at" json:"updated_at"`
}

// UserFromAuth only used in middleware
type UserFromAuth struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
