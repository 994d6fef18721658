package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel audit timestamps embedded by every table
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// VersionedModel adds an optimistic-lock counter.
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// newID fills an empty primary key. Keys are generated in Go so the same
// schema works on PostgreSQL and on SQLite in tests.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
