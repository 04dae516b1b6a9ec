package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

type BaseWithUpdate struct {
	Base
	UpdatedAt time.Time `db:"updated_at"`
}

// NewBase assigns a fresh ID stamped at now in UTC
func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now.UTC()}
}

func NewBaseWithUpdate(now time.Time) BaseWithUpdate {
	base := NewBase(now)
	return BaseWithUpdate{Base: base, UpdatedAt: base.CreatedAt}
}
