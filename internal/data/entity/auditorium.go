package entity

import "github.com/google/uuid"

type Auditorium struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}
