package entity

import "github.com/google/uuid"

type Genre struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

type MovieGenre struct {
	MovieID uuid.UUID `db:"movie_id"`
	GenreID uuid.UUID `db:"genre_id"`
}
