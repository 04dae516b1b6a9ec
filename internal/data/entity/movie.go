package entity

type Movie struct {
	BaseWithUpdate
	Title           string  `db:"title"`
	Description     *string `db:"description"`
	DurationMinutes int     `db:"duration_minutes"`
}
