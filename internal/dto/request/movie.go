package request

type MovieUpsertRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	GenreIDs        []string `json:"genre_ids" validate:"dive,uuid"`
}
