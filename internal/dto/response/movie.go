package response

import (
	"cinema-reservation/internal/data/entity"
	"time"
)

type MovieResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	Genres          []GenreResponse `json:"genres"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie, genres []*entity.Genre) MovieResponse {
	return MovieResponse{
		ID:              movie.ID.String(),
		Title:           movie.Title,
		Description:     movie.Description,
		DurationMinutes: movie.DurationMinutes,
		Genres:          GenresToResponse(genres),
		CreatedAt:       movie.CreatedAt.UTC(),
		UpdatedAt:       movie.UpdatedAt.UTC(),
	}
}
