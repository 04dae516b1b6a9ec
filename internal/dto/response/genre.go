package response

import "cinema-reservation/internal/data/entity"

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func GenresToResponse(genres []*entity.Genre) []GenreResponse {
	result := make([]GenreResponse, len(genres))
	for i, g := range genres {
		result[i] = GenreResponse{ID: g.ID.String(), Name: g.Name}
	}
	return result
}
