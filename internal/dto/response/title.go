package response

import "review-service/internal/data/entity"

type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        *int              `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

// TitleToResponse renders a title. A nil rating means the title has no
// reviews and is rendered as null.
func TitleToResponse(title *entity.Title, genres []*entity.Genre, category *entity.Category, rating *float64) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genre:       make([]GenreResponse, 0, len(genres)),
	}

	for _, g := range genres {
		resp.Genre = append(resp.Genre, GenreToResponse(g))
	}

	if category != nil {
		c := CategoryToResponse(category)
		resp.Category = &c
	}

	return resp
}
