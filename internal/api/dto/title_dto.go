package dto

import "reviewhub/internal/api/models"

// CreateTitleDTO names the category and genres by slug; the service resolves
// them and rejects unresolved slugs.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genre"`
}

// UpdateTitleDTO carries a partial change; nil fields are left untouched.
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

// TitleResponse embeds the full category/genre objects and the derived
// rating. Rating is null, not zero, when the title has no reviews.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description *string           `json:"description"`
	Genres      []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
	Rating      *float64          `json:"rating"`
}

func TitleFromModel(t *models.Title, rating *float64) *TitleResponse {
	resp := &TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genres:      make([]GenreResponse, 0, len(t.Genres)),
		Rating:      rating,
	}
	for _, g := range t.Genres {
		resp.Genres = append(resp.Genres, GenreFromModel(g))
	}
	if t.Category != nil {
		c := CategoryFromModel(*t.Category)
		resp.Category = &c
	}
	return resp
}
