package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

// CreateReviewDTO carries only the client-supplied fields; author and title
// come from the request context, never from the body.
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

// UpdateReviewDTO allows partial changes to text and score only.
type UpdateReviewDTO struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	TitleID   int64     `json:"title_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ReviewFromModel(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		Author:    r.Author.Username,
		Text:      r.Text,
		Score:     r.Score,
		TitleID:   r.TitleID,
		CreatedAt: r.CreatedAt,
	}
}
