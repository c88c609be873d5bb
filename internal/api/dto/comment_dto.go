package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

type CreateCommentDTO struct {
	Text string `json:"text" binding:"required"`
}

type UpdateCommentDTO struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	ReviewID  int64     `json:"review_id"`
	CreatedAt time.Time `json:"created_at"`
}

func CommentFromModel(c *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		Author:    c.Author.Username,
		Text:      c.Text,
		ReviewID:  c.ReviewID,
		CreatedAt: c.CreatedAt,
	}
}
