package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, actorID string, titleID, reviewID int64, text string) (*dto.CommentResponse, error)
	Update(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID, commentID int64, text string) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID, commentID int64) error
	GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) Create(ctx context.Context, actorID string, titleID, reviewID int64, text string) (*dto.CommentResponse, error) {
	if err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID: actorID,
		ReviewID: reviewID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with author data
	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.CommentFromModel(comment), nil
}

func (s *commentService) Update(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID, commentID int64, text string) (*dto.CommentResponse, error) {
	comment, err := s.getScoped(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != actorID && !actorRole.CanModerate() {
		return nil, ErrForbidden
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return dto.CommentFromModel(comment), nil
}

func (s *commentService) Delete(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID, commentID int64) error {
	comment, err := s.getScoped(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != actorID && !actorRole.CanModerate() {
		return ErrForbidden
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func (s *commentService) GetByID(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.getScoped(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.CommentFromModel(comment), nil
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error) {
	if err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.CommentFromModel(&comments[i]))
	}

	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

// resolveReview checks the review exists under the title in the path.
func (s *commentService) resolveReview(ctx context.Context, titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.TitleID != titleID {
		return ErrReviewNotFound
	}
	return nil
}

// getScoped loads a comment and checks its review chain matches the path.
func (s *commentService) getScoped(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.resolveReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}
