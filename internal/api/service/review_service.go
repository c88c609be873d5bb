package service

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validate"
	"reviewhub/internal/cache"

	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, actorID string, titleID int64, text string, score int) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID int64, patch dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID int64) error
	GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
	ratingCache *cache.RatingCache
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, ratingCache *cache.RatingCache) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
		ratingCache: ratingCache,
	}
}

// Create posts a review under a title. Author and title come from the request
// context and path, never from the body. The one-review-per-(author, title)
// rule is enforced by the database unique index: a violation on insert is the
// authoritative duplicate signal, so two concurrent creations cannot both
// succeed.
func (s *reviewService) Create(ctx context.Context, actorID string, titleID int64, text string, score int) (*dto.ReviewResponse, error) {
	if err := validate.Score(score); err != nil {
		return nil, err
	}

	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	review := &models.Review{
		AuthorID: actorID,
		TitleID:  titleID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	s.invalidateRating(ctx, titleID)

	// Reload with author data
	review, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return dto.ReviewFromModel(review), nil
}

// Update modifies text and/or score. Only the author, a moderator, or an
// admin may do so.
func (s *reviewService) Update(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID int64, patch dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.getScoped(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if review.AuthorID != actorID && !actorRole.CanModerate() {
		return nil, ErrForbidden
	}

	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		if err := validate.Score(*patch.Score); err != nil {
			return nil, err
		}
		review.Score = *patch.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	s.invalidateRating(ctx, titleID)

	return dto.ReviewFromModel(review), nil
}

// Delete removes a review (and, through the cascade, its comments) under the
// same ownership rule as Update.
func (s *reviewService) Delete(ctx context.Context, actorID string, actorRole models.Role, titleID, reviewID int64) error {
	review, err := s.getScoped(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if review.AuthorID != actorID && !actorRole.CanModerate() {
		return ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.invalidateRating(ctx, titleID)
	return nil
}

// invalidateRating drops the cached mean for a title. A failure only costs a
// cache miss on the next read, so it is logged rather than returned.
func (s *reviewService) invalidateRating(ctx context.Context, titleID int64) {
	if err := s.ratingCache.Invalidate(ctx, titleID); err != nil {
		slog.WarnContext(ctx, "rating cache invalidation failed", "title_id", titleID, "error", err)
	}
}

func (s *reviewService) GetByID(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getScoped(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.ReviewFromModel(review), nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.ReviewFromModel(&reviews[i]))
	}

	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

// getScoped loads a review and checks it belongs to the title in the path; a
// review reached through the wrong title is a 404, not a leak.
func (s *reviewService) getScoped(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}
