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

type TitleService interface {
	Create(ctx context.Context, in dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, id int64, patch dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error)
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error)
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	reviewRepo   repository.ReviewRepository
	ratingCache  *cache.RatingCache
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	reviewRepo repository.ReviewRepository,
	ratingCache *cache.RatingCache,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		reviewRepo:   reviewRepo,
		ratingCache:  ratingCache,
	}
}

func (s *titleService) Create(ctx context.Context, in dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if err := validate.Year(in.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
	}

	if in.Category != nil {
		category, err := s.resolveCategory(ctx, *in.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, patch dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		title.Name = *patch.Name
	}
	if patch.Year != nil {
		if err := validate.Year(*patch.Year); err != nil {
			return nil, err
		}
		title.Year = *patch.Year
	}
	if patch.Description != nil {
		title.Description = patch.Description
	}
	if patch.Category != nil {
		category, err := s.resolveCategory(ctx, *patch.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	if patch.Genres != nil {
		genres, err := s.resolveGenres(ctx, *patch.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

// Delete removes the title; the storage layer cascades to its reviews and
// from there to their comments.
func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	if err := s.ratingCache.Invalidate(ctx, id); err != nil {
		slog.WarnContext(ctx, "rating cache invalidation failed", "title_id", id, "error", err)
	}
	return nil
}

func (s *titleService) GetByID(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	rating, err := s.titleRating(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.TitleFromModel(title, rating), nil
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated[dto.TitleResponse], error) {
	titles, total, err := s.titleRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].ID)
	}
	averages, err := s.reviewRepo.AverageScores(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *float64
		if avg, ok := averages[titles[i].ID]; ok {
			rating = &avg
		}
		responses = append(responses, *dto.TitleFromModel(&titles[i], rating))
	}

	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

// titleRating returns the derived mean score, consulting the cache first.
// nil means the title has no reviews yet.
func (s *titleService) titleRating(ctx context.Context, id int64) (*float64, error) {
	if rating, ok := s.ratingCache.Get(ctx, id); ok {
		return rating, nil
	}

	rating, err := s.reviewRepo.AverageScore(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ratingCache.Set(ctx, id, rating); err != nil {
		slog.WarnContext(ctx, "rating cache write failed", "title_id", id, "error", err)
	}
	return rating, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	// De-duplicate first: a repeated slug resolves to one row and must not
	// read as a missing genre.
	seen := make(map[string]struct{}, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		unique = append(unique, slug)
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, unique)
	if err != nil {
		return nil, err
	}
	// any slug that did not resolve is a missing genre
	if len(genres) != len(unique) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}
