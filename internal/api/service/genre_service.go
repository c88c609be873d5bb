package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validate"

	"gorm.io/gorm"
)

type GenreService interface {
	Create(ctx context.Context, name, slug string) (*dto.GenreResponse, error)
	DeleteBySlug(ctx context.Context, slug string) error
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error)
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) Create(ctx context.Context, name, slug string) (*dto.GenreResponse, error) {
	if err := validate.Slug(slug); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: name, Slug: slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

func (s *genreService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.genreRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	return nil
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.GenreResponse], error) {
	genres, total, err := s.genreRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		responses = append(responses, dto.GenreFromModel(g))
	}

	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}
