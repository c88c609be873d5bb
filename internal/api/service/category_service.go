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

type CategoryService interface {
	Create(ctx context.Context, name, slug string) (*dto.CategoryResponse, error)
	DeleteBySlug(ctx context.Context, slug string) error
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, name, slug string) (*dto.CategoryResponse, error) {
	if err := validate.Slug(slug); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}

func (s *categoryService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.categoryRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.CategoryResponse], error) {
	categories, total, err := s.categoryRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, dto.CategoryFromModel(c))
	}

	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}
