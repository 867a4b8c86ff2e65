package usecase

import (
	"context"
	"errors"
	"time"

	"review-service/internal/data/entity"
	"review-service/internal/data/repository"
	"review-service/internal/dto/request"
	"review-service/internal/dto/response"
	"review-service/pkg/apperror"
	"review-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context, search string, req request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	now          func() time.Time
	log          *zap.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, now func() time.Time, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		now:          now,
		log:          log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context, search string, req request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := s.categoryRepo.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to get categories", err)
	}

	total, err := s.categoryRepo.CountAll(ctx, search)
	if err != nil {
		return nil, apperror.Internal("failed to count categories", err)
	}

	data := make([]response.CategoryResponse, len(categories))
	for i, c := range categories {
		data[i] = response.CategoryToResponse(c)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.now()},
		Name:       req.Name,
		Slug:       req.Slug,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, apperror.Conflict("slug", "Category with this slug already exists")
		}
		return nil, apperror.Internal("failed to create category", err)
	}

	s.log.Info("Category created", zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, slug string) error {
	if err := s.categoryRepo.DeleteBySlug(ctx, slug); err != nil {
		if isNotFound(err) {
			return apperror.NotFound("Category not found")
		}
		return apperror.Internal("failed to delete category", err)
	}
	return nil
}
