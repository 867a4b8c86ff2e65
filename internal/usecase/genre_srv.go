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

type GenreService interface {
	GetAllGenres(ctx context.Context, search string, req request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
	now       func() time.Time
	log       *zap.Logger
}

func NewGenreService(genreRepo repository.GenreRepository, now func() time.Time, log *zap.Logger) GenreService {
	return &genreService{
		genreRepo: genreRepo,
		now:       now,
		log:       log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) GetAllGenres(ctx context.Context, search string, req request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := s.genreRepo.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to get genres", err)
	}

	total, err := s.genreRepo.CountAll(ctx, search)
	if err != nil {
		return nil, apperror.Internal("failed to count genres", err)
	}

	data := make([]response.GenreResponse, len(genres))
	for i, g := range genres {
		data[i] = response.GenreToResponse(g)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *genreService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.now()},
		Name:       req.Name,
		Slug:       req.Slug,
	}

	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, apperror.Conflict("slug", "Genre with this slug already exists")
		}
		return nil, apperror.Internal("failed to create genre", err)
	}

	s.log.Info("Genre created", zap.String("slug", genre.Slug))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, slug string) error {
	if err := s.genreRepo.DeleteBySlug(ctx, slug); err != nil {
		if isNotFound(err) {
			return apperror.NotFound("Genre not found")
		}
		return apperror.Internal("failed to delete genre", err)
	}
	return nil
}
