package usecase

import (
	"context"
	"fmt"
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

type TitleService interface {
	GetAllTitles(ctx context.Context, filter entity.TitleFilter, req request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	GetTitle(ctx context.Context, id string) (*response.TitleResponse, error)
	CreateTitle(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error)
	// ReplaceTitle overwrites every field; UpdateTitle only the ones set.
	ReplaceTitle(ctx context.Context, id string, req *request.TitleRequest) (*response.TitleResponse, error)
	UpdateTitle(ctx context.Context, id string, req *request.TitleUpdateRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, id string) error
}

// staleReference is reported when a genre or category is deleted between
// resolving it and writing the title.
const staleReference = "Genre or category no longer exists"

type titleService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, now func() time.Time, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "title")),
	}
}

func (s *titleService) GetAllTitles(ctx context.Context, filter entity.TitleFilter, req request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	titles, err := s.repo.Title.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to get titles", err)
	}

	total, err := s.repo.Title.CountAll(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("failed to count titles", err)
	}

	ids := make([]uuid.UUID, 0, len(titles))
	var categoryIDs []uuid.UUID
	seen := map[uuid.UUID]bool{}
	for _, t := range titles {
		ids = append(ids, t.ID)
		if t.CategoryID != nil && !seen[*t.CategoryID] {
			seen[*t.CategoryID] = true
			categoryIDs = append(categoryIDs, *t.CategoryID)
		}
	}

	ratings, err := s.repo.Review.RatingsByTitleIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal("failed to get ratings", err)
	}
	genres, err := s.repo.Genre.FindByTitleIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal("failed to get genres", err)
	}
	categories, err := s.repo.Category.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, apperror.Internal("failed to get categories", err)
	}

	data := make([]response.TitleResponse, len(titles))
	for i, t := range titles {
		var rating *float64
		if r, ok := ratings[t.ID]; ok {
			rating = &r
		}
		var category *entity.Category
		if t.CategoryID != nil {
			category = categories[*t.CategoryID]
		}
		data[i] = response.TitleToResponse(t, genres[t.ID], category, rating)
	}

	s.log.Debug("Titles retrieved",
		zap.Int("count", len(titles)),
		zap.Int64("total", total))

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *titleService) GetTitle(ctx context.Context, id string) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, title)
}

func (s *titleService) CreateTitle(ctx context.Context, req *request.TitleRequest) (*response.TitleResponse, error) {
	if err := s.validateTitle(req, req.Year); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	now := s.now()
	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: deref(req.Description),
	}
	if category != nil {
		title.CategoryID = &category.ID
	}

	if err := s.repo.Title.Create(ctx, title, genreIDs(genres)); err != nil {
		if isMissingReference(err) {
			return nil, apperror.NotFound(staleReference)
		}
		return nil, apperror.Internal("failed to create title", err)
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name))

	resp := response.TitleToResponse(title, genres, category, nil)
	return &resp, nil
}

func (s *titleService) ReplaceTitle(ctx context.Context, id string, req *request.TitleRequest) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateTitle(req, req.Year); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	title.Name = req.Name
	title.Year = req.Year
	title.Description = deref(req.Description)
	title.CategoryID = nil
	if category != nil {
		title.CategoryID = &category.ID
	}

	return s.save(ctx, title, genres)
}

func (s *titleService) UpdateTitle(ctx context.Context, id string, req *request.TitleUpdateRequest) (*response.TitleResponse, error) {
	title, err := s.findTitle(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateTitle(req, req.Year); err != nil {
		return nil, err
	}

	var genres []*entity.Genre
	if req.Genre != nil {
		genres, err = s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
	} else {
		genres, err = s.repo.Genre.FindByTitleID(ctx, title.ID)
		if err != nil {
			return nil, apperror.Internal("failed to get genres", err)
		}
	}

	if req.Category != nil {
		category, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = nil
		if category != nil {
			title.CategoryID = &category.ID
		}
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}

	return s.save(ctx, title, genres)
}

func (s *titleService) DeleteTitle(ctx context.Context, id string) error {
	titleID, err := parseID(id, "Title")
	if err != nil {
		return err
	}

	if err := s.repo.Title.Delete(ctx, titleID); err != nil {
		if isNotFound(err) {
			return apperror.NotFound("Title not found")
		}
		return apperror.Internal("failed to delete title", err)
	}
	return nil
}

func (s *titleService) save(ctx context.Context, title *entity.Title, genres []*entity.Genre) (*response.TitleResponse, error) {
	title.Touch(s.now())

	if err := s.repo.Title.Update(ctx, title, genreIDs(genres)); err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("Title not found")
		}
		if isMissingReference(err) {
			return nil, apperror.NotFound(staleReference)
		}
		return nil, apperror.Internal("failed to update title", err)
	}

	s.log.Info("Title updated", zap.String("title_id", title.ID.String()))

	return s.render(ctx, title)
}

func (s *titleService) findTitle(ctx context.Context, id string) (*entity.Title, error) {
	titleID, err := parseID(id, "Title")
	if err != nil {
		return nil, err
	}

	title, err := s.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		return nil, apperror.Internal("failed to get title", err)
	}
	if title == nil {
		return nil, apperror.NotFound("Title not found")
	}
	return title, nil
}

// render loads the genres, category and rating of title.
func (s *titleService) render(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	genres, err := s.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		return nil, apperror.Internal("failed to get genres", err)
	}

	var category *entity.Category
	if title.CategoryID != nil {
		categories, err := s.repo.Category.FindByIDs(ctx, []uuid.UUID{*title.CategoryID})
		if err != nil {
			return nil, apperror.Internal("failed to get category", err)
		}
		category = categories[*title.CategoryID]
	}

	rating, err := s.repo.Review.Rating(ctx, title.ID)
	if err != nil {
		return nil, apperror.Internal("failed to get rating", err)
	}

	resp := response.TitleToResponse(title, genres, category, rating)
	return &resp, nil
}

// validateTitle runs tag validation on req and checks year against the
// current clock.
func (s *titleService) validateTitle(req any, year *int) error {
	errs := utils.ValidateStruct(req)
	if year != nil {
		current := s.now().Year()
		if *year < entity.MinTitleYear || *year > current {
			if errs == nil {
				errs = map[string]string{}
			}
			errs["year"] = fmt.Sprintf("Year must be between %d and %d", entity.MinTitleYear, current)
		}
	}
	if len(errs) > 0 {
		s.log.Warn("Title validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return apperror.Validation("Validation failed", errs)
	}
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	unique := make([]string, 0, len(slugs))
	seen := map[string]bool{}
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			unique = append(unique, slug)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}

	genres, err := s.repo.Genre.FindBySlugs(ctx, unique)
	if err != nil {
		return nil, apperror.Internal("failed to resolve genres", err)
	}

	if len(genres) != len(unique) {
		found := map[string]bool{}
		for _, g := range genres {
			found[g.Slug] = true
		}
		for _, slug := range unique {
			if !found[slug] {
				return nil, apperror.FieldNotFound("genre", fmt.Sprintf("Genre %q not found", slug))
			}
		}
	}

	return genres, nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug *string) (*entity.Category, error) {
	if slug == nil || *slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, *slug)
	if err != nil {
		return nil, apperror.Internal("failed to resolve category", err)
	}
	if category == nil {
		return nil, apperror.FieldNotFound("category", fmt.Sprintf("Category %q not found", *slug))
	}
	return category, nil
}

func genreIDs(genres []*entity.Genre) []uuid.UUID {
	ids := make([]uuid.UUID, len(genres))
	for i, g := range genres {
		ids[i] = g.ID
	}
	return ids
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
