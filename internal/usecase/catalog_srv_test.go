package usecase

import (
	"context"
	"testing"

	"review-service/internal/data/entity"
	"review-service/internal/data/repository"
	"review-service/internal/dto/request"
	"review-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAllCategories_PassesSearch(t *testing.T) {
	m := newMocks()
	svc := NewCategoryService(m.categories, clock, testLogger())
	ctx := context.Background()
	page := request.PaginatedRequest{Page: 2, PerPage: 5}

	m.categories.On("FindAll", ctx, "fil", 5, 5).Return([]*entity.Category{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, Name: "Film", Slug: "film"},
	}, nil)
	m.categories.On("CountAll", ctx, "fil").Return(int64(6), nil)

	resp, err := svc.GetAllCategories(ctx, "fil", page)

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "film", resp.Data[0].Slug)
	assert.Equal(t, int64(6), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	m.assertExpectations(t)
}

func TestCreateCategory(t *testing.T) {
	tests := []struct {
		name    string
		req     request.CategoryRequest
		repoErr error
		kind    apperror.Kind
		field   string
	}{
		{"created", request.CategoryRequest{Name: "Film", Slug: "film"}, nil, 0, ""},
		{"slug taken", request.CategoryRequest{Name: "Film", Slug: "film"}, &repository.UniqueError{Constraint: "categories_slug_key"}, apperror.KindConflict, "slug"},
		{"bad slug", request.CategoryRequest{Name: "Film", Slug: "no spaces"}, nil, apperror.KindValidation, "slug"},
		{"missing name", request.CategoryRequest{Slug: "film"}, nil, apperror.KindValidation, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			svc := NewCategoryService(m.categories, clock, testLogger())
			m.categories.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool {
				return c.Slug == tt.req.Slug && c.CreatedAt.Equal(fixedNow)
			})).Return(tt.repoErr).Maybe()

			resp, err := svc.CreateCategory(context.Background(), &tt.req)

			if tt.field == "" {
				require.NoError(t, err)
				assert.Equal(t, "film", resp.Slug)
				return
			}
			require.Error(t, err)
			assert.True(t, apperror.Is(err, tt.kind))
			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}

func TestDeleteCategory_Unknown(t *testing.T) {
	m := newMocks()
	svc := NewCategoryService(m.categories, clock, testLogger())
	m.categories.On("DeleteBySlug", mock.Anything, "ghost").Return(errNotFound())

	err := svc.DeleteCategory(context.Background(), "ghost")

	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestGetAllGenres_PassesSearch(t *testing.T) {
	m := newMocks()
	svc := NewGenreService(m.genres, clock, testLogger())
	ctx := context.Background()

	m.genres.On("FindAll", ctx, "dra", request.DefaultPerPage, 0).Return([]*entity.Genre{}, nil)
	m.genres.On("CountAll", ctx, "dra").Return(int64(0), nil)

	resp, err := svc.GetAllGenres(ctx, "dra", request.NewPaginatedRequest("", ""))

	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 0, resp.Pagination.TotalPages)
	m.assertExpectations(t)
}

func TestCreateGenre_SlugTaken(t *testing.T) {
	m := newMocks()
	svc := NewGenreService(m.genres, clock, testLogger())
	m.genres.On("Create", mock.Anything, mock.Anything).
		Return(&repository.UniqueError{Constraint: "genres_slug_key"})

	_, err := svc.CreateGenre(context.Background(), &request.GenreRequest{Name: "Drama", Slug: "drama"})

	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestDeleteGenre(t *testing.T) {
	m := newMocks()
	svc := NewGenreService(m.genres, clock, testLogger())
	m.genres.On("DeleteBySlug", mock.Anything, "drama").Return(nil)
	m.genres.On("DeleteBySlug", mock.Anything, "ghost").Return(errNotFound())

	assert.NoError(t, svc.DeleteGenre(context.Background(), "drama"))
	assert.True(t, apperror.Is(svc.DeleteGenre(context.Background(), "ghost"), apperror.KindNotFound))
}
