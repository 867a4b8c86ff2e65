package usecase

import (
	"context"
	"fmt"
	"time"

	"review-service/internal/data/entity"
	"review-service/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, search, limit, offset)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) CountAll(ctx context.Context, search string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Activate(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	args := m.Called(ctx, slug)
	category, _ := args.Get(0).(*entity.Category)
	return category, args.Error(1)
}

func (m *MockCategoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	args := m.Called(ctx, ids)
	categories, _ := args.Get(0).(map[uuid.UUID]*entity.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	args := m.Called(ctx, search, limit, offset)
	categories, _ := args.Get(0).([]*entity.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryRepository) CountAll(ctx context.Context, search string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

type MockGenreRepository struct{ mock.Mock }

func (m *MockGenreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	return m.Called(ctx, genre).Error(0)
}

func (m *MockGenreRepository) FindBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	args := m.Called(ctx, slug)
	genre, _ := args.Get(0).(*entity.Genre)
	return genre, args.Error(1)
}

func (m *MockGenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	args := m.Called(ctx, slugs)
	genres, _ := args.Get(0).([]*entity.Genre)
	return genres, args.Error(1)
}

func (m *MockGenreRepository) FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	args := m.Called(ctx, titleID)
	genres, _ := args.Get(0).([]*entity.Genre)
	return genres, args.Error(1)
}

func (m *MockGenreRepository) FindByTitleIDs(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID][]*entity.Genre, error) {
	args := m.Called(ctx, titleIDs)
	genres, _ := args.Get(0).(map[uuid.UUID][]*entity.Genre)
	return genres, args.Error(1)
}

func (m *MockGenreRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	args := m.Called(ctx, search, limit, offset)
	genres, _ := args.Get(0).([]*entity.Genre)
	return genres, args.Error(1)
}

func (m *MockGenreRepository) CountAll(ctx context.Context, search string) (int64, error) {
	args := m.Called(ctx, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

type MockTitleRepository struct{ mock.Mock }

func (m *MockTitleRepository) Create(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error {
	return m.Called(ctx, title, genreIDs).Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error {
	return m.Called(ctx, title, genreIDs).Error(0)
}

func (m *MockTitleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	args := m.Called(ctx, id)
	title, _ := args.Get(0).(*entity.Title)
	return title, args.Error(1)
}

func (m *MockTitleRepository) FindAll(ctx context.Context, filter entity.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	args := m.Called(ctx, filter, limit, offset)
	titles, _ := args.Get(0).([]*entity.Title)
	return titles, args.Error(1)
}

func (m *MockTitleRepository) CountAll(ctx context.Context, filter entity.TitleFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) FindByTitleAndID(ctx context.Context, titleID, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, titleID, id)
	review, _ := args.Get(0).(*entity.Review)
	return review, args.Error(1)
}

func (m *MockReviewRepository) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	args := m.Called(ctx, titleID, limit, offset)
	reviews, _ := args.Get(0).([]*entity.Review)
	return reviews, args.Error(1)
}

func (m *MockReviewRepository) FindByTitleAndAuthor(ctx context.Context, titleID, authorID uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, titleID, authorID)
	review, _ := args.Get(0).(*entity.Review)
	return review, args.Error(1)
}

func (m *MockReviewRepository) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, titleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepository) Rating(ctx context.Context, titleID uuid.UUID) (*float64, error) {
	args := m.Called(ctx, titleID)
	rating, _ := args.Get(0).(*float64)
	return rating, args.Error(1)
}

func (m *MockReviewRepository) RatingsByTitleIDs(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	args := m.Called(ctx, titleIDs)
	ratings, _ := args.Get(0).(map[uuid.UUID]float64)
	return ratings, args.Error(1)
}

type MockCommentRepository struct{ mock.Mock }

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) FindByReviewAndID(ctx context.Context, reviewID, id uuid.UUID) (*entity.Comment, error) {
	args := m.Called(ctx, reviewID, id)
	comment, _ := args.Get(0).(*entity.Comment)
	return comment, args.Error(1)
}

func (m *MockCommentRepository) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	args := m.Called(ctx, reviewID, limit, offset)
	comments, _ := args.Get(0).([]*entity.Comment)
	return comments, args.Error(1)
}

func (m *MockCommentRepository) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

type MockTokens struct{ mock.Mock }

func (m *MockTokens) Mint(user *entity.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockCodes struct{ mock.Mock }

func (m *MockCodes) Issue(user *entity.User) string {
	return m.Called(user).String(0)
}

func (m *MockCodes) Check(user *entity.User, code string) error {
	return m.Called(user, code).Error(0)
}

// mocks bundles one mock per repository.
type mocks struct {
	users      *MockUserRepository
	categories *MockCategoryRepository
	genres     *MockGenreRepository
	titles     *MockTitleRepository
	reviews    *MockReviewRepository
	comments   *MockCommentRepository
}

func newMocks() *mocks {
	return &mocks{
		users:      new(MockUserRepository),
		categories: new(MockCategoryRepository),
		genres:     new(MockGenreRepository),
		titles:     new(MockTitleRepository),
		reviews:    new(MockReviewRepository),
		comments:   new(MockCommentRepository),
	}
}

func (m *mocks) repository() *repository.Repository {
	return &repository.Repository{
		User:     m.users,
		Category: m.categories,
		Genre:    m.genres,
		Title:    m.titles,
		Review:   m.reviews,
		Comment:  m.comments,
	}
}

func (m *mocks) assertExpectations(t mock.TestingT) {
	m.users.AssertExpectations(t)
	m.categories.AssertExpectations(t)
	m.genres.AssertExpectations(t)
	m.titles.AssertExpectations(t)
	m.reviews.AssertExpectations(t)
	m.comments.AssertExpectations(t)
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testLogger() *zap.Logger { return zap.NewNop() }

func ptr[T any](v T) *T { return &v }

func errNotFound() error {
	return fmt.Errorf("delete: %w", repository.ErrNotFound)
}
