package usecase

import (
	"context"
	"errors"
	"time"

	"review-service/internal/data/entity"
	"review-service/internal/data/repository"
	"review-service/internal/dto/request"
	"review-service/internal/dto/response"
	"review-service/internal/policy"
	"review-service/pkg/apperror"
	"review-service/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	GetTitleReviews(ctx context.Context, titleID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	CreateReview(ctx context.Context, actor policy.Actor, titleID string, req *request.ReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, actor policy.Actor, titleID, reviewID string, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, actor policy.Actor, titleID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, now func() time.Time, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
	id, err := parseID(titleID, "Title")
	if err != nil {
		return nil, err
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to get title", err)
	}
	if title == nil {
		return nil, apperror.NotFound("Title not found")
	}
	return title, nil
}

// findReview loads a review that belongs to titleID.
func (s *reviewService) findReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	id, err := parseID(reviewID, "Review")
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByTitleAndID(ctx, title.ID, id)
	if err != nil {
		return nil, apperror.Internal("failed to get review", err)
	}
	if review == nil {
		return nil, apperror.NotFound("Review not found")
	}
	return review, nil
}

func (s *reviewService) GetTitleReviews(ctx context.Context, titleID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, title.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to get reviews", err)
	}

	total, err := s.repo.Review.CountByTitleID(ctx, title.ID)
	if err != nil {
		return nil, apperror.Internal("failed to count reviews", err)
	}

	data := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		data[i] = response.ReviewToResponse(review)
	}

	s.log.Info("Title reviews retrieved",
		zap.String("title_id", title.ID.String()),
		zap.Int("count", len(reviews)),
		zap.Int64("total", total),
		zap.Int("page", req.Page))

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) CreateReview(ctx context.Context, actor policy.Actor, titleID string, req *request.ReviewRequest) (*response.ReviewResponse, error) {
	if !policy.ContentCollectionAllowed(actor, policy.Unsafe) {
		return nil, denied(actor)
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	author, err := s.repo.User.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal("failed to get author", err)
	}
	if author == nil {
		return nil, apperror.Unauthorized("User not found")
	}

	existing, err := s.repo.Review.FindByTitleAndAuthor(ctx, title.ID, author.ID)
	if err != nil {
		return nil, apperror.Internal("failed to check existing review", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("title", "You have already reviewed this title")
	}

	review := entity.NewReview(author, title, entity.ReviewInput{Text: req.Text, Score: req.Score}, s.now())

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, apperror.Conflict("title", "You have already reviewed this title")
		}
		if isMissingReference(err) {
			return nil, apperror.NotFound("Title not found")
		}
		return nil, apperror.Internal("failed to create review", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("author_id", author.ID.String()),
		zap.String("title_id", title.ID.String()),
		zap.Int("score", review.Score))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, actor policy.Actor, titleID, reviewID string, req *request.ReviewUpdateRequest) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !policy.ContentObjectAllowed(actor, policy.Unsafe, review.AuthorID) {
		s.log.Warn("Review update denied",
			zap.String("review_id", review.ID.String()),
			zap.String("actor_id", actor.ID.String()))
		return nil, denied(actor)
	}

	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("Review not found")
		}
		return nil, apperror.Internal("failed to update review", err)
	}

	s.log.Info("Review updated", zap.String("review_id", review.ID.String()))

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor policy.Actor, titleID, reviewID string) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !policy.ContentObjectAllowed(actor, policy.Unsafe, review.AuthorID) {
		s.log.Warn("Review delete denied",
			zap.String("review_id", review.ID.String()),
			zap.String("actor_id", actor.ID.String()))
		return denied(actor)
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		if isNotFound(err) {
			return apperror.NotFound("Review not found")
		}
		return apperror.Internal("failed to delete review", err)
	}

	return nil
}
