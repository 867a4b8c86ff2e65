package usecase

import (
	"context"
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

type CommentService interface {
	GetReviewComments(ctx context.Context, titleID, reviewID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	CreateComment(ctx context.Context, actor policy.Actor, titleID, reviewID string, req *request.CommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID string, req *request.CommentUpdateRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, now func() time.Time, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "comment")),
	}
}

// findReview resolves the (title, review) pair of a comment path. A review
// that exists under another title is not found.
func (s *commentService) findReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tID, err := parseID(titleID, "Title")
	if err != nil {
		return nil, err
	}
	rID, err := parseID(reviewID, "Review")
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByTitleAndID(ctx, tID, rID)
	if err != nil {
		return nil, apperror.Internal("failed to get review", err)
	}
	if review == nil {
		return nil, apperror.NotFound("Review not found")
	}
	return review, nil
}

func (s *commentService) findComment(ctx context.Context, titleID, reviewID, commentID string) (*entity.Comment, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	id, err := parseID(commentID, "Comment")
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByReviewAndID(ctx, review.ID, id)
	if err != nil {
		return nil, apperror.Internal("failed to get comment", err)
	}
	if comment == nil {
		return nil, apperror.NotFound("Comment not found")
	}
	return comment, nil
}

func (s *commentService) GetReviewComments(ctx context.Context, titleID, reviewID string, req request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperror.Internal("failed to get comments", err)
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		return nil, apperror.Internal("failed to count comments", err)
	}

	data := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		data[i] = response.CommentToResponse(comment)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) CreateComment(ctx context.Context, actor policy.Actor, titleID, reviewID string, req *request.CommentRequest) (*response.CommentResponse, error) {
	if !policy.ContentCollectionAllowed(actor, policy.Unsafe) {
		return nil, denied(actor)
	}

	review, err := s.findReview(ctx, titleID, reviewID)
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

	comment := entity.NewComment(author, review, req.Text, s.now())

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		if isMissingReference(err) {
			return nil, apperror.NotFound("Review not found")
		}
		return nil, apperror.Internal("failed to create comment", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", review.ID.String()),
		zap.String("author_id", author.ID.String()))

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID string, req *request.CommentUpdateRequest) (*response.CommentResponse, error) {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !policy.ContentObjectAllowed(actor, policy.Unsafe, comment.AuthorID) {
		return nil, denied(actor)
	}

	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("Comment not found")
		}
		return nil, apperror.Internal("failed to update comment", err)
	}

	s.log.Info("Comment updated", zap.String("comment_id", comment.ID.String()))

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor policy.Actor, titleID, reviewID, commentID string) error {
	comment, err := s.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !policy.ContentObjectAllowed(actor, policy.Unsafe, comment.AuthorID) {
		return denied(actor)
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		if isNotFound(err) {
			return apperror.NotFound("Comment not found")
		}
		return apperror.Internal("failed to delete comment", err)
	}

	return nil
}
