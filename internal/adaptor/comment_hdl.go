package adaptor

import (
	"net/http"

	"review-service/internal/dto/request"
	"review-service/internal/usecase"
	"review-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// GetReviewComments handles GET /titles/{title_id}/reviews/{review_id}/comments
func (h *CommentHandler) GetReviewComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.GetReviewComments(r.Context(),
		chi.URLParam(r, "title_id"), chi.URLParam(r, "review_id"), paginated(r))
	if err != nil {
		writeError(w, h.log, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, "Comments retrieved successfully", comments)
}

// GetComment handles GET .../comments/{comment_id}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.service.GetComment(r.Context(),
		chi.URLParam(r, "title_id"), chi.URLParam(r, "review_id"), chi.URLParam(r, "comment_id"))
	if err != nil {
		writeError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "Comment retrieved successfully", comment)
}

// CreateComment handles POST .../comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req request.CommentRequest
	if !decode(w, r, &req) {
		return
	}

	actor := utils.GetActorFromContext(r.Context())

	comment, err := h.service.CreateComment(r.Context(), actor,
		chi.URLParam(r, "title_id"), chi.URLParam(r, "review_id"), &req)
	if err != nil {
		writeError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment created successfully", comment)
}

// UpdateComment handles PATCH .../comments/{comment_id}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req request.CommentUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	h.update(w, r, &req)
}

// ReplaceComment handles PUT .../comments/{comment_id}
func (h *CommentHandler) ReplaceComment(w http.ResponseWriter, r *http.Request) {
	var req request.CommentRequest
	if !decode(w, r, &req) {
		return
	}
	if err := utils.Validate(&req); err != nil {
		writeError(w, h.log, err, "replace comment")
		return
	}
	h.update(w, r, &request.CommentUpdateRequest{Text: &req.Text})
}

func (h *CommentHandler) update(w http.ResponseWriter, r *http.Request, req *request.CommentUpdateRequest) {
	actor := utils.GetActorFromContext(r.Context())

	comment, err := h.service.UpdateComment(r.Context(), actor,
		chi.URLParam(r, "title_id"), chi.URLParam(r, "review_id"), chi.URLParam(r, "comment_id"), req)
	if err != nil {
		writeError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

// DeleteComment handles DELETE .../comments/{comment_id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	if err := h.service.DeleteComment(r.Context(), actor,
		chi.URLParam(r, "title_id"), chi.URLParam(r, "review_id"), chi.URLParam(r, "comment_id")); err != nil {
		writeError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}
