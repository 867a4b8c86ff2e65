package adaptor

import (
	"net/http"

	"review-service/internal/dto/request"
	"review-service/internal/usecase"
	"review-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetTitleReviews handles GET /titles/{title_id}/reviews
func (h *ReviewHandler) GetTitleReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetTitleReviews(r.Context(), chi.URLParam(r, "title_id"), paginated(r))
	if err != nil {
		writeError(w, h.log, err, "get reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved successfully", reviews)
}

// GetReview handles GET /titles/{title_id}/reviews/{review_id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetReview(r.Context(), chi.URLParam(r, "title_id"), chi.URLParam(r, "review_id"))
	if err != nil {
		writeError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "Review retrieved successfully", review)
}

// CreateReview handles POST /titles/{title_id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewRequest
	if !decode(w, r, &req) {
		return
	}

	actor := utils.GetActorFromContext(r.Context())

	review, err := h.service.CreateReview(r.Context(), actor, chi.URLParam(r, "title_id"), &req)
	if err != nil {
		writeError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", review)
}

// UpdateReview handles PATCH /titles/{title_id}/reviews/{review_id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewUpdateRequest
	if !decode(w, r, &req) {
		return
	}
	h.update(w, r, &req)
}

// ReplaceReview handles PUT /titles/{title_id}/reviews/{review_id}. Both text and
// score are required.
func (h *ReviewHandler) ReplaceReview(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewRequest
	if !decode(w, r, &req) {
		return
	}
	if err := utils.Validate(&req); err != nil {
		writeError(w, h.log, err, "replace review")
		return
	}
	h.update(w, r, &request.ReviewUpdateRequest{Text: &req.Text, Score: &req.Score})
}

func (h *ReviewHandler) update(w http.ResponseWriter, r *http.Request, req *request.ReviewUpdateRequest) {
	actor := utils.GetActorFromContext(r.Context())

	review, err := h.service.UpdateReview(r.Context(), actor, chi.URLParam(r, "title_id"), chi.URLParam(r, "review_id"), req)
	if err != nil {
		writeError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// DeleteReview handles DELETE /titles/{title_id}/reviews/{review_id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	actor := utils.GetActorFromContext(r.Context())

	if err := h.service.DeleteReview(r.Context(), actor, chi.URLParam(r, "title_id"), chi.URLParam(r, "review_id")); err != nil {
		writeError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}
