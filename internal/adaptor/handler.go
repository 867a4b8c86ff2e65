package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"review-service/internal/dto/request"
	"review-service/internal/usecase"
	"review-service/pkg/apperror"
	"review-service/pkg/utils"

	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Genre    *GenreHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Category: NewCategoryHandler(service.Category, log),
		Genre:    NewGenreHandler(service.Genre, log),
		Title:    NewTitleHandler(service.Title, log),
		Review:   NewReviewHandler(service.Review, log),
		Comment:  NewCommentHandler(service.Comment, log),
	}
}

// decode reads a JSON body into dst. An empty body decodes to the zero value.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// writeError renders err and logs it at a level matching its kind.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch apperror.KindOf(err) {
	case apperror.KindInternal:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	case apperror.KindUnauthorized, apperror.KindForbidden:
		log.Warn(operation+" denied", zap.Error(err))
	default:
		log.Debug(operation+" rejected", zap.Error(err))
	}
	utils.ResponseError(w, err)
}

func paginated(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.NewPaginatedRequest(query.Get("page"), query.Get("per_page"))
}
