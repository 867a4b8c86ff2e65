package adaptor

import (
	"net/http"
	"strconv"

	"review-service/internal/data/entity"
	"review-service/internal/dto/request"
	"review-service/internal/usecase"
	"review-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log.With(zap.String("handler", "title")),
	}
}

// titleFilter reads ?name=&year=&genre=&category= from the query.
func titleFilter(r *http.Request) (entity.TitleFilter, bool) {
	query := r.URL.Query()
	filter := entity.TitleFilter{
		Name:     query.Get("name"),
		Genre:    query.Get("genre"),
		Category: query.Get("category"),
	}

	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return filter, false
		}
		filter.Year = &year
	}
	return filter, true
}

// GetAllTitles handles GET /titles
func (h *TitleHandler) GetAllTitles(w http.ResponseWriter, r *http.Request) {
	filter, ok := titleFilter(r)
	if !ok {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"year": "year must be an integer"})
		return
	}

	titles, err := h.service.GetAllTitles(r.Context(), filter, paginated(r))
	if err != nil {
		writeError(w, h.log, err, "get titles")
		return
	}

	utils.ResponseSuccess(w, "Titles retrieved successfully", titles)
}

// GetTitle handles GET /titles/{title_id}
func (h *TitleHandler) GetTitle(w http.ResponseWriter, r *http.Request) {
	title, err := h.service.GetTitle(r.Context(), chi.URLParam(r, "title_id"))
	if err != nil {
		writeError(w, h.log, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "Title retrieved successfully", title)
}

// CreateTitle handles POST /titles
func (h *TitleHandler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var req request.TitleRequest
	if !decode(w, r, &req) {
		return
	}

	title, err := h.service.CreateTitle(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create title")
		return
	}

	utils.ResponseCreated(w, "Title created successfully", title)
}

// ReplaceTitle handles PUT /titles/{title_id}
func (h *TitleHandler) ReplaceTitle(w http.ResponseWriter, r *http.Request) {
	var req request.TitleRequest
	if !decode(w, r, &req) {
		return
	}

	title, err := h.service.ReplaceTitle(r.Context(), chi.URLParam(r, "title_id"), &req)
	if err != nil {
		writeError(w, h.log, err, "replace title")
		return
	}

	utils.ResponseSuccess(w, "Title updated successfully", title)
}

// UpdateTitle handles PATCH /titles/{title_id}
func (h *TitleHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	var req request.TitleUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	title, err := h.service.UpdateTitle(r.Context(), chi.URLParam(r, "title_id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "Title updated successfully", title)
}

// DeleteTitle handles DELETE /titles/{title_id}
func (h *TitleHandler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTitle(r.Context(), chi.URLParam(r, "title_id")); err != nil {
		writeError(w, h.log, err, "delete title")
		return
	}

	utils.ResponseNoContent(w)
}
