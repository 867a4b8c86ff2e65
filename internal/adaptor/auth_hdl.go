package adaptor

import (
	"net/http"

	"review-service/internal/dto/request"
	"review-service/internal/usecase"
	"review-service/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "sign up")
		return
	}

	utils.ResponseSuccess(w, "Confirmation code sent", resp)
}

// ObtainToken handles POST /auth/token
func (h *AuthHandler) ObtainToken(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.service.ObtainToken(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "obtain token")
		return
	}

	utils.ResponseSuccess(w, "Token issued", resp)
}
