package wire

import (
	"review-service/internal/adaptor"
	"review-service/pkg/middleware"
	"review-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAuth registers the anonymous sign-up and token exchange, rate limited
// per client IP.
func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.RateLimit(config.RateLimit.Requests, config.RateLimit.Window()))

		r.Post("/signup", authHandler.SignUp)
		r.Post("/token", authHandler.ObtainToken)
	})
}
