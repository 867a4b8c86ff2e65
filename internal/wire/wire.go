// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"review-service/internal/adaptor"
	"review-service/internal/data/repository"
	"review-service/internal/usecase"
	"review-service/pkg/middleware"
	"review-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and registers every route.
func Wiring(
	repo *repository.Repository,
	deps usecase.Dependencies,
	tokens middleware.TokenVerifier,
	db Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, tokens, db, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens middleware.TokenVerifier,
	db Pinger,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Metrics())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, utils.ErrorBody{
			Code: "METHOD_NOT_ALLOWED",
		})
	})

	basePath := config.App.BasePath
	if basePath == "" {
		basePath = "/api/v1"
	}

	r.Route(basePath, func(api chi.Router) {
		api.Use(middleware.Authenticate(tokens, repo.User, logger))

		wireAuth(api, handler.Auth, config, logger)
		wireUser(api, handler.User, logger)
		wireCatalog(api, handler.Category, handler.Genre, logger)
		wireTitle(api, handler.Title, handler.Review, handler.Comment, logger)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.Warn("Health check failed", zap.Error(err))
				utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", nil, utils.ErrorBody{
					Code: "UNAVAILABLE",
				})
				return
			}
		}
		utils.ResponseSuccess(w, "OK", nil)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
