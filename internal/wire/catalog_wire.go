package wire

import (
	"review-service/internal/adaptor"
	"review-service/internal/policy"
	"review-service/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog registers categories and genres: reads are public, writes need
// an administrator.
func wireCatalog(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	genreHandler *adaptor.GenreHandler,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Allow(policy.CatalogAllowed, log))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.GetAllCategories)
			r.Post("/", categoryHandler.CreateCategory)
			r.Delete("/{slug}", categoryHandler.DeleteCategory)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", genreHandler.GetAllGenres)
			r.Post("/", genreHandler.CreateGenre)
			r.Delete("/{slug}", genreHandler.DeleteGenre)
		})
	})
}
