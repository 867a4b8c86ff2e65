package wire

import (
	"review-service/internal/adaptor"
	"review-service/internal/policy"
	"review-service/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireTitle registers titles with their reviews and comments nested below.
// Titles follow the catalog rule; reviews and comments only check the
// collection here, object permissions are checked by the services once the
// target is loaded.
func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	reviewHandler *adaptor.ReviewHandler,
	commentHandler *adaptor.CommentHandler,
	log *zap.Logger,
) {
	r.Route("/titles", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Allow(policy.CatalogAllowed, log))

			r.Get("/", titleHandler.GetAllTitles)
			r.Post("/", titleHandler.CreateTitle)
			r.Get("/{title_id}", titleHandler.GetTitle)
			r.Put("/{title_id}", titleHandler.ReplaceTitle)
			r.Patch("/{title_id}", titleHandler.UpdateTitle)
			r.Delete("/{title_id}", titleHandler.DeleteTitle)
		})

		r.Route("/{title_id}/reviews", func(r chi.Router) {
			r.Use(middleware.Allow(policy.ContentCollectionAllowed, log))

			r.Get("/", reviewHandler.GetTitleReviews)
			r.Post("/", reviewHandler.CreateReview)
			r.Get("/{review_id}", reviewHandler.GetReview)
			r.Put("/{review_id}", reviewHandler.ReplaceReview)
			r.Patch("/{review_id}", reviewHandler.UpdateReview)
			r.Delete("/{review_id}", reviewHandler.DeleteReview)

			r.Route("/{review_id}/comments", func(r chi.Router) {
				r.Get("/", commentHandler.GetReviewComments)
				r.Post("/", commentHandler.CreateComment)
				r.Get("/{comment_id}", commentHandler.GetComment)
				r.Put("/{comment_id}", commentHandler.ReplaceComment)
				r.Patch("/{comment_id}", commentHandler.UpdateComment)
				r.Delete("/{comment_id}", commentHandler.DeleteComment)
			})
		})
	})
}
