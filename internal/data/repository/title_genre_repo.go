package repository

import (
	"context"
	"fmt"

	"review-service/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TitleGenreRepository maintains the title/genre bridge table. Methods take
// the querier explicitly so they can join a caller's transaction.
type TitleGenreRepository interface {
	Replace(ctx context.Context, q database.Querier, titleID uuid.UUID, genreIDs []uuid.UUID) error
}

type titleGenreRepository struct {
	log *zap.Logger
}

func NewTitleGenreRepository(log *zap.Logger) TitleGenreRepository {
	return &titleGenreRepository{
		log: log.With(zap.String("repository", "title_genre")),
	}
}

// Replace sets the genres of titleID to exactly genreIDs.
func (r *titleGenreRepository) Replace(ctx context.Context, q database.Querier, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM title_genres WHERE title_id = $1`, titleID); err != nil {
		r.log.Error("Failed to delete title_genres by title ID",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("failed to delete title_genres: %w", err)
	}

	if len(genreIDs) == 0 {
		return nil
	}

	query := `INSERT INTO title_genres (title_id, genre_id) VALUES `
	args := []interface{}{}

	for i, genreID := range genreIDs {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
		args = append(args, titleID, genreID)
	}
	query += ` ON CONFLICT DO NOTHING`

	if _, err := q.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create batch title_genres",
			zap.Error(err),
			zap.Int("count", len(genreIDs)),
		)
		return fmt.Errorf("failed to create batch title_genres: %w", err)
	}

	return nil
}
