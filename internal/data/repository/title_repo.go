package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"review-service/internal/data/entity"
	"review-service/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TitleRepository interface {
	// Create and Update write the title and its genre links atomically.
	Create(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error
	Update(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error)
	FindAll(ctx context.Context, filter entity.TitleFilter, limit, offset int) ([]*entity.Title, error)
	CountAll(ctx context.Context, filter entity.TitleFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type titleRepository struct {
	db          database.PgxIface
	titleGenres TitleGenreRepository
	log         *zap.Logger
}

func NewTitleRepository(db database.PgxIface, titleGenres TitleGenreRepository, log *zap.Logger) TitleRepository {
	return &titleRepository{
		db:          db,
		titleGenres: titleGenres,
		log:         log.With(zap.String("repository", "title")),
	}
}

const titleColumns = `t.id, t.name, t.year, t.description, t.category_id, t.created_at, t.updated_at`

func scanTitle(row rowScanner) (*entity.Title, error) {
	var title entity.Title
	err := row.Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.CategoryID,
		&title.CreatedAt,
		&title.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Create(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO titles (id, name, year, description, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.Exec(ctx, query,
			title.ID,
			title.Name,
			title.Year,
			title.Description,
			title.CategoryID,
			title.CreatedAt,
			title.UpdatedAt,
		)
		if err != nil {
			return err
		}

		return r.titleGenres.Replace(ctx, tx, title.ID, genreIDs)
	})

	if err != nil {
		err = asReference(err)
		if errors.Is(err, ErrReferenceMissing) {
			r.log.Warn("Title references a deleted genre or category",
				zap.Error(err),
				zap.String("name", title.Name),
			)
			return fmt.Errorf("failed to create title: %w", err)
		}
		r.log.Error("Failed to create title",
			zap.Error(err),
			zap.String("name", title.Name),
		)
		return fmt.Errorf("failed to create title: %w", err)
	}

	return nil
}

func (r *titleRepository) Update(ctx context.Context, title *entity.Title, genreIDs []uuid.UUID) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE titles
			SET name = $2, year = $3, description = $4, category_id = $5, updated_at = $6
			WHERE id = $1
		`
		result, err := tx.Exec(ctx, query,
			title.ID,
			title.Name,
			title.Year,
			title.Description,
			title.CategoryID,
			title.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}

		return r.titleGenres.Replace(ctx, tx, title.ID, genreIDs)
	})

	if err != nil {
		err = asReference(err)
		if errors.Is(err, ErrReferenceMissing) {
			r.log.Warn("Title references a deleted genre or category",
				zap.Error(err),
				zap.String("title_id", title.ID.String()),
			)
			return fmt.Errorf("failed to update title: %w", err)
		}
		r.log.Error("Failed to update title",
			zap.Error(err),
			zap.String("title_id", title.ID.String()),
		)
		return fmt.Errorf("failed to update title: %w", err)
	}

	return nil
}

func (r *titleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	query := `SELECT ` + titleColumns + ` FROM titles t WHERE t.id = $1`

	title, err := scanTitle(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find title by ID",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find title: %w", err)
	}

	return title, nil
}

// filterClause renders the WHERE clause for filter with placeholders
// starting at $1.
func filterClause(filter entity.TitleFilter) (string, []interface{}) {
	var conds []string
	args := []interface{}{}

	if filter.Name != "" {
		args = append(args, likePattern(filter.Name))
		conds = append(conds, fmt.Sprintf("t.name ILIKE $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conds = append(conds, fmt.Sprintf("t.year = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf(
			"t.category_id IN (SELECT c.id FROM categories c WHERE c.slug = $%d)", len(args)))
	}
	if filter.Genre != "" {
		args = append(args, filter.Genre)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM title_genres tg
			INNER JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = $%d)`, len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *titleRepository) FindAll(ctx context.Context, filter entity.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	where, args := filterClause(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + titleColumns + ` FROM titles t`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.name, t.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all titles",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("failed to find titles: %w", err)
	}
	defer rows.Close()

	var titles []*entity.Title
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			r.log.Error("Failed to scan title row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan title: %w", err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Titles found",
		zap.Int("count", len(titles)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return titles, nil
}

func (r *titleRepository) CountAll(ctx context.Context, filter entity.TitleFilter) (int64, error) {
	where, args := filterClause(filter)

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM titles t`+where, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count titles", zap.Error(err))
		return 0, fmt.Errorf("failed to count titles: %w", err)
	}

	return total, nil
}

// Delete removes the title with its reviews, comments and genre links.
func (r *titleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete title",
			zap.Error(err),
			zap.String("title_id", id.String()),
		)
		return fmt.Errorf("failed to delete title: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("title %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Title deleted", zap.String("title_id", id.String()))
	return nil
}
