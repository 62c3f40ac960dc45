package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"univer-cinema/internal/data/entity"
	"univer-cinema/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Movie, error)
	FindAll(ctx context.Context, filter entity.MovieFilter) ([]*entity.Movie, error)
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewMovieRepository(db database.DBTX, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, slug, title_kg, title_ru, synopsis_kg, synopsis_ru, trailer,
		       genre, language, duration, poster, release_date, is_showing,
		       created_at, updated_at`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Slug,
		&movie.TitleKG,
		&movie.TitleRU,
		&movie.SynopsisKG,
		&movie.SynopsisRU,
		&movie.Trailer,
		&movie.Genre,
		&movie.Language,
		&movie.Duration,
		&movie.Poster,
		&movie.ReleaseDate,
		&movie.IsShowing,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, slug, title_kg, title_ru, synopsis_kg, synopsis_ru,
		                    trailer, genre, language, duration, poster, release_date,
		                    is_showing, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Slug,
		movie.TitleKG,
		movie.TitleRU,
		movie.SynopsisKG,
		movie.SynopsisRU,
		movie.Trailer,
		movie.Genre,
		movie.Language,
		movie.Duration,
		movie.Poster,
		movie.ReleaseDate,
		movie.IsShowing,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create movie %s: %w", movie.Slug, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title_ru", movie.TitleRU),
		)
		return fmt.Errorf("create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return movie, nil
}

func (r *movieRepository) FindBySlug(ctx context.Context, slug string) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE slug = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find movie by slug %s: %w", slug, err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, filter entity.MovieFilter) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movieColumns + ` FROM movies WHERE TRUE`)

	args := []any{}
	argCount := 1

	if filter.Showing {
		queryBuilder.WriteString(" AND is_showing = TRUE")
	}
	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND genre = $%d", argCount))
		args = append(args, filter.Genre)
		argCount++
	}
	if filter.Language != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND language = $%d", argCount))
		args = append(args, filter.Language)
		argCount++
	}
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (title_kg ILIKE $%d OR title_ru ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY release_date DESC, created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Any("filter", filter),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	r.log.Debug("Movies found", zap.Int("count", len(movies)))

	return movies, nil
}

func (r *movieRepository) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM movies WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, slug, exclude).Scan(&exists); err != nil {
		r.log.Error("Failed to check movie slug", zap.Error(err), zap.String("slug", slug))
		return false, fmt.Errorf("check slug %s: %w", slug, err)
	}

	return exists, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET slug = $2, title_kg = $3, title_ru = $4, synopsis_kg = $5, synopsis_ru = $6,
		    trailer = $7, genre = $8, language = $9, duration = $10, poster = $11,
		    release_date = $12, is_showing = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Slug,
		movie.TitleKG,
		movie.TitleRU,
		movie.SynopsisKG,
		movie.SynopsisRU,
		movie.Trailer,
		movie.Genre,
		movie.Language,
		movie.Duration,
		movie.Poster,
		movie.ReleaseDate,
		movie.IsShowing,
		movie.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("update movie %s: %w", movie.Slug, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", movie.ID.String(), ErrNotFound)
	}

	return nil
}

// Delete cascades to the movie's showtimes and their bookings.
func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
