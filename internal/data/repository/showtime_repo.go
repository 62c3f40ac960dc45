package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowtimeDetail, error)
	// LockByID takes a row lock that serializes bookings for the showtime.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindAll(ctx context.Context, filter entity.ShowtimeFilter) ([]*entity.ShowtimeDetail, error)
	// HasOverlap reports whether another showtime in the hall intersects [start, end).
	HasOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type showtimeRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewShowtimeRepository(db database.DBTX, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeDetailSelect = `
		SELECT s.id, s.movie_id, s.hall_id, s.datetime, s.language, s.price,
		       s.created_at, s.updated_at,
		       m.title_kg, m.title_ru, m.duration, h.name
		FROM showtimes s
		JOIN movies m ON m.id = s.movie_id
		JOIN halls h ON h.id = s.hall_id
`

func scanShowtimeDetail(row pgx.Row) (*entity.ShowtimeDetail, error) {
	var st entity.ShowtimeDetail
	err := row.Scan(
		&st.ID,
		&st.MovieID,
		&st.HallID,
		&st.Datetime,
		&st.Language,
		&st.Price,
		&st.CreatedAt,
		&st.UpdatedAt,
		&st.MovieTitleKG,
		&st.MovieTitleRU,
		&st.MovieDuration,
		&st.HallName,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, hall_id, datetime, language, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.HallID,
		showtime.Datetime,
		showtime.Language,
		showtime.Price,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("hall_id", showtime.HallID.String()),
			zap.Time("datetime", showtime.Datetime),
		)
		return fmt.Errorf("create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowtimeDetail, error) {
	st, err := scanShowtimeDetail(r.db.QueryRow(ctx, showtimeDetailSelect+` WHERE s.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	return st, nil
}

func (r *showtimeRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, hall_id, datetime, language, price, created_at, updated_at
		FROM showtimes
		WHERE id = $1
		FOR UPDATE
	`

	var st entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&st.ID,
		&st.MovieID,
		&st.HallID,
		&st.Datetime,
		&st.Language,
		&st.Price,
		&st.CreatedAt,
		&st.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock showtime",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("lock showtime %s: %w", id.String(), err)
	}

	return &st, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context, filter entity.ShowtimeFilter) ([]*entity.ShowtimeDetail, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(showtimeDetailSelect + ` WHERE TRUE`)

	args := []any{}
	argCount := 1

	if filter.MovieID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.movie_id = $%d", argCount))
		args = append(args, *filter.MovieID)
		argCount++
	}
	if filter.HallID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.hall_id = $%d", argCount))
		args = append(args, *filter.HallID)
		argCount++
	}
	if filter.Date != nil {
		loc := filter.Location
		if loc == nil {
			loc = time.UTC
		}
		d := filter.Date.In(loc)
		start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		queryBuilder.WriteString(fmt.Sprintf(" AND s.datetime >= $%d AND s.datetime < $%d", argCount, argCount+1))
		args = append(args, start, start.AddDate(0, 0, 1))
		argCount += 2
	} else {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.datetime >= $%d", argCount))
		args = append(args, filter.From)
		argCount++
	}
	if filter.Language != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND s.language = $%d", argCount))
		args = append(args, filter.Language)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY s.datetime ASC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find showtimes", zap.Error(err))
		return nil, fmt.Errorf("find showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []*entity.ShowtimeDetail
	for rows.Next() {
		st, err := scanShowtimeDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime: %w", err)
		}
		showtimes = append(showtimes, st)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate showtime rows: %w", err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) HasOverlap(ctx context.Context, hallID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM showtimes s
			JOIN movies m ON m.id = s.movie_id
			WHERE s.hall_id = $1
			  AND s.datetime < $3
			  AND s.datetime + make_interval(mins => m.duration) > $2
			  AND ($4::uuid IS NULL OR s.id <> $4::uuid)
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, hallID, start, end, exclude).Scan(&exists); err != nil {
		r.log.Error("Failed to check showtime overlap",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return false, fmt.Errorf("check showtime overlap: %w", err)
	}

	return exists, nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, hall_id = $3, datetime = $4, language = $5, price = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.HallID,
		showtime.Datetime,
		showtime.Language,
		showtime.Price,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return fmt.Errorf("update showtime %s: %w", showtime.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %s: %w", showtime.ID.String(), ErrNotFound)
	}

	return nil
}

// Delete cascades to the showtime's bookings.
func (r *showtimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return fmt.Errorf("delete showtime %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Showtime deleted", zap.String("showtime_id", id.String()))
	return nil
}
