package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	// ClaimedSeats returns the union of seats held by pending or confirmed bookings.
	ClaimedSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error)
	// UpdateStatus moves the booking to status only if it is currently in one of from.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, from ...entity.BookingStatus) (bool, error)
	// CompleteFinished marks claiming bookings whose showtime ended before now as completed.
	CompleteFinished(ctx context.Context, now time.Time) (int64, error)
}

type bookingRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBookingRepository(db database.DBTX, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingDetailSelect = `
		SELECT b.id, b.user_id, b.showtime_id, b.seats, b.snack_total, b.ticket_total,
		       b.grand_total, b.status, b.created_at, b.updated_at,
		       m.title_kg, m.title_ru, h.name, s.datetime
		FROM bookings b
		JOIN showtimes s ON s.id = b.showtime_id
		JOIN movies m ON m.id = s.movie_id
		JOIN halls h ON h.id = s.hall_id
`

func scanBookingDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var b entity.BookingDetail
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ShowtimeID,
		&b.Seats,
		&b.SnackTotal,
		&b.TicketTotal,
		&b.GrandTotal,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.MovieTitleKG,
		&b.MovieTitleRU,
		&b.HallName,
		&b.ShowtimeDatetime,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func statusStrings(statuses []entity.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, showtime_id, seats, snack_total, ticket_total,
		                      grand_total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ShowtimeID,
		booking.Seats,
		booking.SnackTotal,
		booking.TicketTotal,
		booking.GrandTotal,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("showtime_id", booking.ShowtimeID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	booking, err := scanBookingDetail(r.db.QueryRow(ctx, bookingDetailSelect+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := bookingDetailSelect + `
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.BookingDetail
	for rows.Next() {
		booking, err := scanBookingDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings for user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) ClaimedSeats(ctx context.Context, showtimeID uuid.UUID) ([]string, error) {
	query := `
		SELECT DISTINCT seat
		FROM bookings, unnest(seats) AS seat
		WHERE showtime_id = $1 AND status = ANY($2)
		ORDER BY seat
	`

	rows, err := r.db.Query(ctx, query, showtimeID, statusStrings(entity.ClaimingStatuses))
	if err != nil {
		r.log.Error("Failed to find claimed seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find claimed seats for %s: %w", showtimeID.String(), err)
	}

	seats, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		r.log.Error("Failed to collect claimed seats", zap.Error(err))
		return nil, fmt.Errorf("collect claimed seats: %w", err)
	}

	return seats, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus, from ...entity.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	result, err := r.db.Exec(ctx, query, id, status, statusStrings(from))
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("update booking %s status: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *bookingRepository) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings b
		SET status = 'completed', updated_at = NOW()
		FROM showtimes s
		JOIN movies m ON m.id = s.movie_id
		WHERE b.showtime_id = s.id
		  AND b.status = ANY($2)
		  AND s.datetime + make_interval(mins => m.duration) < $1
	`

	result, err := r.db.Exec(ctx, query, now, statusStrings(entity.ClaimingStatuses))
	if err != nil {
		r.log.Error("Failed to complete finished bookings", zap.Error(err))
		return 0, fmt.Errorf("complete finished bookings: %w", err)
	}

	return result.RowsAffected(), nil
}
