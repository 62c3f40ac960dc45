package repository

import (
	"context"
	"fmt"

	"univer-cinema/internal/data/entity"
	"univer-cinema/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SnackOrderRepository interface {
	CreateBatch(ctx context.Context, orders []*entity.SnackOrder) error
	FindByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]*entity.SnackOrderDetail, error)
}

type snackOrderRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewSnackOrderRepository(db database.DBTX, log *zap.Logger) SnackOrderRepository {
	return &snackOrderRepository{
		db:  db,
		log: log.With(zap.String("repository", "snack_order")),
	}
}

// CreateBatch inserts orders one by one; callers run it inside the booking transaction.
func (r *snackOrderRepository) CreateBatch(ctx context.Context, orders []*entity.SnackOrder) error {
	query := `
		INSERT INTO snack_orders (id, booking_id, snack_id, quantity, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, o := range orders {
		_, err := r.db.Exec(ctx, query, o.ID, o.BookingID, o.SnackID, o.Quantity, o.Subtotal, o.CreatedAt)
		if err != nil {
			r.log.Error("Failed to create snack order",
				zap.Error(err),
				zap.String("booking_id", o.BookingID.String()),
				zap.String("snack_id", o.SnackID.String()),
			)
			return fmt.Errorf("create snack order: %w", err)
		}
	}

	return nil
}

func (r *snackOrderRepository) FindByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]*entity.SnackOrderDetail, error) {
	result := make(map[uuid.UUID][]*entity.SnackOrderDetail, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT o.id, o.booking_id, o.snack_id, o.quantity, o.subtotal, o.created_at,
		       s.name_kg, s.name_ru
		FROM snack_orders o
		JOIN snacks s ON s.id = o.snack_id
		WHERE o.booking_id = ANY($1)
		ORDER BY o.created_at, o.id
	`

	rows, err := r.db.Query(ctx, query, bookingIDs)
	if err != nil {
		r.log.Error("Failed to find snack orders", zap.Error(err), zap.Int("bookings", len(bookingIDs)))
		return nil, fmt.Errorf("find snack orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.SnackOrderDetail, error) {
		var o entity.SnackOrderDetail
		err := row.Scan(&o.ID, &o.BookingID, &o.SnackID, &o.Quantity, &o.Subtotal, &o.CreatedAt, &o.NameKG, &o.NameRU)
		return &o, err
	})
	if err != nil {
		r.log.Error("Failed to scan snack orders", zap.Error(err))
		return nil, fmt.Errorf("scan snack orders: %w", err)
	}

	for _, o := range orders {
		result[o.BookingID] = append(result[o.BookingID], o)
	}

	return result, nil
}
