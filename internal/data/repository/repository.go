package repository

import (
	"context"
	"errors"
	"fmt"

	"univer-cinema/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrDuplicate is returned when an insert or update hits a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
)

type Repository struct {
	User          UserRepository
	Session       SessionRepository
	PasswordReset PasswordResetRepository
	Movie         MovieRepository
	Hall          HallRepository
	Showtime      ShowtimeRepository
	Snack         SnackRepository
	Booking       BookingRepository
	SnackOrder    SnackOrderRepository
	News          NewsRepository
	Gallery       GalleryRepository
	Tx            Transactor
}

// Transactor runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositories(db, log)
	repo.Tx = &pgxTransactor{db: db, log: log}
	return repo
}

func newRepositories(db database.DBTX, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		PasswordReset: NewPasswordResetRepository(db, log),
		Movie:         NewMovieRepository(db, log),
		Hall:          NewHallRepository(db, log),
		Showtime:      NewShowtimeRepository(db, log),
		Snack:         NewSnackRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		SnackOrder:    NewSnackOrderRepository(db, log),
		News:          NewNewsRepository(db, log),
		Gallery:       NewGalleryRepository(db, log),
	}
}

type pgxTransactor struct {
	db  database.PgxIface
	log *zap.Logger
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	// no-op once committed
	defer tx.Rollback(ctx)

	txRepo := newRepositories(tx, t.log)
	txRepo.Tx = nestedTransactor{repo: txRepo}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// nestedTransactor joins the enclosing transaction.
type nestedTransactor struct {
	repo *Repository
}

func (n nestedTransactor) WithinTx(_ context.Context, fn func(tx *Repository) error) error {
	return fn(n.repo)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
