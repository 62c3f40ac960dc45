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

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *entity.PasswordReset) error
	FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error)
	// MarkUsed flips used to true and reports whether this call did it.
	MarkUsed(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error)
}

type passwordResetRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewPasswordResetRepository(db database.DBTX, log *zap.Logger) PasswordResetRepository {
	return &passwordResetRepository{
		db:  db,
		log: log.With(zap.String("repository", "password_reset")),
	}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *entity.PasswordReset) error {
	query := `
		INSERT INTO password_resets (id, user_id, token, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		reset.ID,
		reset.UserID,
		reset.Token,
		reset.ExpiresAt,
		reset.Used,
		reset.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create password reset",
			zap.Error(err),
			zap.String("user_id", reset.UserID.String()),
		)
		return fmt.Errorf("create password reset: %w", err)
	}

	return nil
}

func (r *passwordResetRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	query := `
		SELECT id, user_id, token, expires_at, used, created_at
		FROM password_resets
		WHERE token = $1
	`

	var reset entity.PasswordReset
	err := r.db.QueryRow(ctx, query, token).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.Token,
		&reset.ExpiresAt,
		&reset.Used,
		&reset.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find password reset", zap.Error(err))
		return nil, fmt.Errorf("find password reset: %w", err)
	}

	return &reset, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE password_resets
		SET used = TRUE
		WHERE id = $1 AND used = FALSE AND expires_at > NOW()
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark password reset used",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return false, fmt.Errorf("mark password reset %s used: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *passwordResetRepository) DeleteExpiredBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM password_resets WHERE expires_at < $1`

	result, err := r.db.Exec(ctx, query, before)
	if err != nil {
		r.log.Error("Failed to purge password resets", zap.Error(err))
		return 0, fmt.Errorf("purge password resets: %w", err)
	}

	return result.RowsAffected(), nil
}
