package repository

import (
	"context"
	"errors"
	"fmt"

	"univer-cinema/internal/data/entity"
	"univer-cinema/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SnackRepository interface {
	Create(ctx context.Context, snack *entity.Snack) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Snack, error)
	FindAll(ctx context.Context, availableOnly bool) ([]*entity.Snack, error)
	Update(ctx context.Context, snack *entity.Snack) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type snackRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewSnackRepository(db database.DBTX, log *zap.Logger) SnackRepository {
	return &snackRepository{
		db:  db,
		log: log.With(zap.String("repository", "snack")),
	}
}

const snackColumns = `id, name_kg, name_ru, price, image, available, created_at, updated_at`

func scanSnack(row pgx.Row) (*entity.Snack, error) {
	var snack entity.Snack
	err := row.Scan(
		&snack.ID,
		&snack.NameKG,
		&snack.NameRU,
		&snack.Price,
		&snack.Image,
		&snack.Available,
		&snack.CreatedAt,
		&snack.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &snack, nil
}

func (r *snackRepository) Create(ctx context.Context, snack *entity.Snack) error {
	query := `
		INSERT INTO snacks (id, name_kg, name_ru, price, image, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		snack.ID,
		snack.NameKG,
		snack.NameRU,
		snack.Price,
		snack.Image,
		snack.Available,
		snack.CreatedAt,
		snack.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create snack",
			zap.Error(err),
			zap.String("name_ru", snack.NameRU),
		)
		return fmt.Errorf("create snack: %w", err)
	}

	return nil
}

func (r *snackRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Snack, error) {
	snack, err := scanSnack(r.db.QueryRow(ctx, `SELECT `+snackColumns+` FROM snacks WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find snack by ID",
			zap.Error(err),
			zap.String("snack_id", id.String()),
		)
		return nil, fmt.Errorf("find snack by ID %s: %w", id.String(), err)
	}

	return snack, nil
}

func (r *snackRepository) FindAll(ctx context.Context, availableOnly bool) ([]*entity.Snack, error) {
	query := `SELECT ` + snackColumns + ` FROM snacks`
	if availableOnly {
		query += ` WHERE available = TRUE`
	}
	query += ` ORDER BY name_ru`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find snacks", zap.Error(err))
		return nil, fmt.Errorf("find snacks: %w", err)
	}
	defer rows.Close()

	var snacks []*entity.Snack
	for rows.Next() {
		snack, err := scanSnack(rows)
		if err != nil {
			r.log.Error("Failed to scan snack row", zap.Error(err))
			return nil, fmt.Errorf("scan snack: %w", err)
		}
		snacks = append(snacks, snack)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate snack rows: %w", err)
	}

	return snacks, nil
}

func (r *snackRepository) Update(ctx context.Context, snack *entity.Snack) error {
	query := `
		UPDATE snacks
		SET name_kg = $2, name_ru = $3, price = $4, image = $5, available = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		snack.ID,
		snack.NameKG,
		snack.NameRU,
		snack.Price,
		snack.Image,
		snack.Available,
		snack.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update snack",
			zap.Error(err),
			zap.String("snack_id", snack.ID.String()),
		)
		return fmt.Errorf("update snack %s: %w", snack.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("snack %s: %w", snack.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *snackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM snacks WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete snack",
			zap.Error(err),
			zap.String("snack_id", id.String()),
		)
		return fmt.Errorf("delete snack %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("snack %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
