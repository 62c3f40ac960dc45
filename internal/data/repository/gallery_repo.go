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

type GalleryRepository interface {
	Create(ctx context.Context, item *entity.Gallery) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Gallery, error)
	FindAll(ctx context.Context) ([]*entity.Gallery, error)
	Update(ctx context.Context, item *entity.Gallery) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type galleryRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewGalleryRepository(db database.DBTX, log *zap.Logger) GalleryRepository {
	return &galleryRepository{
		db:  db,
		log: log.With(zap.String("repository", "gallery")),
	}
}

const galleryColumns = `id, image_url, caption_kg, caption_ru, created_at`

func scanGallery(row pgx.Row) (*entity.Gallery, error) {
	var g entity.Gallery
	if err := row.Scan(&g.ID, &g.ImageURL, &g.CaptionKG, &g.CaptionRU, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *galleryRepository) Create(ctx context.Context, item *entity.Gallery) error {
	query := `
		INSERT INTO gallery (id, image_url, caption_kg, caption_ru, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, item.ID, item.ImageURL, item.CaptionKG, item.CaptionRU, item.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create gallery item", zap.Error(err))
		return fmt.Errorf("create gallery item: %w", err)
	}

	return nil
}

func (r *galleryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Gallery, error) {
	item, err := scanGallery(r.db.QueryRow(ctx, `SELECT `+galleryColumns+` FROM gallery WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find gallery item", zap.Error(err), zap.String("gallery_id", id.String()))
		return nil, fmt.Errorf("find gallery item %s: %w", id.String(), err)
	}

	return item, nil
}

func (r *galleryRepository) FindAll(ctx context.Context) ([]*entity.Gallery, error) {
	rows, err := r.db.Query(ctx, `SELECT `+galleryColumns+` FROM gallery ORDER BY created_at DESC`)
	if err != nil {
		r.log.Error("Failed to find gallery items", zap.Error(err))
		return nil, fmt.Errorf("find gallery items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Gallery, error) {
		return scanGallery(row)
	})
	if err != nil {
		r.log.Error("Failed to scan gallery rows", zap.Error(err))
		return nil, fmt.Errorf("scan gallery items: %w", err)
	}

	return items, nil
}

func (r *galleryRepository) Update(ctx context.Context, item *entity.Gallery) error {
	query := `UPDATE gallery SET image_url = $2, caption_kg = $3, caption_ru = $4 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, item.ID, item.ImageURL, item.CaptionKG, item.CaptionRU)
	if err != nil {
		r.log.Error("Failed to update gallery item", zap.Error(err), zap.String("gallery_id", item.ID.String()))
		return fmt.Errorf("update gallery item %s: %w", item.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("gallery item %s: %w", item.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM gallery WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete gallery item", zap.Error(err), zap.String("gallery_id", id.String()))
		return fmt.Errorf("delete gallery item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("gallery item %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
