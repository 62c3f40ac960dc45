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

type NewsRepository interface {
	Create(ctx context.Context, news *entity.News) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.News, error)
	FindAll(ctx context.Context, publishedOnly bool) ([]*entity.News, error)
	Update(ctx context.Context, news *entity.News) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type newsRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewNewsRepository(db database.DBTX, log *zap.Logger) NewsRepository {
	return &newsRepository{
		db:  db,
		log: log.With(zap.String("repository", "news")),
	}
}

const newsColumns = `id, title_kg, title_ru, content_kg, content_ru, image, published, created_at, updated_at`

func scanNews(row pgx.Row) (*entity.News, error) {
	var n entity.News
	err := row.Scan(&n.ID, &n.TitleKG, &n.TitleRU, &n.ContentKG, &n.ContentRU, &n.Image, &n.Published, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *newsRepository) Create(ctx context.Context, news *entity.News) error {
	query := `
		INSERT INTO news (id, title_kg, title_ru, content_kg, content_ru, image, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		news.ID, news.TitleKG, news.TitleRU, news.ContentKG, news.ContentRU,
		news.Image, news.Published, news.CreatedAt, news.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create news", zap.Error(err), zap.String("title_ru", news.TitleRU))
		return fmt.Errorf("create news: %w", err)
	}

	return nil
}

func (r *newsRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	news, err := scanNews(r.db.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find news by ID", zap.Error(err), zap.String("news_id", id.String()))
		return nil, fmt.Errorf("find news by ID %s: %w", id.String(), err)
	}

	return news, nil
}

func (r *newsRepository) FindAll(ctx context.Context, publishedOnly bool) ([]*entity.News, error) {
	query := `SELECT ` + newsColumns + ` FROM news`
	if publishedOnly {
		query += ` WHERE published = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find news", zap.Error(err))
		return nil, fmt.Errorf("find news: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.News, error) {
		return scanNews(row)
	})
	if err != nil {
		r.log.Error("Failed to scan news rows", zap.Error(err))
		return nil, fmt.Errorf("scan news: %w", err)
	}

	return items, nil
}

func (r *newsRepository) Update(ctx context.Context, news *entity.News) error {
	query := `
		UPDATE news
		SET title_kg = $2, title_ru = $3, content_kg = $4, content_ru = $5,
		    image = $6, published = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		news.ID, news.TitleKG, news.TitleRU, news.ContentKG, news.ContentRU,
		news.Image, news.Published, news.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update news", zap.Error(err), zap.String("news_id", news.ID.String()))
		return fmt.Errorf("update news %s: %w", news.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("news %s: %w", news.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *newsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete news", zap.Error(err), zap.String("news_id", id.String()))
		return fmt.Errorf("delete news %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("news %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
