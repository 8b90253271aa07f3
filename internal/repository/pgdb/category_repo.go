package pgdb

import (
	"context"
	"errors"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/internal/repository/pgdb/converter"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool     *pgxpool.Pool
	conv     converter.CategoryConverter
	giftConv converter.GiftCategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter, giftConv converter.GiftCategoryConverter) *CategoryRepo {
	return &CategoryRepo{
		pool:     pool,
		conv:     conv,
		giftConv: giftConv,
	}
}

// Create идемпотентно создаёт категорию по имени.
// Пустой DO UPDATE нужен, чтобы RETURNING отдавал строку и при конфликте.
func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO categories (name, slug) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, slug, created_at, updated_at;
	`

	var model converter.CategoryModel
	if err := tx.QueryRow(ctx, query, category.Name, category.Slug).
		Scan(
			&model.ID, &model.Name, &model.Slug, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// CreateGift идемпотентно создаёт подарочную категорию по имени.
func (c *CategoryRepo) CreateGift(ctx context.Context, gift *domain.GiftCategory) (*domain.GiftCategory, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO gift_categories (name, slug) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, slug, created_at, updated_at;
	`

	var model converter.GiftCategoryModel
	if err := tx.QueryRow(ctx, query, gift.Name, gift.Slug).
		Scan(
			&model.ID, &model.Name, &model.Slug, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.giftConv.ToEntity(&model), nil
}

// List возвращает все категории для навигации по каталогу.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name;`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Slug, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *c.conv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetBySlug возвращает категорию по слагу.
func (c *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM categories WHERE slug = $1;`

	var model converter.CategoryModel
	if err := c.pool.QueryRow(ctx, query, slug).
		Scan(
			&model.ID, &model.Name, &model.Slug, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}
