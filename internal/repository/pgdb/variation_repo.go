package pgdb

import (
	"context"
	"errors"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// VariationRepo реализует репозиторий вариаций товаров поверх PostgreSQL.
type VariationRepo struct {
	pool *pgxpool.Pool
}

func NewVariationRepo(pool *pgxpool.Pool) *VariationRepo {
	return &VariationRepo{pool: pool}
}

// ResolveActive подбирает активную вариацию товара по паре (категория, значение)
// без учёта регистра. Отсутствие совпадения — не ошибка.
func (v *VariationRepo) ResolveActive(ctx context.Context, productID int64, category, value string) (*domain.Variation, error) {
	query := `
		SELECT id, product_id, category, value, is_active, created_at
		FROM variations
		WHERE product_id = $1 AND category = lower($2) AND lower(value) = lower($3) AND is_active
		LIMIT 1;
	`

	var variation domain.Variation
	if err := v.pool.QueryRow(ctx, query, productID, category, value).
		Scan(
			&variation.ID, &variation.ProductID, &variation.Category,
			&variation.Value, &variation.IsActive, &variation.CreatedAt,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &variation, nil
}

// GetByIDs возвращает вариации по их идентификаторам.
func (v *VariationRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Variation, error) {
	query := `
		SELECT id, product_id, category, value, is_active, created_at
		FROM variations
		WHERE id = ANY($1);
	`

	rows, err := pickQuerier(ctx, v.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanVariations(rows)
}

// ListForProduct возвращает все вариации товара.
func (v *VariationRepo) ListForProduct(ctx context.Context, productID int64) ([]domain.Variation, error) {
	query := `
		SELECT id, product_id, category, value, is_active, created_at
		FROM variations
		WHERE product_id = $1
		ORDER BY category, value;
	`

	rows, err := v.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanVariations(rows)
}

func scanVariations(rows pgx.Rows) ([]domain.Variation, error) {
	result := make([]domain.Variation, 0)
	for rows.Next() {
		var variation domain.Variation
		if err := rows.Scan(
			&variation.ID, &variation.ProductID, &variation.Category,
			&variation.Value, &variation.IsActive, &variation.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, variation)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
