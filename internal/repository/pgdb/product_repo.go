package pgdb

import (
	"context"
	"errors"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/internal/repository/pgdb/converter"
	"github.com/artline-tech/shop-backend/internal/usecase"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

const productColumns = `
	pr.id, pr.name, pr.slug, pr.description, pr.artist, pr.price_id, p.amount,
	pr.stock, pr.is_available, pr.category_id, pr.gift_category_id, pr.created_at, pr.updated_at
`

// GetByID возвращает доступный товар по идентификатору.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products pr
		JOIN prices p ON pr.price_id = p.id
		WHERE pr.id = $1 AND pr.is_available;
	`

	model, err := r.scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(model), nil
}

// GetBySlugs возвращает товар по слагам категории и товара.
func (r *ProductRepo) GetBySlugs(ctx context.Context, categorySlug, productSlug string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products pr
		JOIN prices p ON pr.price_id = p.id
		JOIN categories cat ON pr.category_id = cat.id
		WHERE cat.slug = $1 AND pr.slug = $2;
	`

	model, err := r.scanProduct(r.pool.QueryRow(ctx, query, categorySlug, productSlug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(model), nil
}

// List возвращает страницу доступных товаров с фильтрами по категории и диапазону цен.
func (r *ProductRepo) List(ctx context.Context, filter usecase.ProductFilter) ([]usecase.ProductInfo, int64, error) {
	query := `
		SELECT pr.id, pr.name, pr.slug, pr.artist, cat.name, p.amount, COUNT(*) OVER ()
		FROM products pr
		JOIN prices p ON pr.price_id = p.id
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.is_available
		  AND ($1::bigint IS NULL OR pr.category_id = $1)
		  AND ($2::bigint IS NULL OR p.amount >= $2)
		  AND ($3::bigint IS NULL OR p.amount <= $3)
		ORDER BY pr.created_at DESC, pr.id DESC
		LIMIT $4 OFFSET $5;
	`

	rows, err := r.pool.Query(ctx, query, filter.CategoryID, filter.MinPrice, filter.MaxPrice, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanProductInfoPage(rows)
}

// Search ищет доступные товары по подстроке в названии, имени художника
// и значениях активных вариаций.
func (r *ProductRepo) Search(ctx context.Context, keyword string, limit, offset int) ([]usecase.ProductInfo, int64, error) {
	query := `
		SELECT pr.id, pr.name, pr.slug, pr.artist, cat.name, p.amount, COUNT(*) OVER ()
		FROM products pr
		JOIN prices p ON pr.price_id = p.id
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.is_available
		  AND (
			pr.name ILIKE '%' || $1 || '%' OR
			pr.artist ILIKE '%' || $1 || '%' OR
			EXISTS (
				SELECT 1 FROM variations v
				WHERE v.product_id = pr.id AND v.is_active AND v.value ILIKE '%' || $1 || '%'
			)
		  )
		ORDER BY pr.created_at DESC, pr.id DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.pool.Query(ctx, query, keyword, limit, offset)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return scanProductInfoPage(rows)
}

// GetProductsInfo возвращает информацию о товарах по их идентификаторам, включая название категории.
func (r *ProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.name, pr.slug, pr.artist, cat.name, p.amount
		FROM products pr
		JOIN prices p ON pr.price_id = p.id
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.id = ANY($1);
	`

	rows, err := pickQuerier(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Slug,
			&product.Artist, &product.CategoryName, &product.Price,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Upsert идемпотентно создаёт или обновляет товар по уникальному имени.
func (r *ProductRepo) Upsert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := r.conv.ToModel(product)
	query := `
		INSERT INTO products (name, slug, description, artist, price_id, stock, is_available, category_id, gift_category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name)
		DO UPDATE SET
			slug = EXCLUDED.slug,
			description = EXCLUDED.description,
			artist = EXCLUDED.artist,
			price_id = EXCLUDED.price_id,
			stock = EXCLUDED.stock,
			is_available = EXCLUDED.is_available,
			category_id = EXCLUDED.category_id,
			gift_category_id = EXCLUDED.gift_category_id,
			updated_at = NOW()
		RETURNING id, created_at, updated_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.Name,
		model.Slug,
		model.Description,
		model.Artist,
		model.PriceID,
		model.Stock,
		model.IsAvailable,
		model.CategoryID,
		model.GiftCategoryID,
	).Scan(&model.ID, &model.CreatedAt, &model.UpdatedAt); err != nil {
		// Конфликт по имени поглощается ON CONFLICT, остаётся только slug
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductSlugTaken)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(model), nil
}

// SetImage записывает ключ главного изображения товара.
func (r *ProductRepo) SetImage(ctx context.Context, productID int64, imageKey string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `UPDATE products SET image = $1, updated_at = NOW() WHERE id = $2;`
	if _, err := tx.Exec(ctx, query, imageKey, productID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetOrCreatePrice идемпотентно создаёт прайс-запись по сумме.
func (r *ProductRepo) GetOrCreatePrice(ctx context.Context, amount int64) (*domain.Price, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO prices (amount) VALUES ($1)
		ON CONFLICT (amount) DO UPDATE SET amount = EXCLUDED.amount
		RETURNING id, amount;
	`

	var price domain.Price
	if err := tx.QueryRow(ctx, query, amount).Scan(&price.ID, &price.Amount); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &price, nil
}

// DecrementStock атомарно уменьшает остаток товара на единицу.
// Охранное условие stock > 0 превращает исчерпанный остаток в e.ErrInsufficientStock.
func (r *ProductRepo) DecrementStock(ctx context.Context, productID int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET stock = stock - 1, updated_at = NOW()
		WHERE id = $1 AND stock > 0
		RETURNING stock;
	`

	var remaining int32
	if err := tx.QueryRow(ctx, query, productID).Scan(&remaining); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e.Wrap(whereami.WhereAmI(), e.ErrInsufficientStock)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *ProductRepo) scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Slug, &model.Description, &model.Artist,
		&model.PriceID, &model.Price, &model.Stock, &model.IsAvailable,
		&model.CategoryID, &model.GiftCategoryID, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

func scanProductInfoPage(rows pgx.Rows) ([]usecase.ProductInfo, int64, error) {
	var count int64
	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Slug,
			&product.Artist, &product.CategoryName, &product.Price, &count,
		); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, count, nil
}
