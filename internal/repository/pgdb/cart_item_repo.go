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

// CartItemRepo реализует репозиторий позиций корзины поверх PostgreSQL.
// Набор вариаций позиции хранится в таблице cart_item_variations
// и агрегируется в запросах через array_agg.
type CartItemRepo struct {
	pool *pgxpool.Pool
	conv converter.CartItemConverter
}

func NewCartItemRepo(pool *pgxpool.Pool, conv converter.CartItemConverter) *CartItemRepo {
	return &CartItemRepo{
		pool: pool,
		conv: conv,
	}
}

// Предикат владельца: либо пользователь, либо анонимная корзина.
const ownerPredicate = `(($1::bigint IS NOT NULL AND ci.user_id = $1) OR ($2::bigint IS NOT NULL AND ci.cart_id = $2))`

const cartItemColumns = `
	ci.id, ci.user_id, ci.cart_id, ci.product_id,
	COALESCE(array_agg(civ.variation_id) FILTER (WHERE civ.variation_id IS NOT NULL), '{}'::bigint[]),
	ci.quantity, ci.is_active, ci.created_at
`

// ListForProductLocked блокирует (FOR UPDATE) активные позиции владельца по товару
// и возвращает их вместе с наборами вариаций. FOR UPDATE несовместим с GROUP BY,
// поэтому блокировка выполняется в CTE по базовой таблице.
func (c *CartItemRepo) ListForProductLocked(ctx context.Context, owner usecase.CartOwner, productID int64) ([]*domain.CartItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		WITH locked AS (
			SELECT ci.id FROM cart_items ci
			WHERE ci.is_active AND ci.product_id = $3 AND ` + ownerPredicate + `
			ORDER BY ci.id
			FOR UPDATE
		)
		SELECT ` + cartItemColumns + `
		FROM cart_items ci
		JOIN locked ON locked.id = ci.id
		LEFT JOIN cart_item_variations civ ON civ.cart_item_id = ci.id
		GROUP BY ci.id
		ORDER BY ci.id;
	`

	rows, err := tx.Query(ctx, query, owner.UserID, owner.CartID, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return c.scanCartItems(rows)
}

// ListActive возвращает активные позиции владельца.
func (c *CartItemRepo) ListActive(ctx context.Context, owner usecase.CartOwner) ([]*domain.CartItem, error) {
	query := `
		SELECT ` + cartItemColumns + `
		FROM cart_items ci
		LEFT JOIN cart_item_variations civ ON civ.cart_item_id = ci.id
		WHERE ci.is_active AND ` + ownerPredicate + `
		GROUP BY ci.id
		ORDER BY ci.id;
	`

	rows, err := pickQuerier(ctx, c.pool).Query(ctx, query, owner.UserID, owner.CartID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return c.scanCartItems(rows)
}

// ListActiveLocked блокирует (FOR UPDATE) все активные позиции владельца.
func (c *CartItemRepo) ListActiveLocked(ctx context.Context, owner usecase.CartOwner) ([]*domain.CartItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		WITH locked AS (
			SELECT ci.id FROM cart_items ci
			WHERE ci.is_active AND ` + ownerPredicate + `
			ORDER BY ci.id
			FOR UPDATE
		)
		SELECT ` + cartItemColumns + `
		FROM cart_items ci
		JOIN locked ON locked.id = ci.id
		LEFT JOIN cart_item_variations civ ON civ.cart_item_id = ci.id
		GROUP BY ci.id
		ORDER BY ci.id;
	`

	rows, err := tx.Query(ctx, query, owner.UserID, owner.CartID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return c.scanCartItems(rows)
}

// GetByIDLocked блокирует (FOR UPDATE) позицию владельца по идентификатору.
// Отсутствие позиции — не ошибка.
func (c *CartItemRepo) GetByIDLocked(ctx context.Context, owner usecase.CartOwner, productID, itemID int64) (*domain.CartItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		WITH locked AS (
			SELECT ci.id FROM cart_items ci
			WHERE ci.id = $4 AND ci.is_active AND ci.product_id = $3 AND ` + ownerPredicate + `
			FOR UPDATE
		)
		SELECT ` + cartItemColumns + `
		FROM cart_items ci
		JOIN locked ON locked.id = ci.id
		LEFT JOIN cart_item_variations civ ON civ.cart_item_id = ci.id
		GROUP BY ci.id;
	`

	var model converter.CartItemModel
	if err := tx.QueryRow(ctx, query, owner.UserID, owner.CartID, productID, itemID).
		Scan(
			&model.ID, &model.UserID, &model.CartID, &model.ProductID,
			&model.Variations, &model.Quantity, &model.IsActive, &model.CreatedAt,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Create вставляет позицию и привязывает к ней набор вариаций.
func (c *CartItemRepo) Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := c.conv.ToModel(item)
	query := `
		INSERT INTO cart_items (user_id, cart_id, product_id, quantity, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.UserID,
		model.CartID,
		model.ProductID,
		model.Quantity,
		model.IsActive,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(model.Variations) > 0 {
		linkQuery := `
			INSERT INTO cart_item_variations (cart_item_id, variation_id)
			SELECT $1, unnest($2::bigint[]);
		`
		if _, err := tx.Exec(ctx, linkQuery, model.ID, model.Variations); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return c.conv.ToEntity(model), nil
}

// IncrementQuantity увеличивает количество позиции на единицу.
func (c *CartItemRepo) IncrementQuantity(ctx context.Context, itemID int64) error {
	return c.execOnItem(ctx, `UPDATE cart_items SET quantity = quantity + 1 WHERE id = $1;`, itemID)
}

// DecrementQuantity уменьшает количество позиции на единицу, не опускаясь ниже единицы.
func (c *CartItemRepo) DecrementQuantity(ctx context.Context, itemID int64) error {
	return c.execOnItem(ctx, `UPDATE cart_items SET quantity = quantity - 1 WHERE id = $1 AND quantity > 1;`, itemID)
}

// Delete удаляет позицию; привязки вариаций удаляются каскадно.
func (c *CartItemRepo) Delete(ctx context.Context, itemID int64) error {
	return c.execOnItem(ctx, `DELETE FROM cart_items WHERE id = $1;`, itemID)
}

// DeactivateByIDs помечает позиции неактивными после оформления заказа.
func (c *CartItemRepo) DeactivateByIDs(ctx context.Context, ids []int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `UPDATE cart_items SET is_active = false WHERE id = ANY($1);`
	if _, err := tx.Exec(ctx, query, ids); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// ExistsForProduct сообщает, есть ли у владельца активная позиция с товаром.
func (c *CartItemRepo) ExistsForProduct(ctx context.Context, owner usecase.CartOwner, productID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM cart_items ci
			WHERE ci.is_active AND ci.product_id = $3 AND ` + ownerPredicate + `
		);
	`

	var exists bool
	if err := pickQuerier(ctx, c.pool).QueryRow(ctx, query, owner.UserID, owner.CartID, productID).
		Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

func (c *CartItemRepo) execOnItem(ctx context.Context, query string, itemID int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, query, itemID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CartItemRepo) scanCartItems(rows pgx.Rows) ([]*domain.CartItem, error) {
	models := make([]*converter.CartItemModel, 0)
	for rows.Next() {
		var model converter.CartItemModel
		if err := rows.Scan(
			&model.ID, &model.UserID, &model.CartID, &model.ProductID,
			&model.Variations, &model.Quantity, &model.IsActive, &model.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), nil
}
