package pgdb

import (
	"context"
	"errors"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CartRepo реализует репозиторий анонимных корзин поверх PostgreSQL.
type CartRepo struct {
	pool *pgxpool.Pool
}

func NewCartRepo(pool *pgxpool.Pool) *CartRepo {
	return &CartRepo{pool: pool}
}

// GetOrCreateByToken идемпотентно создаёт корзину по сессионному токену.
// Пустой DO UPDATE нужен, чтобы RETURNING отдавал строку и при конфликте.
func (c *CartRepo) GetOrCreateByToken(ctx context.Context, token string) (*domain.Cart, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO carts (token) VALUES ($1)
		ON CONFLICT (token) DO UPDATE SET token = EXCLUDED.token
		RETURNING id, token, created_at;
	`

	var cart domain.Cart
	if err := tx.QueryRow(ctx, query, token).
		Scan(&cart.ID, &cart.Token, &cart.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &cart, nil
}

// GetByToken возвращает корзину по сессионному токену.
func (c *CartRepo) GetByToken(ctx context.Context, token string) (*domain.Cart, error) {
	query := `SELECT id, token, created_at FROM carts WHERE token = $1;`

	var cart domain.Cart
	if err := pickQuerier(ctx, c.pool).QueryRow(ctx, query, token).
		Scan(&cart.ID, &cart.Token, &cart.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCartNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &cart, nil
}
