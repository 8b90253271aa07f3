package pgdb

import (
	"context"

	"github.com/artline-tech/shop-backend/internal/domain"
	"github.com/artline-tech/shop-backend/internal/repository/pgdb/converter"
	"github.com/artline-tech/shop-backend/pkg/e"
	"github.com/artline-tech/shop-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет заказ и возвращает его с первичным ключом и временем создания.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (
			user_id, first_name, last_name, phone, email,
			address_line_1, address_line_2, country, state, city,
			order_note, order_total, tax, status, ip, is_ordered
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.UserID,
		model.FirstName,
		model.LastName,
		model.Phone,
		model.Email,
		model.AddressLine1,
		model.AddressLine2,
		model.Country,
		model.State,
		model.City,
		model.OrderNote,
		model.OrderTotal,
		model.Tax,
		model.Status,
		model.IP,
		model.IsOrdered,
	).Scan(&model.ID, &model.CreatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model), nil
}

// SetOrderNumber дозаписывает номер заказа, зависящий от первичного ключа.
func (o *OrderRepo) SetOrderNumber(ctx context.Context, id int64, number string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `UPDATE orders SET order_number = $1, updated_at = NOW() WHERE id = $2;`
	if _, err := tx.Exec(ctx, query, number, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
