package pgdb

import (
	"context"
	"errors"

	"github.com/artline-tech/shop-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier — общий интерфейс выполнения запросов для pgx.Tx и pgxpool.Pool.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pickQuerier возвращает транзакцию из контекста, если она есть, иначе пул.
// Используется в запросах, которые выполняются и внутри, и вне транзакций.
func pickQuerier(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return tx
	}
	return pool
}

// postgresDuplicate сообщает, является ли ошибка нарушением уникальности (код 23505).
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
