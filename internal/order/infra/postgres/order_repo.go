package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/domain"
)

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

func (r *OrderRepo) execTX(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

// CreateOrderTx writes the order header and all of its items in one
// transaction, so a partial order never becomes visible.
func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	userUUID, err := uuid.Parse(order.UserID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("userID[%s] is not valid: %w", order.UserID, err)
	}

	created := order

	err = r.execTX(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO orders (user_id, status, total_amount, total_currency)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, created_at`,
			userUUID, order.Status, order.Total.Amount.String(), order.Total.Currency.String(),
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		created.Items = make([]domain.OrderItem, 0, len(order.Items))
		for i, item := range order.Items {
			productUUID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return fmt.Errorf("item %d: productID[%s] is not valid: %w", i, item.ProductID, err)
			}

			item.OrderID = created.ID
			err = tx.QueryRow(ctx,
				`INSERT INTO order_items (order_id, product_id, product_name, quantity, price_amount, price_currency)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 RETURNING id`,
				created.ID, productUUID, item.Name, item.Quantity,
				item.Price.Amount.String(), item.Price.Currency.String(),
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("insert order item %d: %w", i, err)
			}

			created.Items = append(created.Items, item)
		}

		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return created, nil
}

var _ app.OrderRepo = (*OrderRepo)(nil)
