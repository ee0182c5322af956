package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ItemStore persists cart line items in Postgres, one row per
// (user, product), with the product snapshot joined into every read.
type ItemStore struct {
	pool *pgxpool.Pool
}

func NewItemStore(pool *pgxpool.Pool) *ItemStore {
	return &ItemStore{pool: pool}
}

func (s *ItemStore) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("userID[%s] is not valid: %w", userID, err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at,
		        p.name, p.description, p.price_amount::text, p.price_currency,
		        p.image_url, p.category, p.created_at
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.user_id = $1
		 ORDER BY ci.created_at, ci.id`,
		userUUID,
	)
	if err != nil {
		return nil, fmt.Errorf("select cart_items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			item      domain.CartItem
			amountStr string
			curStr    string
			pCreated  time.Time
		)
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt,
			&item.Product.Name, &item.Product.Description, &amountStr, &curStr,
			&item.Product.ImageURL, &item.Product.Category, &pCreated,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("price amount[%s] is not valid: %w", amountStr, err)
		}
		cur, err := currency.ParseISO(curStr)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", curStr, err)
		}

		item.Product.ID = item.ProductID
		item.Product.Price = money.Money{Amount: amount, Currency: cur}
		item.Product.CreatedAt = pCreated

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select cart_items: %w", err)
	}

	return items, nil
}

func (s *ItemStore) Insert(ctx context.Context, row app.InsertItem) (domain.CartItem, error) {
	userUUID, err := uuid.Parse(row.UserID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("userID[%s] is not valid: %w", row.UserID, err)
	}
	productUUID, err := uuid.Parse(row.ProductID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("productID[%s] is not valid: %w", row.ProductID, err)
	}

	item := domain.CartItem{
		UserID:    row.UserID,
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
	}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		userUUID, productUUID, row.Quantity,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("insert cart item: %w", err)
	}

	return item, nil
}

func (s *ItemStore) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return fmt.Errorf("itemID[%s] is not valid: %w", itemID, err)
	}

	// a vanished itemID affects zero rows, which is not an error here
	_, err = s.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $2 WHERE id = $1`, itemUUID, quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

func (s *ItemStore) DeleteItem(ctx context.Context, itemID string) error {
	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return fmt.Errorf("itemID[%s] is not valid: %w", itemID, err)
	}

	_, err = s.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemUUID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (s *ItemStore) DeleteAll(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID is empty")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("userID[%s] is not valid: %w", userID, err)
	}

	_, err = s.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userUUID)
	if err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	return nil
}

var _ app.ItemStore = (*ItemStore)(nil)
