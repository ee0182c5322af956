package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/domain"
	catalogdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/domain"
)

// ProductSource resolves the product snapshot joined into every read.
type ProductSource interface {
	GetProduct(ctx context.Context, id string) (catalogdomain.Product, error)
}

// ItemStore is an in-process cart item store, used in development and
// tests where a database is not available. Rows keep insertion order.
type ItemStore struct {
	products ProductSource

	mu   sync.RWMutex
	rows []domain.CartItem
}

func NewItemStore(products ProductSource) *ItemStore {
	return &ItemStore{products: products}
}

func (s *ItemStore) List(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	s.mu.RLock()
	var rows []domain.CartItem
	for _, r := range s.rows {
		if r.UserID == userID {
			rows = append(rows, r)
		}
	}
	s.mu.RUnlock()

	for i := range rows {
		product, err := s.products.GetProduct(ctx, rows[i].ProductID)
		if err != nil {
			return nil, fmt.Errorf("products.GetProduct[%s]: %w", rows[i].ProductID, err)
		}
		rows[i].Product = product
	}

	return rows, nil
}

func (s *ItemStore) Insert(ctx context.Context, row app.InsertItem) (domain.CartItem, error) {
	if row.UserID == "" {
		return domain.CartItem{}, fmt.Errorf("userID is empty")
	}
	if _, err := s.products.GetProduct(ctx, row.ProductID); err != nil {
		return domain.CartItem{}, fmt.Errorf("products.GetProduct[%s]: %w", row.ProductID, err)
	}

	item := domain.CartItem{
		ID:        uuid.NewString(),
		UserID:    row.UserID,
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.rows = append(s.rows, item)
	s.mu.Unlock()

	return item, nil
}

func (s *ItemStore) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].ID == itemID {
			s.rows[i].Quantity = quantity
			return nil
		}
	}
	return nil
}

func (s *ItemStore) DeleteItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].ID == itemID {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *ItemStore) DeleteAll(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("userID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

var _ app.ItemStore = (*ItemStore)(nil)
