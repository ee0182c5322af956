package app

import (
	"context"
	"fmt"
	"sync"

	catalogdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/domain"
	"github.com/shopspring/decimal"
)

// Store holds the cart view of a single session and keeps it consistent
// with the remote item store. Writes are pessimistic: every successful
// mutation re-fetches the authoritative list instead of patching locally
// (Clear is the one exception, its outcome is already known).
//
// Every mutation reports its outcome to the Notifier and additionally
// returns an error, so callers never need the notification channel to
// know what happened. When no identity is present all operations are
// silent no-ops.
type Store struct {
	identity Identity
	items    ItemStore
	notify   Notifier

	mu      sync.Mutex
	list    []domain.CartItem
	loading bool
	// gen fences fetches: a fetch result is only applied when no newer
	// fetch (or clear, or identity reset) started after it.
	gen uint64
}

func NewStore(identity Identity, items ItemStore, notify Notifier) *Store {
	if notify == nil {
		notify = noopNotifier{}
	}
	return &Store{
		identity: identity,
		items:    items,
		notify:   notify,
	}
}

// Refresh reloads the cart from the item store. Without an identity the
// local view resets to empty and no remote call is made.
func (s *Store) Refresh(ctx context.Context) error {
	user, ok := s.identity.CurrentUser(ctx)
	if !ok {
		s.mu.Lock()
		s.gen++
		s.list = nil
		s.loading = false
		s.mu.Unlock()
		return nil
	}
	return s.fetch(ctx, user.ID)
}

// Add puts a product in the cart. Adding a product that is already present
// merges into the existing line instead of creating a duplicate row.
// A quantity below 1 is treated as 1.
func (s *Store) Add(ctx context.Context, product catalogdomain.Product, quantity int) error {
	user, ok := s.identity.CurrentUser(ctx)
	if !ok {
		return nil
	}
	if quantity < 1 {
		quantity = 1
	}

	if existing, found := s.findByProduct(product.ID); found {
		if err := s.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return err
		}
	} else {
		if _, err := s.items.Insert(ctx, InsertItem{
			UserID:    user.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}); err != nil {
			s.notifyError("Não foi possível adicionar o produto ao carrinho")
			return fmt.Errorf("items.Insert: %w", err)
		}
		if err := s.fetch(ctx, user.ID); err != nil {
			return err
		}
	}

	s.notify.Notify(Notification{
		Kind:    KindSuccess,
		Title:   "Produto adicionado",
		Message: fmt.Sprintf("%s foi adicionado ao carrinho", product.Name),
	})
	return nil
}

// UpdateQuantity sets an item's quantity. Zero or negative quantities
// remove the item instead of persisting a non-positive value.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	user, ok := s.identity.CurrentUser(ctx)
	if !ok {
		return nil
	}

	if quantity <= 0 {
		return s.Remove(ctx, itemID)
	}

	if err := s.items.UpdateQuantity(ctx, itemID, quantity); err != nil {
		s.notifyError("Não foi possível atualizar a quantidade")
		return fmt.Errorf("items.UpdateQuantity: %w", err)
	}
	return s.fetch(ctx, user.ID)
}

func (s *Store) Remove(ctx context.Context, itemID string) error {
	user, ok := s.identity.CurrentUser(ctx)
	if !ok {
		return nil
	}

	if err := s.items.DeleteItem(ctx, itemID); err != nil {
		s.notifyError("Não foi possível remover o produto do carrinho")
		return fmt.Errorf("items.DeleteItem: %w", err)
	}
	if err := s.fetch(ctx, user.ID); err != nil {
		return err
	}

	s.notify.Notify(Notification{
		Kind:    KindSuccess,
		Title:   "Produto removido",
		Message: "O produto foi removido do carrinho",
	})
	return nil
}

// Clear deletes every item owned by the user. The local list is emptied
// directly, no re-fetch needed.
func (s *Store) Clear(ctx context.Context) error {
	user, ok := s.identity.CurrentUser(ctx)
	if !ok {
		return nil
	}

	if err := s.items.DeleteAll(ctx, user.ID); err != nil {
		s.notifyError("Não foi possível limpar o carrinho")
		return fmt.Errorf("items.DeleteAll: %w", err)
	}

	s.mu.Lock()
	s.gen++
	s.list = nil
	s.mu.Unlock()

	s.notify.Notify(Notification{
		Kind:    KindSuccess,
		Title:   "Carrinho limpo",
		Message: "Todos os produtos foram removidos do carrinho",
	})
	return nil
}

// Total is the pure derived value sum(price * quantity) over the current
// local view. No remote call, no side effects.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.list {
		total = total.Add(it.Product.Price.Amount.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Items returns a copy of the current local view.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.list))
	copy(out, s.list)
	return out
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) fetch(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loading = true
	s.mu.Unlock()

	items, err := s.items.List(ctx, userID)

	s.mu.Lock()
	stale := gen != s.gen
	if !stale {
		s.loading = false
		if err == nil {
			s.list = items
		}
	}
	s.mu.Unlock()

	if err != nil {
		if !stale {
			s.notifyError("Não foi possível carregar o carrinho")
		}
		return fmt.Errorf("items.List: %w", err)
	}
	return nil
}

func (s *Store) findByProduct(productID string) (domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.list {
		if it.ProductID == productID {
			return it, true
		}
	}
	return domain.CartItem{}, false
}

func (s *Store) notifyError(msg string) {
	s.notify.Notify(Notification{Kind: KindError, Title: "Erro", Message: msg})
}

type noopNotifier struct{}

func (noopNotifier) Notify(Notification) {}
