package app

import (
	"context"

	authdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/domain"
)

type InsertItem struct {
	UserID    string
	ProductID string
	Quantity  int
}

// ItemStore is the remote persistence backing the cart: row-oriented,
// filtered by user id, items returned with their product joined in.
type ItemStore interface {
	List(ctx context.Context, userID string) ([]domain.CartItem, error)
	Insert(ctx context.Context, row InsertItem) (domain.CartItem, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	DeleteAll(ctx context.Context, userID string) error
}

// Identity supplies the authenticated user, or reports that none is present.
type Identity interface {
	CurrentUser(ctx context.Context) (authdomain.User, bool)
}

type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
)

type Notification struct {
	Kind    NotificationKind
	Title   string
	Message string
}

// Notifier is the fire-and-forget feedback channel called after every
// operation outcome. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// BindIdentity returns an Identity fixed to one user, for stores that live
// exactly as long as an authenticated session.
func BindIdentity(user authdomain.User) Identity {
	return boundIdentity{user: user}
}

type boundIdentity struct {
	user authdomain.User
}

func (b boundIdentity) CurrentUser(ctx context.Context) (authdomain.User, bool) {
	return b.user, true
}
