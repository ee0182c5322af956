package domain

import (
	"time"

	catalogdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/domain"
)

// CartItem is one row associating a user, a product and a quantity.
// ID is assigned by the item store on insert. The embedded product is a
// read-only snapshot joined in by the store.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Product   catalogdomain.Product
	Quantity  int
	CreatedAt time.Time
}

type Cart struct {
	UserID string
	Items  []CartItem
}
