package domain

import (
	"time"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

type Order struct {
	ID        string
	UserID    string
	Status    string
	Total     money.Money
	Items     []OrderItem
	CreatedAt time.Time
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Price     money.Money
	Quantity  int
}

type CreateOrderRequest struct {
	UserID string
	Items  []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID string
	Name      string
	Price     money.Money
	Quantity  int
}
