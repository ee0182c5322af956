package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

const (
	OrderStatusPending = "PENDING"
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if req.UserID == "" {
		return domain.Order{}, fmt.Errorf("user id is required")
	}
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("order must have at least one item")
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	total := money.BRL(decimal.Zero)

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("item %d: quantity must be positive, got %d", i, item.Quantity)
		}
		if item.Price.Amount.IsNegative() {
			return domain.Order{}, fmt.Errorf("item %d: price cannot be negative", i)
		}

		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})

		total = total.Add(item.Price.Mul(item.Quantity))
	}

	order := domain.Order{
		UserID: req.UserID,
		Status: OrderStatusPending,
		Total:  total,
		Items:  items,
	}

	return s.repo.CreateOrderTx(ctx, order)
}
