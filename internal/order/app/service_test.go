package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

type fakeRepo struct {
	created domain.Order
	err     error
}

func (f *fakeRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	if f.err != nil {
		return domain.Order{}, f.err
	}
	order.ID = "order-1"
	f.created = order
	return order, nil
}

func TestCreateOrder(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	req := domain.CreateOrderRequest{
		UserID: "user-1",
		Items: []domain.OrderItemRequest{
			{ProductID: "p1", Name: "Teclado", Price: money.BRL(decimal.NewFromInt(100)), Quantity: 2},
			{ProductID: "p2", Name: "Mouse", Price: money.BRL(decimal.NewFromInt(150)), Quantity: 1},
		},
	}

	order, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Status != OrderStatusPending {
		t.Errorf("status = %q, want %q", order.Status, OrderStatusPending)
	}
	if got, want := order.Total.Amount.String(), "350"; got != want {
		t.Errorf("total = %s, want %s", got, want)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(order.Items))
	}
	if repo.created.UserID != "user-1" {
		t.Errorf("persisted user = %q, want user-1", repo.created.UserID)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	item := domain.OrderItemRequest{
		ProductID: "p1", Name: "Teclado",
		Price: money.BRL(decimal.NewFromInt(10)), Quantity: 1,
	}

	tests := []struct {
		name string
		req  domain.CreateOrderRequest
	}{
		{
			name: "missing user",
			req:  domain.CreateOrderRequest{Items: []domain.OrderItemRequest{item}},
		},
		{
			name: "no items",
			req:  domain.CreateOrderRequest{UserID: "user-1"},
		},
		{
			name: "zero quantity",
			req: domain.CreateOrderRequest{
				UserID: "user-1",
				Items: []domain.OrderItemRequest{
					{ProductID: "p1", Price: money.BRL(decimal.NewFromInt(10)), Quantity: 0},
				},
			},
		},
		{
			name: "negative price",
			req: domain.CreateOrderRequest{
				UserID: "user-1",
				Items: []domain.OrderItemRequest{
					{ProductID: "p1", Price: money.BRL(decimal.NewFromInt(-10)), Quantity: 1},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRepo{})
			if _, err := svc.CreateOrder(context.Background(), tt.req); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestCreateOrderRepoError(t *testing.T) {
	wantErr := errors.New("db down")
	svc := NewService(&fakeRepo{err: wantErr})

	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
		UserID: "user-1",
		Items: []domain.OrderItemRequest{
			{ProductID: "p1", Price: money.BRL(decimal.NewFromInt(10)), Quantity: 1},
		},
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}
