package app

import (
	"context"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/domain"
)

type OrderRepo interface {
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
}
