package app

import (
	"context"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// Filter narrows a product listing. MaxPrice zero means no upper bound.
type Filter struct {
	Search   string
	Category string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Sort     string
	Page     int
	PerPage  int
}

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	// List returns one page of products plus the total match count.
	List(ctx context.Context, f Filter) ([]domain.Product, int, error)
	Categories(ctx context.Context) ([]string, error)
}
