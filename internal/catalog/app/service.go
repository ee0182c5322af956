package app

import (
	"context"
	"errors"
	"strings"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	SortByDate  = "date"
	SortByName  = "name"
	SortByPrice = "price"

	defaultPerPage = 8
	maxPerPage     = 100
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	if p.Name == "" || p.Price.Amount.IsNegative() {
		return domain.Product{}, ErrInvalidInput
	}
	if p.Price.Currency.String() == "XXX" {
		p.Price = money.BRL(p.Price.Amount)
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, f Filter) ([]domain.Product, int, error) {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = defaultPerPage
	}
	if f.PerPage > maxPerPage {
		f.PerPage = maxPerPage
	}
	if f.MinPrice.IsNegative() || f.MaxPrice.IsNegative() {
		return nil, 0, ErrInvalidInput
	}

	switch f.Sort {
	case SortByDate, SortByName, SortByPrice:
	case "":
		f.Sort = SortByDate
	default:
		return nil, 0, ErrInvalidInput
	}

	return s.repo.List(ctx, f)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}
