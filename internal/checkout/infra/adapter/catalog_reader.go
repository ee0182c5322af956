package adapter

import (
	"context"

	catalogapp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/app"
)

// CatalogReader narrows the catalog service to what checkout needs.
type CatalogReader struct {
	catalog *catalogapp.Service
}

func NewCatalogReader(catalog *catalogapp.Service) *CatalogReader {
	return &CatalogReader{catalog: catalog}
}

func (r *CatalogReader) GetProduct(ctx context.Context, productID string) (app.Product, error) {
	p, err := r.catalog.GetProduct(ctx, productID)
	if err != nil {
		return app.Product{}, err
	}

	return app.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}, nil
}

var _ app.CatalogReader = (*CatalogReader)(nil)
