package postgres_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/domain"
	catalogpg "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/infra/postgres"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

type productRepoSuite struct {
	suite.Suite

	repo app.ProductRepo
	pool *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestProductRepoSuite(t *testing.T) {
	suite.Run(t, new(productRepoSuite))
}

// before all tests in the suite
func (suite *productRepoSuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo = catalogpg.NewProductRepo(suite.pool)
}

// after all tests in the suite
func (suite *productRepoSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *productRepoSuite) TestCreateAndGet() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	product := randomProduct()

	created, err := suite.repo.Create(ctx, product)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := suite.repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assertProduct(t, created, got)

	_, err = suite.repo.Get(ctx, gofakeit.UUID())
	require.ErrorIs(t, err, app.ErrNotFound)
}

func (suite *productRepoSuite) TestListFilters() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	cheap := randomProduct()
	cheap.Name = "Mouse Gamer"
	cheap.Description = "sensor optico"
	cheap.Category = "perifericos"
	cheap.Price = money.BRL(decimal.NewFromInt(50))

	pricey := randomProduct()
	pricey.Name = "Notebook Pro"
	pricey.Description = "tela retina"
	pricey.Category = "computadores"
	pricey.Price = money.BRL(decimal.NewFromInt(5000))

	for _, p := range []domain.Product{cheap, pricey} {
		_, err := suite.repo.Create(ctx, p)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		filter    app.Filter
		wantNames []string
		wantTotal int
	}{
		{
			name:      "search by name",
			filter:    app.Filter{Search: "mouse", Page: 1, PerPage: 8},
			wantNames: []string{"Mouse Gamer"},
			wantTotal: 1,
		},
		{
			name:      "filter by category",
			filter:    app.Filter{Category: "computadores", Page: 1, PerPage: 8},
			wantNames: []string{"Notebook Pro"},
			wantTotal: 1,
		},
		{
			name:      "min price bound",
			filter:    app.Filter{MinPrice: decimal.NewFromInt(100), Page: 1, PerPage: 8},
			wantNames: []string{"Notebook Pro"},
			wantTotal: 1,
		},
		{
			name:      "max price bound",
			filter:    app.Filter{MaxPrice: decimal.NewFromInt(100), Page: 1, PerPage: 8},
			wantNames: []string{"Mouse Gamer"},
			wantTotal: 1,
		},
		{
			name:      "sort by price ascending",
			filter:    app.Filter{Sort: app.SortByPrice, Page: 1, PerPage: 8},
			wantNames: []string{"Mouse Gamer", "Notebook Pro"},
			wantTotal: 2,
		},
		{
			name:      "pagination",
			filter:    app.Filter{Sort: app.SortByName, Page: 2, PerPage: 1},
			wantNames: []string{"Notebook Pro"},
			wantTotal: 2,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			items, total, err := suite.repo.List(t.Context(), tt.filter)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotal, total)

			names := make([]string, 0, len(items))
			for _, p := range items {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func (suite *productRepoSuite) TestCategories() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	for _, category := range []string{"perifericos", "computadores", "perifericos"} {
		p := randomProduct()
		p.Category = category
		_, err := suite.repo.Create(ctx, p)
		require.NoError(t, err)
	}

	categories, err := suite.repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"computadores", "perifericos"}, categories)
}

func (suite *productRepoSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE products CASCADE")
	suite.NoError(err)
}

func randomProduct() domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price: money.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 500)),
			Currency: currency.BRL,
		},
		ImageURL: gofakeit.URL(),
		Category: gofakeit.ProductCategory(),
	}
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "CreatedAt"),
		currencyComparer,
		decimalComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
}
