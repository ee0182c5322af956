package app_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	cartdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/domain"
	catalogdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/app"
	orderdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

type fakeCart struct {
	items   []cartdomain.CartItem
	cleared bool
}

func (f *fakeCart) Items() []cartdomain.CartItem { return f.items }

func (f *fakeCart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range f.items {
		total = total.Add(it.Product.Price.Amount.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (f *fakeCart) Clear(ctx context.Context) error {
	f.items = nil
	f.cleared = true
	return nil
}

type fakeCatalog struct {
	products map[string]app.Product
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID string) (app.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return app.Product{}, errors.New("not found")
	}
	return p, nil
}

type fakeOrders struct {
	created orderdomain.CreateOrderRequest
	err     error
}

func (f *fakeOrders) CreateOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.Order, error) {
	if f.err != nil {
		return orderdomain.Order{}, f.err
	}
	f.created = req

	total := money.BRL(decimal.Zero)
	for _, it := range req.Items {
		total = total.Add(it.Price.Mul(it.Quantity))
	}
	return orderdomain.Order{ID: "order-1", UserID: req.UserID, Status: "PENDING", Total: total}, nil
}

type fakePublisher struct {
	published []orderdomain.Order
	err       error
}

func (f *fakePublisher) PublishCreated(ctx context.Context, order orderdomain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, order)
	return nil
}

func cartItem(productID, name string, price int64, qty int) cartdomain.CartItem {
	return cartdomain.CartItem{
		ID:        "item-" + productID,
		ProductID: productID,
		Product: catalogdomain.Product{
			ID:    productID,
			Name:  name,
			Price: money.BRL(decimal.NewFromInt(price)),
		},
		Quantity: qty,
	}
}

func catalogOf(items ...cartdomain.CartItem) *fakeCatalog {
	products := make(map[string]app.Product, len(items))
	for _, it := range items {
		products[it.ProductID] = app.Product{
			ID:    it.Product.ID,
			Name:  it.Product.Name,
			Price: it.Product.Price,
		}
	}
	return &fakeCatalog{products: products}
}

var testUser = authdomain.User{ID: "user-1", Email: "joao@example.com", FullName: "João Silva"}

func TestSummary(t *testing.T) {
	items := []cartdomain.CartItem{
		cartItem("p1", "Teclado", 100, 2),
		cartItem("p2", "Mouse", 150, 1),
	}
	svc := app.NewService(catalogOf(items...), &fakeOrders{}, &fakePublisher{}, "5583996160776", 0)

	summary, err := svc.Summary(context.Background(), &fakeCart{items: items})
	require.NoError(t, err)

	require.Len(t, summary.Lines, 2)
	assert.Equal(t, "Teclado", summary.Lines[0].Name)
	assert.Equal(t, 2, summary.Lines[0].Quantity)
	assert.Equal(t, "200", summary.Lines[0].LineTotal.Amount.String())
	assert.Equal(t, "350", summary.Total.Amount.String())
}

func TestSummaryEmptyCart(t *testing.T) {
	svc := app.NewService(catalogOf(), &fakeOrders{}, &fakePublisher{}, "5583996160776", 0)

	_, err := svc.Summary(context.Background(), &fakeCart{})
	require.ErrorIs(t, err, app.ErrEmptyCart)
}

func TestSummaryUsesCurrentCatalogPrice(t *testing.T) {
	item := cartItem("p1", "Teclado", 100, 1)
	catalog := catalogOf(item)
	// price changed since the cart snapshot was taken
	catalog.products["p1"] = app.Product{ID: "p1", Name: "Teclado", Price: money.BRL(decimal.NewFromInt(120))}

	svc := app.NewService(catalog, &fakeOrders{}, &fakePublisher{}, "5583996160776", 0)

	summary, err := svc.Summary(context.Background(), &fakeCart{items: []cartdomain.CartItem{item}})
	require.NoError(t, err)
	assert.Equal(t, "120", summary.Total.Amount.String())
}

func TestCheckout(t *testing.T) {
	items := []cartdomain.CartItem{
		cartItem("p1", "Teclado", 100, 2),
		cartItem("p2", "Mouse", 150, 1),
	}
	cart := &fakeCart{items: items}
	orders := &fakeOrders{}
	publisher := &fakePublisher{}
	svc := app.NewService(catalogOf(items...), orders, publisher, "5583996160776", 0)

	result, err := svc.Checkout(context.Background(), testUser, cart)
	require.NoError(t, err)

	assert.Equal(t, "order-1", result.OrderID)
	assert.Equal(t, "350", result.Summary.Total.Amount.String())
	assert.True(t, strings.HasPrefix(result.WhatsAppURL, "https://wa.me/5583996160776?text="))

	assert.Equal(t, testUser.ID, orders.created.UserID)
	require.Len(t, orders.created.Items, 2)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "order-1", publisher.published[0].ID)

	assert.True(t, cart.cleared)
}

func TestCheckoutMessageMatchesRepricedOrder(t *testing.T) {
	item := cartItem("p1", "Teclado", 100, 1)
	catalog := catalogOf(item)
	// price changed since the cart snapshot was taken
	catalog.products["p1"] = app.Product{ID: "p1", Name: "Teclado", Price: money.BRL(decimal.NewFromInt(120))}

	cart := &fakeCart{items: []cartdomain.CartItem{item}}
	svc := app.NewService(catalog, &fakeOrders{}, &fakePublisher{}, "5583996160776", 0)

	result, err := svc.Checkout(context.Background(), testUser, cart)
	require.NoError(t, err)

	_, encoded, ok := strings.Cut(result.WhatsAppURL, "?text=")
	require.True(t, ok)
	text, err := url.QueryUnescape(encoded)
	require.NoError(t, err)

	// line items and grand total agree, both at the persisted order price
	assert.Contains(t, text, "- Teclado - Qtd: 1 - R$ 120,00")
	assert.Contains(t, text, "*TOTAL: R$ 120,00*")
	assert.NotContains(t, text, "R$ 100,00")
}

func TestCheckoutPublishFailureIsNotFatal(t *testing.T) {
	items := []cartdomain.CartItem{cartItem("p1", "Teclado", 100, 1)}
	cart := &fakeCart{items: items}
	svc := app.NewService(catalogOf(items...), &fakeOrders{}, &fakePublisher{err: errors.New("broker down")}, "5583996160776", 0)

	result, err := svc.Checkout(context.Background(), testUser, cart)
	require.NoError(t, err)
	assert.Equal(t, "order-1", result.OrderID)
	assert.True(t, cart.cleared)
}

func TestCheckoutOrderFailureKeepsCart(t *testing.T) {
	items := []cartdomain.CartItem{cartItem("p1", "Teclado", 100, 1)}
	cart := &fakeCart{items: items}
	svc := app.NewService(catalogOf(items...), &fakeOrders{err: errors.New("db down")}, &fakePublisher{}, "5583996160776", 0)

	_, err := svc.Checkout(context.Background(), testUser, cart)
	require.Error(t, err)
	assert.False(t, cart.cleared)
}
