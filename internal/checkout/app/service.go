package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	authdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	cartdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/whatsapp"
	orderdomain "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/order/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

var ErrEmptyCart = errors.New("cart is empty")

// Cart is the session cart being checked out.
type Cart interface {
	Items() []cartdomain.CartItem
	Total() decimal.Decimal
	Clear(ctx context.Context) error
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID    string
	Name  string
	Price money.Money
}

type Orders interface {
	CreateOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.Order, error)
}

type Publisher interface {
	PublishCreated(ctx context.Context, order orderdomain.Order) error
}

type Service struct {
	catalog   CatalogReader
	orders    Orders
	publisher Publisher
	phone     string

	maxConcurrent int
}

func NewService(catalog CatalogReader, orders Orders, publisher Publisher, phone string, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		catalog:       catalog,
		orders:        orders,
		publisher:     publisher,
		phone:         phone,
		maxConcurrent: maxConcurrent,
	}
}

// Summary re-prices every cart line against the catalog, so the order
// records current prices rather than the snapshot the cart was built from.
func (s *Service) Summary(ctx context.Context, cart Cart) (domain.OrderSummary, error) {
	items := cart.Items()
	if len(items) == 0 {
		return domain.OrderSummary{}, ErrEmptyCart
	}

	lines := make([]domain.SummaryLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.SummaryLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
				LineTotal: product.Price.Mul(it.Quantity),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.OrderSummary{}, err
	}

	total := money.BRL(decimal.Zero)
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}

	return domain.OrderSummary{Lines: lines, Total: total}, nil
}

// Checkout turns the cart into a persisted PENDING order, announces it on
// the broker, clears the cart and hands back the WhatsApp link carrying
// the order text. Publish and clear failures are logged, not returned:
// once the order row exists the checkout has happened.
func (s *Service) Checkout(ctx context.Context, user authdomain.User, cart Cart) (domain.CheckoutResult, error) {
	summary, err := s.Summary(ctx, cart)
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	// the message carries the same priced lines the order will record
	link := whatsapp.URL(s.phone, user, summary)

	req := orderdomain.CreateOrderRequest{
		UserID: user.ID,
		Items:  make([]orderdomain.OrderItemRequest, 0, len(summary.Lines)),
	}
	for _, line := range summary.Lines {
		req.Items = append(req.Items, orderdomain.OrderItemRequest{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	order, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	if err := s.publisher.PublishCreated(ctx, order); err != nil {
		slog.WarnContext(ctx, "order publish failed",
			"order_id", order.ID, "error", err)
	}

	if err := cart.Clear(ctx); err != nil {
		slog.WarnContext(ctx, "cart clear after checkout failed",
			"order_id", order.ID, "error", err)
	}

	return domain.CheckoutResult{
		OrderID:     order.ID,
		WhatsAppURL: link,
		Summary:     summary,
	}, nil
}
