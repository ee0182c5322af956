package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	svc *app.Service
}

func NewHandler(svc *app.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/products", h.list)
	r.GET("/products/:id", h.get)
	r.GET("/categories", h.categories)
}

type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          string    `json:"price"`
	PriceFormatted string    `json:"price_formatted"`
	Currency       string    `json:"currency"`
	ImageURL       string    `json:"image_url"`
	Category       string    `json:"category"`
	CreatedAt      time.Time `json:"created_at"`
}

type listResponse struct {
	Items   []ProductResponse `json:"items"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

func (h *Handler) list(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
		return
	}

	items, total, err := h.svc.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToProductResponse(p))
	}

	c.JSON(http.StatusOK, listResponse{
		Items:   out,
		Total:   total,
		Page:    max(filter.Page, 1),
		PerPage: filter.PerPage,
	})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToProductResponse(p))
}

func (h *Handler) categories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
	case errors.Is(err, app.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND", "message": "product not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "unexpected error"})
	}
}

func filterFromQuery(c *gin.Context) (app.Filter, error) {
	f := app.Filter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}

	var err error
	if f.Page, err = intQuery(c, "page"); err != nil {
		return app.Filter{}, err
	}
	if f.PerPage, err = intQuery(c, "per_page"); err != nil {
		return app.Filter{}, err
	}
	if f.MinPrice, err = decimalQuery(c, "min_price"); err != nil {
		return app.Filter{}, err
	}
	if f.MaxPrice, err = decimalQuery(c, "max_price"); err != nil {
		return app.Filter{}, err
	}
	return f, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}

func decimalQuery(c *gin.Context, key string) (decimal.Decimal, error) {
	v := c.Query(key)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, errors.New(key + " must be a number")
	}
	return d, nil
}

// ToProductResponse is shared with the cart handler, which embeds product
// snapshots in cart line items.
func ToProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.Amount.String(),
		PriceFormatted: money.FormatBRL(p.Price.Amount),
		Currency:       p.Price.Currency.String(),
		ImageURL:       p.ImageURL,
		Category:       p.Category,
		CreatedAt:      p.CreatedAt,
	}
}
