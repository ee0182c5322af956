package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authhttp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/http"
	cartapp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/checkout/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

type Handler struct {
	svc      *app.Service
	sessions *cartapp.Sessions
}

func NewHandler(svc *app.Service, sessions *cartapp.Sessions) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/checkout", h.checkout)
}

type summaryLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

type checkoutResponse struct {
	OrderID        string                `json:"order_id"`
	WhatsAppURL    string                `json:"whatsapp_url"`
	Items          []summaryLineResponse `json:"items"`
	Total          string                `json:"total"`
	TotalFormatted string                `json:"total_formatted"`
}

func (h *Handler) checkout(c *gin.Context) {
	user, _ := authhttp.UserFrom(c)
	store := h.sessions.For(c.Request.Context(), authhttp.TokenFrom(c), user)

	result, err := h.svc.Checkout(c.Request.Context(), user, store)
	if err != nil {
		if errors.Is(err, app.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{"error": "EMPTY_CART", "message": "cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "could not complete checkout"})
		return
	}

	c.JSON(http.StatusCreated, toCheckoutResponse(result))
}

func toCheckoutResponse(result domain.CheckoutResult) checkoutResponse {
	items := make([]summaryLineResponse, 0, len(result.Summary.Lines))
	for _, line := range result.Summary.Lines {
		items = append(items, summaryLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.Amount.String(),
			LineTotal: line.LineTotal.Amount.String(),
		})
	}

	return checkoutResponse{
		OrderID:        result.OrderID,
		WhatsAppURL:    result.WhatsAppURL,
		Items:          items,
		Total:          result.Summary.Total.Amount.String(),
		TotalFormatted: money.FormatBRL(result.Summary.Total.Amount),
	}
}
