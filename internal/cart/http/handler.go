package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authhttp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/http"
	cartapp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/cart/domain"
	catalogapp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/app"
	cataloghttp "github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/http"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
)

// Handler serves the per-session cart. All routes require authentication;
// register it inside a group wrapped with authhttp.RequireAuth.
type Handler struct {
	sessions *cartapp.Sessions
	catalog  *catalogapp.Service
}

func NewHandler(sessions *cartapp.Sessions, catalog *catalogapp.Service) *Handler {
	return &Handler{sessions: sessions, catalog: catalog}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/cart", h.get)
	r.POST("/cart/items", h.addItem)
	r.PATCH("/cart/items/:id", h.updateItem)
	r.DELETE("/cart/items/:id", h.removeItem)
	r.DELETE("/cart", h.clear)
}

type cartItemResponse struct {
	ID       string                      `json:"id"`
	Product  cataloghttp.ProductResponse `json:"product"`
	Quantity int                         `json:"quantity"`
}

type cartResponse struct {
	Items          []cartItemResponse `json:"items"`
	Total          string             `json:"total"`
	TotalFormatted string             `json:"total_formatted"`
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) get(c *gin.Context) {
	store := h.store(c)
	c.JSON(http.StatusOK, toCartResponse(store))
}

func (h *Handler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": "invalid request body"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, catalogapp.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": "product_id is required"})
		case errors.Is(err, catalogapp.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND", "message": "product not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "unexpected error"})
		}
		return
	}

	store := h.store(c)
	if err := store.Add(c.Request.Context(), product, req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "could not add product to cart"})
		return
	}

	c.JSON(http.StatusCreated, toCartResponse(store))
}

func (h *Handler) updateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": "invalid request body"})
		return
	}

	store := h.store(c)
	if err := store.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "could not update quantity"})
		return
	}

	c.JSON(http.StatusOK, toCartResponse(store))
}

func (h *Handler) removeItem(c *gin.Context) {
	store := h.store(c)
	if err := store.Remove(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "could not remove product from cart"})
		return
	}

	c.JSON(http.StatusOK, toCartResponse(store))
}

func (h *Handler) clear(c *gin.Context) {
	store := h.store(c)
	if err := store.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "could not clear cart"})
		return
	}

	c.JSON(http.StatusOK, toCartResponse(store))
}

// store resolves the caller's session store. A failed initial load still
// yields a usable store serving the last known local view.
func (h *Handler) store(c *gin.Context) *cartapp.Store {
	user, _ := authhttp.UserFrom(c)
	return h.sessions.For(c.Request.Context(), authhttp.TokenFrom(c), user)
}

func toCartResponse(store *cartapp.Store) cartResponse {
	items := store.Items()
	total := store.Total()

	out := make([]cartItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toCartItemResponse(it))
	}

	return cartResponse{
		Items:          out,
		Total:          total.String(),
		TotalFormatted: money.FormatBRL(total),
	}
}

func toCartItemResponse(it domain.CartItem) cartItemResponse {
	return cartItemResponse{
		ID:       it.ID,
		Product:  cataloghttp.ToProductResponse(it.Product),
		Quantity: it.Quantity,
	}
}
