package http

import (
	"errors"
	"net/http"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *app.Service

	// onLogout lets the wiring tear down per-session state (the cart view)
	// without this package importing the cart context.
	onLogout func(token string)
}

func NewHandler(svc *app.Service, onLogout func(token string)) *Handler {
	if onLogout == nil {
		onLogout = func(string) {}
	}
	return &Handler{svc: svc, onLogout: onLogout}
}

func (h *Handler) Register(r gin.IRouter) {
	r.POST("/auth/register", h.register)
	r.POST("/auth/login", h.login)
	r.POST("/auth/logout", RequireAuth(h.svc), h.logout)
}

type registerRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": "invalid request body"})
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), app.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSession(token, user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": "invalid request body"})
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSession(token, user))
}

func (h *Handler) logout(c *gin.Context) {
	token := TokenFrom(c)
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "could not end session"})
		return
	}
	h.onLogout(token)

	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
	case errors.Is(err, app.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "INVALID_CREDENTIALS", "message": "email or password is incorrect"})
	case errors.Is(err, app.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "EMAIL_TAKEN", "message": "email already registered"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "unexpected error"})
	}
}

func toSession(token string, user domain.User) sessionResponse {
	return sessionResponse{
		Token: token,
		User: userResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}
}
