package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadcrm/internal/pkg/response"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", h.GetMe)
	}
}

// Login handles POST /api/v1/auth/login. Unknown emails register
// transparently; there is no separate registration endpoint.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Email and password are required")
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusBadGateway, "IDENTITY_UNAVAILABLE", "Identity service rejected the request")
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         session.User,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString("access_token")
	if token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			response.Error(c, http.StatusBadGateway, "IDENTITY_UNAVAILABLE", "Failed to sign out")
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// GetMe handles GET /api/v1/auth/me
func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("user_email")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	response.Success(c, http.StatusOK, Identity{ID: userID, Email: email})
}
