package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"dienstmarkt_backend/internal/logger"
	"dienstmarkt_backend/internal/middleware"
	"dienstmarkt_backend/internal/services"
	"dienstmarkt_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.establishSession(c, resp.User.ID)
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.establishSession(c, resp.User.ID)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to clear session", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// establishSession writes the session cookie alongside the issued token.
// A failed cookie write is not fatal, the client still holds the token.
func (h *AuthHandler) establishSession(c *gin.Context, userID string) {
	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, userID)
	if err := session.Save(); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to save session", err, "user_id", userID)
	}
}
