package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dienstmarkt_backend/internal/middleware"
	"dienstmarkt_backend/internal/services"
)

type FavoriteHandler struct {
	*BaseHandler
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(base *BaseHandler, favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		BaseHandler:     base,
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup) {
	favorites := r.Group("/favorites")
	favorites.Use(middleware.RequireAuth())
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("/:profileId", h.AddFavorite)
		favorites.DELETE("/:profileId", h.RemoveFavorite)
	}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	favorites, err := h.favoriteService.ListFavorites(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.AddFavorite(userID, c.Param("profileId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "favorite added"})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.RemoveFavorite(userID, c.Param("profileId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}
