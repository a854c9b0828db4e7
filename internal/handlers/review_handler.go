package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dienstmarkt_backend/internal/middleware"
	"dienstmarkt_backend/internal/services"
	"dienstmarkt_backend/internal/services/dto"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profiles/:profileId/reviews", h.GetProfileReviews)

	authed := r.Group("")
	authed.Use(middleware.RequireAuth())
	{
		authed.POST("/profiles/:profileId/reviews", h.CreateReview)
		authed.DELETE("/reviews/:reviewId", h.DeleteReview)
	}
}

func (h *ReviewHandler) GetProfileReviews(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	resp, err := h.reviewService.GetProfileReviews(c.Param("profileId"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.reviewService.CreateReview(userID, c.Param("profileId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(userID, h.IsAdmin(c), c.Param("reviewId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
