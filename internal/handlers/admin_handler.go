package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dienstmarkt_backend/internal/middleware"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services"
	"dienstmarkt_backend/internal/services/dto"
)

type AdminHandler struct {
	*BaseHandler
	adminService  services.AdminService
	reviewService services.ReviewService
	jobService    services.JobService
}

func NewAdminHandler(
	base *BaseHandler,
	adminService services.AdminService,
	reviewService services.ReviewService,
	jobService services.JobService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   base,
		adminService:  adminService,
		reviewService: reviewService,
		jobService:    jobService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users/:userId/suspend", h.SuspendUser)
		admin.POST("/users/:userId/reinstate", h.ReinstateUser)
		admin.DELETE("/users/:userId", h.DeleteUser)

		admin.GET("/banned-emails", h.ListBannedEmails)
		admin.POST("/banned-emails", h.BanEmail)
		admin.DELETE("/banned-emails/:email", h.UnbanEmail)

		admin.DELETE("/profiles/:profileId", h.DeleteProfile)
		admin.DELETE("/reviews/:reviewId", h.DeleteReview)
		admin.DELETE("/jobs/:jobId", h.DeleteJob)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	filter := repositories.UserFilter{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	resp, err := h.adminService.ListUsers(filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SuspendUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.adminService.SuspendUser(adminID, c.Param("userId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user suspended"})
}

func (h *AdminHandler) ReinstateUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.adminService.ReinstateUser(adminID, c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user reinstated"})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// The request body is optional; an empty body means no email ban.
	var req dto.DeleteUserRequest
	if c.Request.ContentLength > 0 {
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
	}

	if err := h.adminService.DeleteUser(adminID, c.Param("userId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *AdminHandler) ListBannedEmails(c *gin.Context) {
	entries, err := h.adminService.ListBannedEmails()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banned_emails": entries})
}

func (h *AdminHandler) BanEmail(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BanEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.adminService.BanEmail(adminID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "email banned"})
}

func (h *AdminHandler) UnbanEmail(c *gin.Context) {
	if err := h.adminService.UnbanEmail(c.Param("email")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email unbanned"})
}

func (h *AdminHandler) DeleteProfile(c *gin.Context) {
	if err := h.adminService.DeleteProfile(c.Param("profileId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}

func (h *AdminHandler) DeleteReview(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(adminID, true, c.Param("reviewId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

func (h *AdminHandler) DeleteJob(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(adminID, true, c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job deleted"})
}
