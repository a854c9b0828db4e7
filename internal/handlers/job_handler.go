package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dienstmarkt_backend/internal/middleware"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

type JobHandler struct {
	*BaseHandler
	jobService    services.JobService
	uploadService services.UploadService
}

func NewJobHandler(
	base *BaseHandler,
	jobService services.JobService,
	uploadService services.UploadService,
) *JobHandler {
	return &JobHandler{
		BaseHandler:   base,
		jobService:    jobService,
		uploadService: uploadService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)

		authed := jobs.Group("")
		authed.Use(middleware.RequireAuth())
		{
			authed.GET("/my", h.ListMyJobs)
			authed.POST("", h.CreateJob)
			authed.PUT("/:jobId", h.UpdateJob)
			authed.DELETE("/:jobId", h.DeleteJob)
			authed.POST("/:jobId/images", h.UploadJobImages)
		}

		jobs.GET("/:jobId", h.GetJob)
	}
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	filter := repositories.JobFilter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	resp, err := h.jobService.ListJobs(filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListUserJobs(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	resp, err := h.jobService.GetJob(c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.CreateJob(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.UpdateJob(userID, h.IsAdmin(c), c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(userID, h.IsAdmin(c), c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job deleted"})
}

// UploadJobImages stores up to the configured number of images and
// attaches their URLs to the listing.
func (h *JobHandler) UploadJobImages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobID := c.Param("jobId")
	job, err := h.jobService.GetJob(jobID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !h.IsAdmin(c) && job.UserID != userID {
		apperrors.HandleError(c, apperrors.ErrJobNotEditable)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("multipart form is required"))
		return
	}
	files := form.File["images"]

	uploads, err := h.uploadService.UploadImages(c.Request.Context(), userID, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	urls := make([]string, 0, len(uploads))
	for _, u := range uploads {
		urls = append(urls, u.URL)
	}
	images := append(job.Images, urls...)
	resp, err := h.jobService.UpdateJob(userID, h.IsAdmin(c), jobID, &dto.UpdateJobRequest{Images: &images})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": resp, "uploads": uploads})
}
