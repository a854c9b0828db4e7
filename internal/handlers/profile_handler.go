package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dienstmarkt_backend/internal/middleware"
	"dienstmarkt_backend/internal/services"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	uploadService  services.UploadService
}

func NewProfileHandler(
	base *BaseHandler,
	profileService services.ProfileService,
	uploadService services.UploadService,
) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		uploadService:  uploadService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	{
		profiles.GET("", h.Search)

		my := profiles.Group("/my")
		my.Use(middleware.RequireAuth())
		{
			my.GET("", h.GetMyProfile)
			my.POST("", h.CreateProfile)
			my.PUT("", h.UpdateProfile)
			my.DELETE("", h.DeleteProfile)
			my.POST("/image", h.UploadProfileImage)
		}

		// Param routes come after /my so the group literal wins.
		profiles.GET("/:profileId", h.GetProfile)
	}
}

func (h *ProfileHandler) Search(c *gin.Context) {
	var req dto.SearchProfilesRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.profileService.Search(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	resp, err := h.profileService.GetProfile(c.Param("profileId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.profileService.GetProfileByUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.profileService.CreateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteProfile(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}

func (h *ProfileHandler) UploadProfileImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("image file is required"))
		return
	}

	upload, err := h.uploadService.UploadProfileImage(c.Request.Context(), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.profileService.SetProfileImage(userID, upload.URL); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}
