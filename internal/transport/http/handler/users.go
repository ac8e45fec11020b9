package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pressfeed/internal/app"
	"pressfeed/internal/transport/http/middleware"
	"pressfeed/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

type UpdateDescriptionRequest struct {
	Description string `json:"description" binding:"required,max=4096"`
}

type UserImagesRequest struct {
	Images []string `json:"images" binding:"required,min=1"`
}

type ReplaceImageRequest struct {
	ImageID string `json:"image_id" binding:"required"`
	Image   string `json:"image" binding:"required"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetAuthor(c *gin.Context) {
	authorName := c.Query("author_name")
	if authorName == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "author name is required")
		return
	}

	author, err := h.userService.GetAuthor(c.Request.Context(), authorName)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch author failed")
		return
	}
	if author == nil {
		response.Error(c, http.StatusNotFound, response.CodeLoginNotFound, "author not found")
		return
	}
	response.OK(c, gin.H{"author_info": author})
}

func (h *UserHandler) UpdateDescription(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}

	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.userService.UpdateDescription(c.Request.Context(), login, req.Description); err != nil {
		if errors.Is(err, app.ErrUnknownLogin) {
			response.Error(c, http.StatusNotFound, response.CodeLoginNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update description failed")
		return
	}
	response.OK(c, nil)
}

func (h *UserHandler) AddImages(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}

	var req UserImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	imageIDs, err := h.userService.AddImages(c.Request.Context(), login, req.Images)
	if err != nil {
		h.userError(c, err, "add images failed")
		return
	}
	response.OK(c, gin.H{"created_image_ids": imageIDs})
}

func (h *UserHandler) ListImages(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}
	firstOnly := c.Query("first_only") == "true"

	imageIDs, err := h.userService.ListImages(c.Request.Context(), login, firstOnly)
	if err != nil {
		h.userError(c, err, "list images failed")
		return
	}
	response.OK(c, gin.H{"image_ids": imageIDs})
}

func (h *UserHandler) GetImage(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}
	imageID := c.Query("image_id")
	if imageID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid image id")
		return
	}

	raw, err := h.userService.GetImage(c.Request.Context(), login, imageID)
	if err != nil {
		h.userError(c, err, "fetch image failed")
		return
	}
	if raw == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "image not found")
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", raw)
}

func (h *UserHandler) ReplaceImage(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}

	var req ReplaceImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	replaced, err := h.userService.ReplaceImage(c.Request.Context(), login, req.ImageID, req.Image)
	if err != nil {
		h.userError(c, err, "replace image failed")
		return
	}
	if !replaced {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "image not found")
		return
	}
	response.OK(c, nil)
}

func (h *UserHandler) userError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrUnknownLogin):
		response.Error(c, http.StatusNotFound, response.CodeLoginNotFound, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
