package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pressfeed/internal/app"
	"pressfeed/internal/model"
	"pressfeed/internal/transport/http/middleware"
	"pressfeed/internal/transport/http/response"
)

type FeedHandler struct {
	feedService *app.FeedService
}

type CreateArticleRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Announcement string `json:"announcement"`
	Body         string `json:"article_body" binding:"required"`
}

type UpdateArticleRequest struct {
	ArticleID    uint   `json:"article_id" binding:"required"`
	Title        string `json:"title" binding:"required,max=255"`
	Announcement string `json:"announcement"`
	Body         string `json:"article_body" binding:"required"`
}

type ArticleImagesRequest struct {
	Images []string `json:"images" binding:"required,min=1"`
}

type RemoveImagesRequest struct {
	ImageIDs []string `json:"image_ids" binding:"required,min=1"`
}

func NewFeedHandler(feedService *app.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) ListAnnouncements(c *gin.Context) {
	amount := intQuery(c, "amount", 10)
	page := intQuery(c, "page", 1)
	login := c.Query("login")

	articles, err := h.feedService.ListAnnouncements(c.Request.Context(), amount, page, login)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list articles failed")
		return
	}
	response.OK(c, gin.H{"articles": articles})
}

func (h *FeedHandler) GetArticle(c *gin.Context) {
	articleID, ok := uintQuery(c, "article_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid article id")
		return
	}

	article, err := h.feedService.GetArticle(c.Request.Context(), articleID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch article failed")
		return
	}
	if article == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "article not found")
		return
	}
	response.OK(c, gin.H{"article": article})
}

func (h *FeedHandler) GetArticleFull(c *gin.Context) {
	articleID, ok := uintQuery(c, "article_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid article id")
		return
	}

	article, err := h.feedService.GetArticleFull(c.Request.Context(), articleID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch article failed")
		return
	}
	if article == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "article not found")
		return
	}
	response.OK(c, gin.H{"article": article})
}

func (h *FeedHandler) CreateArticle(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}

	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	articleID, err := h.feedService.CreateArticle(c.Request.Context(), login, &model.ArticleFull{
		Title:        req.Title,
		Announcement: req.Announcement,
		Body:         req.Body,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create article failed")
		return
	}
	response.OK(c, gin.H{"article_id": articleID})
}

func (h *FeedHandler) UpdateArticle(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}

	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.feedService.UpdateArticle(c.Request.Context(), login, &model.ArticleFull{
		ArticleID:    req.ArticleID,
		Title:        req.Title,
		Announcement: req.Announcement,
		Body:         req.Body,
	})
	if err != nil {
		h.mutationError(c, err, "update article failed")
		return
	}
	response.OK(c, nil)
}

func (h *FeedHandler) DeleteArticle(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}

	articleID, ok := uintQuery(c, "article_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid article id")
		return
	}

	if err := h.feedService.DeleteArticle(c.Request.Context(), login, articleID); err != nil {
		h.mutationError(c, err, "delete article failed")
		return
	}
	response.OK(c, nil)
}

func (h *FeedHandler) Search(c *gin.Context) {
	query := c.Query("query")
	amount := intQuery(c, "amount", 5)
	page := intQuery(c, "page", 1)
	login := c.Query("login")

	hits, err := h.feedService.Search(c.Request.Context(), query, amount, page, login)
	if err != nil {
		if errors.Is(err, app.ErrQueryEmpty) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "search failed")
		return
	}
	response.OK(c, gin.H{"results": hits})
}

func (h *FeedHandler) AddImages(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}

	articleID, ok := uintQuery(c, "article_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid article id")
		return
	}

	var req ArticleImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	imageIDs, err := h.feedService.AddImages(c.Request.Context(), login, articleID, req.Images)
	if err != nil {
		h.mutationError(c, err, "add images failed")
		return
	}
	response.OK(c, gin.H{"created_image_ids": imageIDs})
}

func (h *FeedHandler) RemoveImages(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}

	articleID, ok := uintQuery(c, "article_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid article id")
		return
	}

	var req RemoveImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	deleted, err := h.feedService.RemoveImages(c.Request.Context(), login, articleID, req.ImageIDs)
	if err != nil {
		h.mutationError(c, err, "remove images failed")
		return
	}
	response.OK(c, gin.H{"deleted_image_ids": deleted})
}

func (h *FeedHandler) ListImages(c *gin.Context) {
	articleID, ok := uintQuery(c, "article_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid article id")
		return
	}
	firstOnly := c.Query("first_only") == "true"

	imageIDs, err := h.feedService.ListImages(c.Request.Context(), articleID, firstOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list images failed")
		return
	}
	response.OK(c, gin.H{"image_ids": imageIDs})
}

func (h *FeedHandler) GetImage(c *gin.Context) {
	articleID, ok := uintQuery(c, "article_id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid article id")
		return
	}
	imageID := c.Query("image_id")
	if imageID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid image id")
		return
	}

	raw, err := h.feedService.GetImage(c.Request.Context(), articleID, imageID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch image failed")
		return
	}
	if raw == nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "image not found")
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", raw)
}

func (h *FeedHandler) mutationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrNotOwner):
		response.Error(c, http.StatusForbidden, response.CodeNotOwner, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func uintQuery(c *gin.Context, key string) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Query(key), 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}
