package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pressfeed/internal/app"
	"pressfeed/internal/transport/http/middleware"
	"pressfeed/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type SignInRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,min=8,max=128"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), req.Login, req.Password, "")
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrLoginExists):
			response.Error(c, http.StatusConflict, response.CodeLoginExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "sign up failed")
		}
		return
	}

	response.OK(c, gin.H{
		"token": result.Token,
		"user": gin.H{
			"id":    result.User.ID,
			"login": result.User.Login,
		},
	})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUnknownLogin):
			response.Error(c, http.StatusNotFound, response.CodeLoginNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "sign in failed")
		}
		return
	}

	response.OK(c, gin.H{
		"token": result.Token,
		"user": gin.H{
			"id":    result.User.ID,
			"login": result.User.Login,
		},
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	login, ok := middleware.Login(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login not found in token")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), login, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrSamePassword):
			response.Error(c, http.StatusBadRequest, response.CodeSamePassword, err.Error())
		case errors.Is(err, app.ErrUnknownLogin):
			response.Error(c, http.StatusUnauthorized, response.CodeLoginNotFound, err.Error())
		case errors.Is(err, app.ErrPasswordMismatch):
			response.Error(c, http.StatusUnauthorized, response.CodePasswordMismatch, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "change password failed")
		}
		return
	}

	response.OK(c, nil)
}
