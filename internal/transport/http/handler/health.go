package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"pressfeed/internal/bootstrap"
	"pressfeed/internal/transport/http/response"
)

type HealthHandler struct {
	app *bootstrap.App
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	response.OK(c, gin.H{
		"name":   h.app.Config.App.Name,
		"env":    h.app.Config.App.Env,
		"uptime": time.Since(h.app.StartedAt).String(),
	})
}
