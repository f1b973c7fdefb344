package handler

import (
	"net/http"

	designUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/design"

	"github.com/gin-gonic/gin"
)

// DesignHandler keeps the image generator's original response shapes:
// {designUrl} on success and {success:false, error} on failure.
type DesignHandler struct {
	service *designUsecase.Service
}

func NewDesignHandler(service *designUsecase.Service) *DesignHandler {
	return &DesignHandler{service: service}
}

func (h *DesignHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/design/generate", h.Generate)
	router.POST("/design/proxy", h.Proxy)
}

func (h *DesignHandler) Generate(c *gin.Context) {
	var req designUsecase.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, invalidBody(err))
		return
	}

	designURL, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"designUrl": designURL})
}

func (h *DesignHandler) Proxy(c *gin.Context) {
	var req designUsecase.ProxyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, invalidBody(err))
		return
	}

	image, err := h.service.Proxy(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, image.Data)
}

func (h *DesignHandler) respondError(c *gin.Context, err error) {
	status, message := classifyError(err)
	logError(c, status, err)
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
