package handler

import (
	"fmt"
	"log"
	"net/http"

	"founderhub/internal/model"
	"founderhub/internal/service"

	"github.com/gin-gonic/gin"
)

// IdeationHandler serves catalog-based idea generation
type IdeationHandler struct {
	service service.IdeationService
}

// NewIdeationHandler creates a new IdeationHandler
func NewIdeationHandler(s service.IdeationService) *IdeationHandler {
	return &IdeationHandler{service: s}
}

func (h *IdeationHandler) Generate(c *gin.Context) {
	var req model.GenerateIdeasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req.UserInput)
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("ERROR: ideation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"ideas":          result.Ideas,
		"marketAnalysis": result.MarketAnalysis,
		"message":        fmt.Sprintf("Generated %d startup ideas based on your input about \"%s\"", len(result.Ideas), req.UserInput),
	})
}

// RegisterIdeationRoutes registers ideation routes
func (h *IdeationHandler) RegisterIdeationRoutes(rg *gin.RouterGroup) {
	rg.POST("/ideation/generate", h.Generate)
}
