package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// GET /slots?mode=collection|delivery
// --------------------------------------------------
func (h *Handler) GetSlots(c *gin.Context) {
	mode, ok := ParseMode(c.DefaultQuery("mode", string(ModeCollection)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be collection or delivery"})
		return
	}

	slots, err := h.service.SlotsFor(c.Request.Context(), mode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load slots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":  mode,
		"slots": Labels(slots),
	})
}
