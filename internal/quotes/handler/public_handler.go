package handler

import (
	"quotedesk/internal/quotes/service"
	"quotedesk/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated customer view of a quote. The
// share token in the URL is the only credential.
type PublicHandler struct {
	svc *service.Service
}

// NewPublic creates a new public quote handler.
func NewPublic(svc *service.Service) *PublicHandler {
	return &PublicHandler{svc: svc}
}

// RegisterRoutes registers the public quote routes.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:token", h.View)
}

func (h *PublicHandler) View(c *gin.Context) {
	result, err := h.svc.PublicView(c.Request.Context(), c.Param("token"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
