package handler

import (
	"fmt"
	"io"
	"net/http"

	"quotedesk/internal/exports/render"
	"quotedesk/internal/quotes/service"
	"quotedesk/internal/storage"
	"quotedesk/platform/httpkit"
	"quotedesk/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidQuoteID = "invalid quote id"

// Handler serves quote document downloads in PDF, XLS and XML form.
type Handler struct {
	quotes   *service.Service
	pdf      *render.PDFRenderer
	log      *logger.Logger
	artifact storage.Service
	bucket   string
}

// New creates a new exports handler. artifact may be nil; prerendered PDFs
// are then skipped and every download renders on the fly.
func New(quotes *service.Service, pdf *render.PDFRenderer, log *logger.Logger, artifact storage.Service, bucket string) *Handler {
	return &Handler{quotes: quotes, pdf: pdf, log: log, artifact: artifact, bucket: bucket}
}

// RegisterRoutes registers the export routes under the quotes resource.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/export/pdf", h.ExportPDF)
	rg.GET("/:id/export/xls", h.ExportXLS)
	rg.GET("/:id/export/xml", h.ExportXML)
}

func (h *Handler) ExportPDF(c *gin.Context) {
	id, ownerID, ok := h.resolveRequest(c)
	if !ok {
		return
	}

	quote, items, err := h.quotes.ResolvedQuote(c.Request.Context(), id, ownerID)
	if httpkit.HandleError(c, err) {
		return
	}

	// Serve the prerendered artifact when the background worker has one.
	// Ownership was just confirmed by the resolved load above.
	if h.artifact != nil && h.servePrerendered(c, id) {
		return
	}

	data, err := h.pdf.Render(quote, items)
	if httpkit.HandleError(c, err) {
		return
	}

	serveDocument(c, data, "application/pdf", fmt.Sprintf("quote-%s.pdf", id))
}

func (h *Handler) ExportXLS(c *gin.Context) {
	id, ownerID, ok := h.resolveRequest(c)
	if !ok {
		return
	}

	quote, items, err := h.quotes.ResolvedQuote(c.Request.Context(), id, ownerID)
	if httpkit.HandleError(c, err) {
		return
	}

	data, err := render.RenderXLS(quote, items)
	if httpkit.HandleError(c, err) {
		return
	}

	serveDocument(c, data, "application/vnd.ms-excel", fmt.Sprintf("quote-%s.xls", id))
}

func (h *Handler) ExportXML(c *gin.Context) {
	id, ownerID, ok := h.resolveRequest(c)
	if !ok {
		return
	}

	quote, items, err := h.quotes.ResolvedQuote(c.Request.Context(), id, ownerID)
	if httpkit.HandleError(c, err) {
		return
	}

	data, err := render.RenderXML(quote, items)
	if httpkit.HandleError(c, err) {
		return
	}

	serveDocument(c, data, "application/xml", fmt.Sprintf("quote-%s.xml", id))
}

// servePrerendered streams the stored PDF if one exists. Callers must have
// confirmed quote ownership first; artifact keys carry no owner check.
func (h *Handler) servePrerendered(c *gin.Context, id uuid.UUID) bool {
	key := render.ArtifactKey(id)
	exists, err := h.artifact.StatObject(c.Request.Context(), h.bucket, key)
	if err != nil || !exists {
		return false
	}

	obj, err := h.artifact.GetObject(c.Request.Context(), h.bucket, key)
	if err != nil {
		return false
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		h.log.Warn("failed to read prerendered quote pdf", "quoteId", id, "error", err)
		return false
	}

	serveDocument(c, data, "application/pdf", fmt.Sprintf("quote-%s.pdf", id))
	return true
}

func (h *Handler) resolveRequest(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidQuoteID, nil)
		return uuid.UUID{}, uuid.UUID{}, false
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.UUID{}, uuid.UUID{}, false
	}
	return id, identity.UserID(), true
}

func serveDocument(c *gin.Context, data []byte, contentType, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
