// Package exports provides the document export module: quote downloads in
// PDF, XLS and XML form.
package exports

import (
	"quotedesk/internal/exports/handler"
	"quotedesk/internal/exports/render"
	apphttp "quotedesk/internal/http"
	"quotedesk/internal/quotes/service"
	"quotedesk/internal/storage"
	"quotedesk/platform/logger"
)

// ModuleDeps carries everything the export module needs. Artifact may be nil
// when object storage is not configured; downloads then render on demand.
type ModuleDeps struct {
	Quotes   *service.Service
	Logger   *logger.Logger
	Artifact storage.Service
	Bucket   string
	BaseURL  string
}

// Module is the document export module implementing http.Module.
type Module struct {
	handler *handler.Handler
	pdf     *render.PDFRenderer
}

// NewModule creates and initializes the exports module.
func NewModule(deps ModuleDeps) *Module {
	pdf := render.NewPDFRenderer(deps.BaseURL)
	h := handler.New(deps.Quotes, pdf, deps.Logger, deps.Artifact, deps.Bucket)
	return &Module{handler: h, pdf: pdf}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "exports"
}

// PDFRenderer returns the shared renderer, used by the background
// prerender worker.
func (m *Module) PDFRenderer() *render.PDFRenderer {
	return m.pdf
}

// RegisterRoutes mounts export routes under the quotes resource.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/quotes"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
