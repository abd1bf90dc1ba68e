// Package quotes provides the quote workflow bounded context module.
package quotes

import (
	"quotedesk/internal/events"
	apphttp "quotedesk/internal/http"
	"quotedesk/internal/quotes/handler"
	"quotedesk/internal/quotes/repository"
	"quotedesk/internal/quotes/service"
	"quotedesk/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the quotes bounded context module implementing http.Module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
	repo          repository.Repository
}

// NewModule creates and initializes the quotes module.
func NewModule(pool *pgxpool.Pool, eventBus *events.InMemoryBus, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	svc.SetEventBus(eventBus)

	return &Module{
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublic(svc),
		service:       svc,
		repo:          repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts quote routes on the provided router context. Owner
// routes require authentication; the token view is public.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/quotes"))
	m.publicHandler.RegisterRoutes(ctx.V1.Group("/public/quotes"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
