// Package catalog provides the product catalog bounded context module.
package catalog

import (
	"quotedesk/internal/catalog/handler"
	"quotedesk/internal/catalog/repository"
	"quotedesk/internal/catalog/service"
	"quotedesk/internal/catalog/units"
	"quotedesk/internal/events"
	apphttp "quotedesk/internal/http"
	"quotedesk/platform/validator"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, eventBus *events.InMemoryBus, val *validator.Validator) *Module {
	// "uom" backs the unitOfMeasure validation tag used by the transport DTOs.
	_ = val.RegisterValidation("uom", func(fl playgroundvalidator.FieldLevel) bool {
		return units.IsValid(fl.Field().String())
	})

	repo := repository.New(pool)
	svc := service.New(repo)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/products"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
