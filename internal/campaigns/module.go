// Package campaigns provides the campaign scoring bounded context module.
package campaigns

import (
	"leadscore_backend/internal/campaigns/handler"
	"leadscore_backend/internal/campaigns/repository"
	"leadscore_backend/internal/campaigns/service"
	apphttp "leadscore_backend/internal/http"
	"leadscore_backend/platform/logger"
	"leadscore_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the campaign scoring bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the campaigns module. enqueuer and
// progress come from the scheduler package and may be nil when Redis is not
// configured.
func NewModule(pool *pgxpool.Pool, enqueuer service.RescoreEnqueuer, progress service.ProgressReader, val *validator.Validator, log *logger.Logger, pageSize int) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, enqueuer, progress, log, pageSize)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "campaigns"
}

// Service returns the service layer for external use (worker, CLIs).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts campaign scoring routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/campaigns/:id/score", m.handler.ScoreLeads)
	ctx.Protected.POST("/campaigns/:id/rescore", m.handler.Rescore)
	ctx.Protected.GET("/scoring/jobs/:id", m.handler.JobProgress)
	ctx.Protected.POST("/scoring/preview", m.handler.Preview)
	ctx.Protected.GET("/leads/:id/score", m.handler.LeadScore)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
