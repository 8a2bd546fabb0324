package repository

import (
	"context"

	"leadscore_backend/internal/scoring"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for campaign targeting, leads and
// lead scores.
type Repository interface {
	// Targeting
	GetTargeting(ctx context.Context, campaignID uuid.UUID) (Targeting, error)
	UpsertTargeting(ctx context.Context, campaignID uuid.UUID, targeting Targeting) error

	// Leads
	GetLead(ctx context.Context, campaignID, leadID uuid.UUID) (Lead, error)
	ListLeadsByIDs(ctx context.Context, campaignID uuid.UUID, ids []uuid.UUID) ([]Lead, error)
	ListLeadsPage(ctx context.Context, campaignID uuid.UUID, offset, limit int) ([]Lead, error)
	CountLeads(ctx context.Context, campaignID uuid.UUID) (int, error)

	// Scores
	SaveScores(ctx context.Context, campaignID uuid.UUID, results []scoring.Result) error
	GetScore(ctx context.Context, leadID uuid.UUID) (LeadScore, error)
}
