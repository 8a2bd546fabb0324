package repository

import (
	"time"

	"leadscore_backend/internal/scoring"

	"github.com/google/uuid"
)

// Targeting bundles everything the scoring engine's context needs for one
// campaign: the niche definition, its personas, the industry fit table and
// the in-territory country list.
type Targeting struct {
	CampaignName    string
	Niche           scoring.NicheContext
	Personas        []scoring.PersonaContext
	IndustryFit     []scoring.IndustryFitScore
	TargetCountries []string
}

// Lead is one prospect row as stored for a campaign. Optional columns map
// to nil pointers.
type Lead struct {
	ID              uuid.UUID
	CampaignID      uuid.UUID
	Title           *string
	Seniority       *string
	CompanyName     *string
	CompanySize     *string
	CompanyIndustry *string
	Country         *string
	Email           *string
	Phone           *string
	CompanyDomain   *string
	LinkedInURL     *string
	CreatedAt       time.Time
}

// LeadScore is the persisted scoring outcome for one lead.
type LeadScore struct {
	LeadID        uuid.UUID
	Score         int
	Tier          string
	BreakdownJSON []byte
	PersonaTags   []string
	ScoredAt      time.Time
}
