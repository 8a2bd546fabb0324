package transport

import (
	"time"

	"leadscore_backend/internal/campaigns/repository"
	"leadscore_backend/internal/scoring"

	"github.com/google/uuid"
)

// Requests

type ScoreLeadsRequest struct {
	// LeadIDs limits scoring to specific leads; empty means every lead in
	// the campaign.
	LeadIDs []uuid.UUID `json:"leadIds" validate:"omitempty,max=500"`
}

type NicheRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Industries   []string `json:"industries" validate:"omitempty,dive,min=1,max=100"`
	CompanySizes []string `json:"companySizes" validate:"omitempty,dive,min=1,max=50"`
	JobTitles    []string `json:"jobTitles" validate:"omitempty,dive,min=1,max=100"`
}

type PersonaRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=200"`
	JobTitles       []string `json:"jobTitles" validate:"omitempty,dive,min=1,max=100"`
	SeniorityLevels []string `json:"seniorityLevels" validate:"omitempty,dive,min=1,max=50"`
	CompanySizes    []string `json:"companySizes" validate:"omitempty,dive,min=1,max=50"`
}

type IndustryFitRequest struct {
	Industry string `json:"industry" validate:"required,min=1,max=100"`
	FitScore int    `json:"fitScore" validate:"min=0,max=100"`
}

type TargetingRequest struct {
	Niche           NicheRequest         `json:"niche" validate:"required"`
	Personas        []PersonaRequest     `json:"personas" validate:"omitempty,max=20,dive"`
	IndustryFit     []IndustryFitRequest `json:"industryFit" validate:"omitempty,max=100,dive"`
	TargetCountries []string             `json:"targetCountries" validate:"omitempty,dive,min=1,max=100"`
}

type PreviewLeadRequest struct {
	ID              *uuid.UUID `json:"id,omitempty"`
	Title           *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Seniority       *string    `json:"seniority,omitempty" validate:"omitempty,max=50"`
	CompanyName     *string    `json:"companyName,omitempty" validate:"omitempty,max=200"`
	CompanySize     *string    `json:"companySize,omitempty" validate:"omitempty,max=50"`
	CompanyIndustry *string    `json:"companyIndustry,omitempty" validate:"omitempty,max=100"`
	Country         *string    `json:"country,omitempty" validate:"omitempty,max=100"`
	Email           *string    `json:"email,omitempty" validate:"omitempty,max=320"`
	Phone           *string    `json:"phone,omitempty" validate:"omitempty,max=50"`
	CompanyDomain   *string    `json:"companyDomain,omitempty" validate:"omitempty,max=255"`
	LinkedInURL     *string    `json:"linkedinUrl,omitempty" validate:"omitempty,max=500"`
}

type PreviewRequest struct {
	Targeting TargetingRequest     `json:"targeting" validate:"required"`
	Leads     []PreviewLeadRequest `json:"leads" validate:"required,min=1,max=500,dive"`
}

// Responses

type ScoreResultResponse struct {
	LeadID      uuid.UUID         `json:"leadId"`
	TotalScore  int               `json:"totalScore"`
	Tier        string            `json:"tier"`
	Breakdown   scoring.Breakdown `json:"breakdown"`
	PersonaTags []string          `json:"personaTags"`
}

type ScoreLeadsResponse struct {
	CampaignID uuid.UUID             `json:"campaignId"`
	Results    []ScoreResultResponse `json:"results"`
}

type RescoreResponse struct {
	CampaignID uuid.UUID `json:"campaignId"`
	JobID      uuid.UUID `json:"jobId"`
}

type LeadScoreResponse struct {
	LeadID      uuid.UUID `json:"leadId"`
	Score       int       `json:"score"`
	Tier        string    `json:"tier"`
	Breakdown   any       `json:"breakdown"`
	PersonaTags []string  `json:"personaTags"`
	ScoredAt    time.Time `json:"scoredAt"`
}

// Mapping

// ToScoreResults maps engine results to the wire format.
func ToScoreResults(results []scoring.Result) []ScoreResultResponse {
	out := make([]ScoreResultResponse, len(results))
	for i, r := range results {
		out[i] = ScoreResultResponse{
			LeadID:      r.LeadID,
			TotalScore:  r.TotalScore,
			Tier:        string(r.Tier),
			Breakdown:   r.Breakdown,
			PersonaTags: r.PersonaTags,
		}
	}
	return out
}

// ToTargeting maps a targeting request to the repository model.
func ToTargeting(req TargetingRequest) repository.Targeting {
	personas := make([]scoring.PersonaContext, len(req.Personas))
	for i, p := range req.Personas {
		personas[i] = scoring.PersonaContext{
			Name:            p.Name,
			JobTitles:       p.JobTitles,
			SeniorityLevels: p.SeniorityLevels,
			CompanySizes:    p.CompanySizes,
		}
	}
	fit := make([]scoring.IndustryFitScore, len(req.IndustryFit))
	for i, row := range req.IndustryFit {
		fit[i] = scoring.IndustryFitScore{Industry: row.Industry, FitScore: row.FitScore}
	}
	return repository.Targeting{
		Niche: scoring.NicheContext{
			Name:         req.Niche.Name,
			Industries:   req.Niche.Industries,
			CompanySizes: req.Niche.CompanySizes,
			JobTitles:    req.Niche.JobTitles,
		},
		Personas:        personas,
		IndustryFit:     fit,
		TargetCountries: req.TargetCountries,
	}
}

// ToLeads maps preview leads to repository rows, generating IDs where absent.
func ToLeads(reqs []PreviewLeadRequest) []repository.Lead {
	leads := make([]repository.Lead, len(reqs))
	for i, req := range reqs {
		id := uuid.New()
		if req.ID != nil {
			id = *req.ID
		}
		leads[i] = repository.Lead{
			ID:              id,
			Title:           req.Title,
			Seniority:       req.Seniority,
			CompanyName:     req.CompanyName,
			CompanySize:     req.CompanySize,
			CompanyIndustry: req.CompanyIndustry,
			Country:         req.Country,
			Email:           req.Email,
			Phone:           req.Phone,
			CompanyDomain:   req.CompanyDomain,
			LinkedInURL:     req.LinkedInURL,
		}
	}
	return leads
}
