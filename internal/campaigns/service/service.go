// Package service implements campaign scoring use cases on top of the pure
// scoring engine and the campaigns repository.
package service

import (
	"context"
	"strings"

	"leadscore_backend/internal/campaigns/repository"
	"leadscore_backend/internal/scoring"
	"leadscore_backend/platform/apperr"
	"leadscore_backend/platform/logger"
	"leadscore_backend/platform/phone"

	"github.com/google/uuid"
)

// RescoreEnqueuer schedules an async full-campaign rescore.
type RescoreEnqueuer interface {
	EnqueueRescore(ctx context.Context, campaignID, jobID uuid.UUID) error
}

// ProgressReader reports the state of an async rescore job.
type ProgressReader interface {
	GetProgress(ctx context.Context, jobID uuid.UUID) (JobProgress, error)
}

// JobProgress is the observable state of one rescore job.
type JobProgress struct {
	JobID  uuid.UUID `json:"jobId"`
	State  string    `json:"state"`
	Total  int       `json:"total"`
	Scored int       `json:"scored"`
}

// Rescore job states.
const (
	JobStateRunning = "running"
	JobStateDone    = "done"
	JobStateFailed  = "failed"
)

// Service orchestrates lead scoring for campaigns.
type Service struct {
	repo     repository.Repository
	enqueuer RescoreEnqueuer
	progress ProgressReader
	log      *logger.Logger
	pageSize int
}

// New creates a campaigns service. enqueuer and progress may be nil when the
// async pipeline is not configured; the sync endpoints keep working.
func New(repo repository.Repository, enqueuer RescoreEnqueuer, progress ProgressReader, log *logger.Logger, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = 200
	}
	return &Service{
		repo:     repo,
		enqueuer: enqueuer,
		progress: progress,
		log:      log,
		pageSize: pageSize,
	}
}

// BuildContext assembles the engine context for a campaign.
func (s *Service) BuildContext(ctx context.Context, campaignID uuid.UUID) (*scoring.Context, error) {
	targeting, err := s.repo.GetTargeting(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return scoring.NewContext(targeting.Niche, targeting.Personas, targeting.IndustryFit, targeting.TargetCountries), nil
}

// ScoreLeads scores the given leads (all campaign leads when ids is empty),
// persists the results and returns them in input order.
func (s *Service) ScoreLeads(ctx context.Context, campaignID uuid.UUID, ids []uuid.UUID) ([]scoring.Result, error) {
	scoringCtx, err := s.BuildContext(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	model := scoring.NewModel(scoringCtx)

	var leads []repository.Lead
	if len(ids) > 0 {
		leads, err = s.repo.ListLeadsByIDs(ctx, campaignID, ids)
	} else {
		leads, err = s.allLeads(ctx, campaignID)
	}
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, apperr.NotFound("no leads to score")
	}

	results := model.ScoreBatch(leadRecords(leads))
	if err := s.repo.SaveScores(ctx, campaignID, results); err != nil {
		return nil, err
	}

	s.logRun(campaignID, results)
	return results, nil
}

// RescoreCampaign pages through every lead in the campaign, scoring and
// persisting page by page. The report callback receives cumulative progress
// after each persisted page.
func (s *Service) RescoreCampaign(ctx context.Context, campaignID uuid.UUID, report func(scored, total int)) (int, error) {
	scoringCtx, err := s.BuildContext(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	model := scoring.NewModel(scoringCtx)

	total, err := s.repo.CountLeads(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	if report != nil {
		report(0, total)
	}

	scored := 0
	for offset := 0; ; offset += s.pageSize {
		leads, err := s.repo.ListLeadsPage(ctx, campaignID, offset, s.pageSize)
		if err != nil {
			return scored, err
		}
		if len(leads) == 0 {
			break
		}

		results := model.ScoreBatch(leadRecords(leads))
		if err := s.repo.SaveScores(ctx, campaignID, results); err != nil {
			return scored, err
		}

		scored += len(results)
		if report != nil {
			report(scored, total)
		}
		if len(leads) < s.pageSize {
			break
		}
	}

	s.log.Info("campaign rescored", "campaign_id", campaignID.String(), "leads", scored)
	return scored, nil
}

// EnqueueRescore schedules an async rescore and returns the job ID.
func (s *Service) EnqueueRescore(ctx context.Context, campaignID uuid.UUID) (uuid.UUID, error) {
	if s.enqueuer == nil {
		return uuid.Nil, apperr.Internal("async rescoring is not configured")
	}
	// Fail fast on unknown campaigns before enqueueing.
	if _, err := s.repo.GetTargeting(ctx, campaignID); err != nil {
		return uuid.Nil, err
	}

	jobID := uuid.New()
	if err := s.enqueuer.EnqueueRescore(ctx, campaignID, jobID); err != nil {
		return uuid.Nil, apperr.Wrap(apperr.KindInternal, "failed to enqueue rescore", err)
	}
	return jobID, nil
}

// GetJobProgress reports the state of an async rescore job.
func (s *Service) GetJobProgress(ctx context.Context, jobID uuid.UUID) (JobProgress, error) {
	if s.progress == nil {
		return JobProgress{}, apperr.Internal("async rescoring is not configured")
	}
	return s.progress.GetProgress(ctx, jobID)
}

// Preview scores inline leads against inline targeting without touching
// persistence.
func (s *Service) Preview(targeting repository.Targeting, leads []repository.Lead) []scoring.Result {
	scoringCtx := scoring.NewContext(targeting.Niche, targeting.Personas, targeting.IndustryFit, targeting.TargetCountries)
	return scoring.NewModel(scoringCtx).ScoreBatch(leadRecords(leads))
}

// GetLeadScore reads the persisted score for one lead.
func (s *Service) GetLeadScore(ctx context.Context, leadID uuid.UUID) (repository.LeadScore, error) {
	return s.repo.GetScore(ctx, leadID)
}

// ImportTargeting replaces a campaign's targeting definition.
func (s *Service) ImportTargeting(ctx context.Context, campaignID uuid.UUID, targeting repository.Targeting) error {
	if strings.TrimSpace(targeting.Niche.Name) == "" {
		return apperr.Validation("niche name is required")
	}
	return s.repo.UpsertTargeting(ctx, campaignID, targeting)
}

func (s *Service) allLeads(ctx context.Context, campaignID uuid.UUID) ([]repository.Lead, error) {
	var all []repository.Lead
	for offset := 0; ; offset += s.pageSize {
		page, err := s.repo.ListLeadsPage(ctx, campaignID, offset, s.pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < s.pageSize {
			return all, nil
		}
	}
}

func (s *Service) logRun(campaignID uuid.UUID, results []scoring.Result) {
	if s.log == nil {
		return
	}
	tiers := map[string]int{}
	for _, r := range results {
		tiers[string(r.Tier)]++
	}
	s.log.ScoringRun(campaignID.String(), len(results), tiers)
}

// leadRecords maps stored lead rows to engine inputs. Phones that fail
// E.164 normalization are dropped so invalid numbers do not inflate the
// data-completeness component.
func leadRecords(leads []repository.Lead) []scoring.LeadScoreRecord {
	records := make([]scoring.LeadScoreRecord, len(leads))
	for i, lead := range leads {
		records[i] = LeadRecord(lead)
	}
	return records
}

// LeadRecord maps one stored lead row to an engine input.
func LeadRecord(lead repository.Lead) scoring.LeadScoreRecord {
	record := scoring.LeadScoreRecord{
		ID:              lead.ID,
		Title:           lead.Title,
		Seniority:       lead.Seniority,
		CompanyName:     lead.CompanyName,
		CompanySize:     lead.CompanySize,
		CompanyIndustry: lead.CompanyIndustry,
		Country:         lead.Country,
		Email:           lead.Email,
		CompanyDomain:   lead.CompanyDomain,
		LinkedInURL:     lead.LinkedInURL,
	}
	if lead.Phone != nil {
		if normalized, ok := phone.NormalizeE164(*lead.Phone); ok {
			record.Phone = &normalized
		}
	}
	return record
}
