package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadscore_backend/internal/scoring"
	"leadscore_backend/platform/apperr"
)

const (
	campaignNotFoundMessage = "campaign not found"
	leadNotFoundMessage     = "lead not found"
	scoreNotFoundMessage    = "lead has not been scored"
)

// Repo implements the campaigns repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new campaigns repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetTargeting loads the campaign's niche, personas, industry fit table and
// target countries in one call.
func (r *Repo) GetTargeting(ctx context.Context, campaignID uuid.UUID) (Targeting, error) {
	var t Targeting

	query := `
		SELECT c.name, c.target_countries,
			n.id, n.name, n.industries, n.company_sizes, n.job_titles
		FROM campaigns c
		JOIN niches n ON n.campaign_id = c.id
		WHERE c.id = $1`

	if err := r.pool.QueryRow(ctx, query, campaignID).Scan(
		&t.CampaignName, &t.TargetCountries,
		&t.Niche.ID, &t.Niche.Name, &t.Niche.Industries, &t.Niche.CompanySizes, &t.Niche.JobTitles,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Targeting{}, apperr.NotFound(campaignNotFoundMessage)
		}
		return Targeting{}, fmt.Errorf("get targeting: %w", err)
	}

	personas, err := r.listPersonas(ctx, t.Niche.ID)
	if err != nil {
		return Targeting{}, err
	}
	t.Personas = personas

	fit, err := r.listIndustryFit(ctx, campaignID)
	if err != nil {
		return Targeting{}, err
	}
	t.IndustryFit = fit

	return t, nil
}

func (r *Repo) listPersonas(ctx context.Context, nicheID uuid.UUID) ([]scoring.PersonaContext, error) {
	query := `
		SELECT id, name, job_titles, seniority_levels, company_sizes
		FROM personas
		WHERE niche_id = $1
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, nicheID)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	defer rows.Close()

	var personas []scoring.PersonaContext
	for rows.Next() {
		var p scoring.PersonaContext
		if err := rows.Scan(&p.ID, &p.Name, &p.JobTitles, &p.SeniorityLevels, &p.CompanySizes); err != nil {
			return nil, fmt.Errorf("scan persona: %w", err)
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}

func (r *Repo) listIndustryFit(ctx context.Context, campaignID uuid.UUID) ([]scoring.IndustryFitScore, error) {
	query := `
		SELECT industry, fit_score
		FROM industry_fit_scores
		WHERE campaign_id = $1
		ORDER BY industry`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list industry fit: %w", err)
	}
	defer rows.Close()

	var fit []scoring.IndustryFitScore
	for rows.Next() {
		var row scoring.IndustryFitScore
		if err := rows.Scan(&row.Industry, &row.FitScore); err != nil {
			return nil, fmt.Errorf("scan industry fit: %w", err)
		}
		fit = append(fit, row)
	}
	return fit, rows.Err()
}

// UpsertTargeting replaces the campaign's targeting definition in a single
// transaction.
func (r *Repo) UpsertTargeting(ctx context.Context, campaignID uuid.UUID, targeting Targeting) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert targeting: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO campaigns (id, name, target_countries)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = $2, target_countries = $3, updated_at = now()`,
		campaignID, targeting.CampaignName, targeting.TargetCountries,
	); err != nil {
		return fmt.Errorf("upsert campaign: %w", err)
	}

	nicheID := targeting.Niche.ID
	if nicheID == uuid.Nil {
		nicheID = uuid.New()
	}
	if _, err := tx.Exec(ctx, `DELETE FROM niches WHERE campaign_id = $1`, campaignID); err != nil {
		return fmt.Errorf("clear niche: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO niches (id, campaign_id, name, industries, company_sizes, job_titles)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		nicheID, campaignID, targeting.Niche.Name,
		targeting.Niche.Industries, targeting.Niche.CompanySizes, targeting.Niche.JobTitles,
	); err != nil {
		return fmt.Errorf("insert niche: %w", err)
	}

	for _, p := range targeting.Personas {
		personaID := p.ID
		if personaID == uuid.Nil {
			personaID = uuid.New()
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO personas (id, niche_id, name, job_titles, seniority_levels, company_sizes)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			personaID, nicheID, p.Name, p.JobTitles, p.SeniorityLevels, p.CompanySizes,
		); err != nil {
			return fmt.Errorf("insert persona: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM industry_fit_scores WHERE campaign_id = $1`, campaignID); err != nil {
		return fmt.Errorf("clear industry fit: %w", err)
	}
	for _, row := range targeting.IndustryFit {
		if _, err := tx.Exec(ctx, `
			INSERT INTO industry_fit_scores (campaign_id, industry, fit_score)
			VALUES ($1, $2, $3)`,
			campaignID, row.Industry, row.FitScore,
		); err != nil {
			return fmt.Errorf("insert industry fit: %w", err)
		}
	}

	return tx.Commit(ctx)
}

const leadColumns = `
	id, campaign_id, title, seniority, company_name, company_size,
	company_industry, country, email, phone, company_domain, linkedin_url,
	created_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.CampaignID, &lead.Title, &lead.Seniority,
		&lead.CompanyName, &lead.CompanySize, &lead.CompanyIndustry,
		&lead.Country, &lead.Email, &lead.Phone, &lead.CompanyDomain,
		&lead.LinkedInURL, &lead.CreatedAt,
	)
	return lead, err
}

// GetLead retrieves one lead within a campaign.
func (r *Repo) GetLead(ctx context.Context, campaignID, leadID uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 AND campaign_id = $2`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, leadID, campaignID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

// ListLeadsByIDs retrieves the given leads within a campaign. Unknown IDs
// are silently skipped.
func (r *Repo) ListLeadsByIDs(ctx context.Context, campaignID uuid.UUID, ids []uuid.UUID) ([]Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + leadColumns + ` FROM leads WHERE campaign_id = $1 AND id = ANY($2)`

	rows, err := r.pool.Query(ctx, query, campaignID, ids)
	if err != nil {
		return nil, fmt.Errorf("list leads by ids: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

// ListLeadsPage retrieves one page of campaign leads in stable creation order.
func (r *Repo) ListLeadsPage(ctx context.Context, campaignID uuid.UUID, offset, limit int) ([]Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM leads
		WHERE campaign_id = $1
		ORDER BY created_at, id
		OFFSET $2 LIMIT $3`

	rows, err := r.pool.Query(ctx, query, campaignID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads page: %w", err)
	}
	defer rows.Close()

	return collectLeads(rows)
}

func collectLeads(rows pgx.Rows) ([]Lead, error) {
	var leads []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// CountLeads returns the number of leads in a campaign.
func (r *Repo) CountLeads(ctx context.Context, campaignID uuid.UUID) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads WHERE campaign_id = $1`, campaignID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

// SaveScores persists scoring results for a batch of leads in one round trip.
func (r *Repo) SaveScores(ctx context.Context, campaignID uuid.UUID, results []scoring.Result) error {
	if len(results) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, result := range results {
		breakdownJSON, err := json.Marshal(result.Breakdown)
		if err != nil {
			return fmt.Errorf("marshal breakdown for lead %s: %w", result.LeadID, err)
		}
		batch.Queue(`
			UPDATE leads
			SET lead_score = $3, lead_tier = $4, score_breakdown = $5,
				persona_tags = $6, scored_at = now()
			WHERE id = $1 AND campaign_id = $2`,
			result.LeadID, campaignID, result.TotalScore, string(result.Tier),
			breakdownJSON, result.PersonaTags,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range results {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("save scores: %w", err)
		}
	}
	return nil
}

// GetScore reads the persisted scoring outcome for one lead.
func (r *Repo) GetScore(ctx context.Context, leadID uuid.UUID) (LeadScore, error) {
	query := `
		SELECT id, lead_score, lead_tier, score_breakdown, persona_tags, scored_at
		FROM leads
		WHERE id = $1 AND lead_score IS NOT NULL`

	var score LeadScore
	if err := r.pool.QueryRow(ctx, query, leadID).Scan(
		&score.LeadID, &score.Score, &score.Tier,
		&score.BreakdownJSON, &score.PersonaTags, &score.ScoredAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LeadScore{}, apperr.NotFound(scoreNotFoundMessage)
		}
		return LeadScore{}, fmt.Errorf("get score: %w", err)
	}
	return score, nil
}
