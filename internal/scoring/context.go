// Package scoring implements the lead scoring engine: a pure, deterministic
// model that grades a lead against a campaign's target audience definition
// (niche, personas, industry fit table, target countries) and produces an
// auditable per-component breakdown.
package scoring

import (
	"strings"

	"github.com/google/uuid"
)

// NicheContext describes the ideal customer profile for a campaign.
// Immutable once constructed; built from campaign configuration.
type NicheContext struct {
	ID           uuid.UUID
	Name         string
	Industries   []string
	CompanySizes []string
	JobTitles    []string
}

// PersonaContext is one addressable buyer persona within a niche.
type PersonaContext struct {
	ID              uuid.UUID
	Name            string
	JobTitles       []string
	SeniorityLevels []string
	CompanySizes    []string
}

// IndustryFitScore is one row of the campaign's industry fit table:
// how well a given industry matches the offering, 0-100.
type IndustryFitScore struct {
	Industry string
	FitScore int
}

// defaultIndustryFit is returned for industries absent from the fit table.
// Unknown industries are neither penalized nor rewarded.
const defaultIndustryFit = 50

// Context aggregates everything scoring is evaluated against. It is built
// once per campaign via NewContext and is read-only afterwards, so a single
// Context may be shared across concurrent scoring calls.
type Context struct {
	niche           NicheContext
	personas        []PersonaContext
	industryFit     []IndustryFitScore
	targetCountries []string

	// Lowercased lookup sets derived at construction time.
	titleSet     map[string]struct{}
	senioritySet map[string]struct{}
	sizeSet      map[string]struct{}
	countrySet   map[string]struct{}

	titles      []string
	seniorities []string
	sizes       []string
}

// NewContext builds an immutable scoring context from campaign configuration.
func NewContext(niche NicheContext, personas []PersonaContext, industryFit []IndustryFitScore, targetCountries []string) *Context {
	ctx := &Context{
		niche:           niche,
		personas:        append([]PersonaContext(nil), personas...),
		industryFit:     append([]IndustryFitScore(nil), industryFit...),
		targetCountries: append([]string(nil), targetCountries...),
		titleSet:        map[string]struct{}{},
		senioritySet:    map[string]struct{}{},
		sizeSet:         map[string]struct{}{},
		countrySet:      map[string]struct{}{},
	}

	addAll := func(set map[string]struct{}, keep *[]string, values []string) {
		for _, v := range values {
			key := strings.ToLower(strings.TrimSpace(v))
			if key == "" {
				continue
			}
			if _, ok := set[key]; ok {
				continue
			}
			set[key] = struct{}{}
			if keep != nil {
				*keep = append(*keep, v)
			}
		}
	}

	addAll(ctx.titleSet, &ctx.titles, niche.JobTitles)
	for _, p := range personas {
		addAll(ctx.titleSet, &ctx.titles, p.JobTitles)
		addAll(ctx.senioritySet, &ctx.seniorities, p.SeniorityLevels)
	}
	for _, p := range personas {
		addAll(ctx.sizeSet, &ctx.sizes, p.CompanySizes)
	}
	addAll(ctx.sizeSet, &ctx.sizes, niche.CompanySizes)
	addAll(ctx.countrySet, nil, targetCountries)

	return ctx
}

// Niche returns the campaign's niche definition.
func (c *Context) Niche() NicheContext { return c.niche }

// Personas returns the campaign's personas.
func (c *Context) Personas() []PersonaContext { return c.personas }

// AllTargetJobTitles returns the union of every persona's job titles plus
// the niche's job titles, case preserved as provided.
func (c *Context) AllTargetJobTitles() []string {
	return append([]string(nil), c.titles...)
}

// AllTargetSeniorities returns the union of every persona's seniority levels.
func (c *Context) AllTargetSeniorities() []string {
	return append([]string(nil), c.seniorities...)
}

// AllTargetCompanySizes returns the union of every persona's size buckets
// plus the niche's size buckets.
func (c *Context) AllTargetCompanySizes() []string {
	return append([]string(nil), c.sizes...)
}

// IndustryFit resolves the fit score (0-100) for a lead's industry.
// Lookup order: case-insensitive exact match, then case-insensitive
// substring match in either direction, then the neutral default of 50.
func (c *Context) IndustryFit(industry string) int {
	needle := strings.ToLower(strings.TrimSpace(industry))
	if needle == "" {
		return defaultIndustryFit
	}

	for _, row := range c.industryFit {
		if strings.ToLower(strings.TrimSpace(row.Industry)) == needle {
			return row.FitScore
		}
	}
	for _, row := range c.industryFit {
		key := strings.ToLower(strings.TrimSpace(row.Industry))
		if key == "" {
			continue
		}
		if strings.Contains(needle, key) || strings.Contains(key, needle) {
			return row.FitScore
		}
	}
	return defaultIndustryFit
}

func (c *Context) hasTitle(title string) bool {
	_, ok := c.titleSet[strings.ToLower(strings.TrimSpace(title))]
	return ok
}

func (c *Context) hasSeniority(level string) bool {
	_, ok := c.senioritySet[strings.ToLower(strings.TrimSpace(level))]
	return ok
}

func (c *Context) hasCompanySize(bucket string) bool {
	_, ok := c.sizeSet[strings.ToLower(bucket)]
	return ok
}

func (c *Context) hasCountry(country string) bool {
	_, ok := c.countrySet[strings.ToLower(strings.TrimSpace(country))]
	return ok
}
