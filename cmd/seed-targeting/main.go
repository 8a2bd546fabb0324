// Command seed-targeting imports a campaign targeting definition (niche,
// personas, industry fit table, target countries) from a YAML file.
package main

import (
	"context"
	"flag"
	"os"

	"leadscore_backend/internal/campaigns"
	"leadscore_backend/internal/campaigns/repository"
	"leadscore_backend/internal/scoring"
	"leadscore_backend/platform/config"
	"leadscore_backend/platform/db"
	"leadscore_backend/platform/logger"
	"leadscore_backend/platform/validator"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type targetingFile struct {
	CampaignName string `yaml:"campaign_name"`
	Niche        struct {
		Name         string   `yaml:"name"`
		Industries   []string `yaml:"industries"`
		CompanySizes []string `yaml:"company_sizes"`
		JobTitles    []string `yaml:"job_titles"`
	} `yaml:"niche"`
	Personas []struct {
		Name            string   `yaml:"name"`
		JobTitles       []string `yaml:"job_titles"`
		SeniorityLevels []string `yaml:"seniority_levels"`
		CompanySizes    []string `yaml:"company_sizes"`
	} `yaml:"personas"`
	IndustryFit []struct {
		Industry string `yaml:"industry"`
		FitScore int    `yaml:"fit_score"`
	} `yaml:"industry_fit"`
	TargetCountries []string `yaml:"target_countries"`
}

func main() {
	var (
		filePath   = flag.String("file", "targeting.yaml", "path to the targeting YAML file")
		campaignID = flag.String("campaign", "", "campaign UUID (generated when empty)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting targeting import", "file", *filePath)

	id := uuid.New()
	if *campaignID != "" {
		parsed, err := uuid.Parse(*campaignID)
		if err != nil {
			log.Error("invalid campaign id", "campaign_id", *campaignID, "error", err)
			panic("invalid campaign id: " + err.Error())
		}
		id = parsed
	}

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Error("failed to read targeting file", "error", err)
		panic("failed to read targeting file: " + err.Error())
	}

	var doc targetingFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		log.Error("failed to parse targeting file", "error", err)
		panic("failed to parse targeting file: " + err.Error())
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	module := campaigns.NewModule(pool, nil, nil, validator.New(), log, cfg.ScoringPageSize)

	if err := module.Service().ImportTargeting(ctx, id, toTargeting(doc)); err != nil {
		log.Error("failed to import targeting", "campaign_id", id.String(), "error", err)
		panic("failed to import targeting: " + err.Error())
	}

	log.Info("targeting imported",
		"campaign_id", id.String(),
		"personas", len(doc.Personas),
		"industry_fit_rows", len(doc.IndustryFit),
	)
}

func toTargeting(doc targetingFile) repository.Targeting {
	targeting := repository.Targeting{
		CampaignName: doc.CampaignName,
		Niche: scoring.NicheContext{
			Name:         doc.Niche.Name,
			Industries:   doc.Niche.Industries,
			CompanySizes: doc.Niche.CompanySizes,
			JobTitles:    doc.Niche.JobTitles,
		},
		TargetCountries: doc.TargetCountries,
	}
	for _, p := range doc.Personas {
		targeting.Personas = append(targeting.Personas, scoring.PersonaContext{
			Name:            p.Name,
			JobTitles:       p.JobTitles,
			SeniorityLevels: p.SeniorityLevels,
			CompanySizes:    p.CompanySizes,
		})
	}
	for _, f := range doc.IndustryFit {
		targeting.IndustryFit = append(targeting.IndustryFit, scoring.IndustryFitScore{
			Industry: f.Industry,
			FitScore: f.FitScore,
		})
	}
	return targeting
}
