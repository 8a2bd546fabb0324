package service

import (
	"context"
	"testing"

	"leadscore_backend/internal/campaigns/repository"
	"leadscore_backend/internal/scoring"
	"leadscore_backend/platform/apperr"
	"leadscore_backend/platform/logger"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	targeting  map[uuid.UUID]repository.Targeting
	leads      []repository.Lead
	saveCalls  int
	savedTotal int
	lastSaved  []scoring.Result
}

func (f *fakeRepo) GetTargeting(_ context.Context, campaignID uuid.UUID) (repository.Targeting, error) {
	targeting, ok := f.targeting[campaignID]
	if !ok {
		return repository.Targeting{}, apperr.NotFound("campaign targeting not found")
	}
	return targeting, nil
}

func (f *fakeRepo) UpsertTargeting(_ context.Context, campaignID uuid.UUID, targeting repository.Targeting) error {
	if f.targeting == nil {
		f.targeting = map[uuid.UUID]repository.Targeting{}
	}
	f.targeting[campaignID] = targeting
	return nil
}

func (f *fakeRepo) GetLead(_ context.Context, _ uuid.UUID, leadID uuid.UUID) (repository.Lead, error) {
	for _, lead := range f.leads {
		if lead.ID == leadID {
			return lead, nil
		}
	}
	return repository.Lead{}, apperr.NotFound("lead not found")
}

func (f *fakeRepo) ListLeadsByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]repository.Lead, error) {
	var out []repository.Lead
	for _, id := range ids {
		for _, lead := range f.leads {
			if lead.ID == id {
				out = append(out, lead)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ListLeadsPage(_ context.Context, _ uuid.UUID, offset, limit int) ([]repository.Lead, error) {
	if offset >= len(f.leads) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.leads) {
		end = len(f.leads)
	}
	return f.leads[offset:end], nil
}

func (f *fakeRepo) CountLeads(_ context.Context, _ uuid.UUID) (int, error) {
	return len(f.leads), nil
}

func (f *fakeRepo) SaveScores(_ context.Context, _ uuid.UUID, results []scoring.Result) error {
	f.saveCalls++
	f.savedTotal += len(results)
	f.lastSaved = results
	return nil
}

func (f *fakeRepo) GetScore(_ context.Context, _ uuid.UUID) (repository.LeadScore, error) {
	return repository.LeadScore{}, apperr.NotFound("lead has not been scored")
}

type fakeEnqueuer struct {
	campaignID uuid.UUID
	jobID      uuid.UUID
	calls      int
}

func (f *fakeEnqueuer) EnqueueRescore(_ context.Context, campaignID, jobID uuid.UUID) error {
	f.calls++
	f.campaignID = campaignID
	f.jobID = jobID
	return nil
}

func strPtr(s string) *string { return &s }

func saasTargeting() repository.Targeting {
	return repository.Targeting{
		CampaignName: "Q3 Outbound",
		Niche: scoring.NicheContext{
			Name:         "B2B SaaS Marketing",
			Industries:   []string{"SaaS"},
			CompanySizes: []string{"201-500"},
			JobTitles:    []string{"VP Marketing", "CMO"},
		},
		Personas: []scoring.PersonaContext{
			{
				Name:            "Marketing Leader",
				JobTitles:       []string{"VP Marketing", "Marketing Director"},
				SeniorityLevels: []string{"vp", "director"},
				CompanySizes:    []string{"201-500", "501-1000"},
			},
		},
		IndustryFit: []scoring.IndustryFitScore{
			{Industry: "SaaS", FitScore: 95},
		},
		TargetCountries: []string{"United States"},
	}
}

func makeLead(campaignID uuid.UUID, title string) repository.Lead {
	return repository.Lead{
		ID:              uuid.New(),
		CampaignID:      campaignID,
		Title:           strPtr(title),
		Seniority:       strPtr("vp"),
		CompanySize:     strPtr("201-500"),
		CompanyIndustry: strPtr("SaaS"),
		Country:         strPtr("United States"),
		Email:           strPtr("lead@example.com"),
	}
}

func newTestService(repo repository.Repository, enqueuer RescoreEnqueuer, pageSize int) *Service {
	return New(repo, enqueuer, nil, logger.New("test"), pageSize)
}

func TestScoreLeadsPersistsInInputOrder(t *testing.T) {
	campaignID := uuid.New()
	repo := &fakeRepo{
		targeting: map[uuid.UUID]repository.Targeting{campaignID: saasTargeting()},
		leads: []repository.Lead{
			makeLead(campaignID, "VP Marketing"),
			makeLead(campaignID, "Software Engineer"),
			makeLead(campaignID, "CMO"),
		},
	}
	svc := newTestService(repo, nil, 200)

	results, err := svc.ScoreLeads(context.Background(), campaignID, nil)
	if err != nil {
		t.Fatalf("ScoreLeads: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, lead := range repo.leads {
		if results[i].LeadID != lead.ID {
			t.Errorf("result %d lead id = %s, want %s", i, results[i].LeadID, lead.ID)
		}
	}
	if repo.saveCalls != 1 {
		t.Errorf("SaveScores called %d times, want 1", repo.saveCalls)
	}
	if repo.savedTotal != 3 {
		t.Errorf("persisted %d results, want 3", repo.savedTotal)
	}
}

func TestScoreLeadsSubset(t *testing.T) {
	campaignID := uuid.New()
	leadA := makeLead(campaignID, "VP Marketing")
	leadB := makeLead(campaignID, "Software Engineer")
	repo := &fakeRepo{
		targeting: map[uuid.UUID]repository.Targeting{campaignID: saasTargeting()},
		leads:     []repository.Lead{leadA, leadB},
	}
	svc := newTestService(repo, nil, 200)

	results, err := svc.ScoreLeads(context.Background(), campaignID, []uuid.UUID{leadB.ID})
	if err != nil {
		t.Fatalf("ScoreLeads: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].LeadID != leadB.ID {
		t.Errorf("lead id = %s, want %s", results[0].LeadID, leadB.ID)
	}
}

func TestScoreLeadsNoLeads(t *testing.T) {
	campaignID := uuid.New()
	repo := &fakeRepo{
		targeting: map[uuid.UUID]repository.Targeting{campaignID: saasTargeting()},
	}
	svc := newTestService(repo, nil, 200)

	_, err := svc.ScoreLeads(context.Background(), campaignID, nil)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", apperr.GetKind(err))
	}
	if repo.saveCalls != 0 {
		t.Errorf("SaveScores called %d times, want 0", repo.saveCalls)
	}
}

func TestScoreLeadsUnknownCampaign(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, 200)

	_, err := svc.ScoreLeads(context.Background(), uuid.New(), nil)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", apperr.GetKind(err))
	}
}

func TestRescoreCampaignPagesAndReports(t *testing.T) {
	campaignID := uuid.New()
	repo := &fakeRepo{
		targeting: map[uuid.UUID]repository.Targeting{campaignID: saasTargeting()},
	}
	for i := 0; i < 5; i++ {
		repo.leads = append(repo.leads, makeLead(campaignID, "VP Marketing"))
	}
	svc := newTestService(repo, nil, 2)

	var reports [][2]int
	scored, err := svc.RescoreCampaign(context.Background(), campaignID, func(scored, total int) {
		reports = append(reports, [2]int{scored, total})
	})
	if err != nil {
		t.Fatalf("RescoreCampaign: %v", err)
	}
	if scored != 5 {
		t.Errorf("scored = %d, want 5", scored)
	}
	if repo.saveCalls != 3 {
		t.Errorf("SaveScores called %d times, want 3", repo.saveCalls)
	}

	want := [][2]int{{0, 5}, {2, 5}, {4, 5}, {5, 5}}
	if len(reports) != len(want) {
		t.Fatalf("got %d progress reports, want %d: %v", len(reports), len(want), reports)
	}
	for i, r := range reports {
		if r != want[i] {
			t.Errorf("report %d = %v, want %v", i, r, want[i])
		}
	}
}

func TestEnqueueRescore(t *testing.T) {
	campaignID := uuid.New()
	repo := &fakeRepo{
		targeting: map[uuid.UUID]repository.Targeting{campaignID: saasTargeting()},
	}
	enq := &fakeEnqueuer{}
	svc := newTestService(repo, enq, 200)

	jobID, err := svc.EnqueueRescore(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("EnqueueRescore: %v", err)
	}
	if jobID == uuid.Nil {
		t.Error("job id is nil")
	}
	if enq.calls != 1 {
		t.Errorf("enqueued %d times, want 1", enq.calls)
	}
	if enq.campaignID != campaignID || enq.jobID != jobID {
		t.Errorf("enqueued (%s, %s), want (%s, %s)", enq.campaignID, enq.jobID, campaignID, jobID)
	}
}

func TestEnqueueRescoreUnknownCampaign(t *testing.T) {
	enq := &fakeEnqueuer{}
	svc := newTestService(&fakeRepo{}, enq, 200)

	_, err := svc.EnqueueRescore(context.Background(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", apperr.GetKind(err))
	}
	if enq.calls != 0 {
		t.Errorf("enqueued %d times, want 0", enq.calls)
	}
}

func TestEnqueueRescoreNotConfigured(t *testing.T) {
	campaignID := uuid.New()
	repo := &fakeRepo{
		targeting: map[uuid.UUID]repository.Targeting{campaignID: saasTargeting()},
	}
	svc := newTestService(repo, nil, 200)

	_, err := svc.EnqueueRescore(context.Background(), campaignID)
	if apperr.GetKind(err) != apperr.KindInternal {
		t.Errorf("kind = %v, want KindInternal", apperr.GetKind(err))
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, nil, 200)

	lead := makeLead(uuid.New(), "VP Marketing")
	results := svc.Preview(saasTargeting(), []repository.Lead{lead})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Tier != scoring.TierA {
		t.Errorf("tier = %s, want A", results[0].Tier)
	}
	if repo.saveCalls != 0 {
		t.Errorf("SaveScores called %d times, want 0", repo.saveCalls)
	}
}

func TestImportTargetingRequiresNicheName(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, nil, 200)

	err := svc.ImportTargeting(context.Background(), uuid.New(), repository.Targeting{})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want KindValidation", apperr.GetKind(err))
	}

	targeting := saasTargeting()
	if err := svc.ImportTargeting(context.Background(), uuid.New(), targeting); err != nil {
		t.Fatalf("ImportTargeting: %v", err)
	}
	if len(repo.targeting) != 1 {
		t.Errorf("stored %d targeting rows, want 1", len(repo.targeting))
	}
}

func TestLeadRecordDropsInvalidPhone(t *testing.T) {
	lead := makeLead(uuid.New(), "VP Marketing")
	lead.Phone = strPtr("not-a-phone")
	if record := LeadRecord(lead); record.Phone != nil {
		t.Errorf("phone = %q, want nil for unparseable input", *record.Phone)
	}

	lead.Phone = strPtr("(415) 555-2671")
	record := LeadRecord(lead)
	if record.Phone == nil {
		t.Fatal("phone dropped for a valid US number")
	}
	if *record.Phone != "+14155552671" {
		t.Errorf("phone = %q, want E.164 +14155552671", *record.Phone)
	}
}
