package scoring

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func vpMarketingLead() LeadScoreRecord {
	return LeadScoreRecord{
		ID:              uuid.New(),
		Title:           strPtr("VP Marketing"),
		Seniority:       strPtr("vp"),
		CompanyName:     strPtr("Acme SaaS"),
		CompanySize:     strPtr("201-500"),
		CompanyIndustry: strPtr("SaaS"),
		Country:         strPtr("United States"),
		Email:           strPtr("vp@acme.example"),
		Phone:           strPtr("+14155550100"),
		CompanyDomain:   strPtr("acme.example"),
		LinkedInURL:     strPtr("https://linkedin.com/in/vp"),
	}
}

func TestScoreLeadIdealProfile(t *testing.T) {
	model := NewModel(marketingContext())
	result := model.ScoreLead(vpMarketingLead())

	if result.Tier != TierA {
		t.Errorf("tier = %q, want A", result.Tier)
	}
	if result.TotalScore < 80 {
		t.Errorf("total = %d, want >= 80", result.TotalScore)
	}
	if result.Breakdown.JobTitleMatch.Score != 30 {
		t.Errorf("job title = %d, want 30", result.Breakdown.JobTitleMatch.Score)
	}
	if result.Breakdown.SeniorityMatch.Score != 20 {
		t.Errorf("seniority = %d, want 20", result.Breakdown.SeniorityMatch.Score)
	}
	if result.Breakdown.CompanySizeMatch.Score != 15 {
		t.Errorf("company size = %d, want 15", result.Breakdown.CompanySizeMatch.Score)
	}
	if result.Breakdown.IndustryFit.Score != 19 {
		t.Errorf("industry fit = %d, want 19 (round(95/100*20))", result.Breakdown.IndustryFit.Score)
	}
	if result.Breakdown.LocationMatch.Score != 10 {
		t.Errorf("location = %d, want 10", result.Breakdown.LocationMatch.Score)
	}
	if result.Breakdown.DataCompleteness.Score != 5 {
		t.Errorf("completeness = %d, want 5", result.Breakdown.DataCompleteness.Score)
	}
}

func TestScoreLeadPartialProfile(t *testing.T) {
	model := NewModel(marketingContext())
	lead := LeadScoreRecord{
		ID:              uuid.New(),
		Title:           strPtr("Marketing Manager"),
		Seniority:       strPtr("manager"),
		CompanySize:     strPtr("11-50"),
		CompanyIndustry: strPtr("Consulting"),
		Country:         strPtr("Canada"),
		Email:           strPtr("mm@corp.example"),
	}
	result := model.ScoreLead(lead)

	if result.Tier != TierB && result.Tier != TierC {
		t.Errorf("tier = %q, want B or C", result.Tier)
	}
	if result.TotalScore < 40 || result.TotalScore >= 80 {
		t.Errorf("total = %d, want in [40,80)", result.TotalScore)
	}
	if result.Breakdown.LocationMatch.Score != 3 {
		t.Errorf("location = %d, want baseline 3 for non-target country", result.Breakdown.LocationMatch.Score)
	}
	if result.Breakdown.SeniorityMatch.Score < 15 {
		t.Errorf("seniority = %d, want adjacent-level credit >= 15", result.Breakdown.SeniorityMatch.Score)
	}
	if result.Breakdown.JobTitleMatch.Score <= 0 || result.Breakdown.JobTitleMatch.Score >= 30 {
		t.Errorf("job title = %d, want partial credit in (0,30)", result.Breakdown.JobTitleMatch.Score)
	}
}

func TestScoreLeadSparseProfile(t *testing.T) {
	model := NewModel(marketingContext())
	lead := LeadScoreRecord{
		ID:              uuid.New(),
		Title:           strPtr("Software Engineer"),
		CompanyName:     strPtr("Tech Corp"),
		CompanyIndustry: strPtr("Unknown"),
	}
	result := model.ScoreLead(lead)

	if result.Tier != TierC && result.Tier != TierD {
		t.Errorf("tier = %q, want C or D", result.Tier)
	}
	if result.TotalScore >= 60 {
		t.Errorf("total = %d, want < 60", result.TotalScore)
	}
	if result.Breakdown.DataCompleteness.Score != 0 {
		t.Errorf("completeness = %d, want 0", result.Breakdown.DataCompleteness.Score)
	}
	if result.Breakdown.IndustryFit.Score != 10 {
		t.Errorf("industry fit = %d, want neutral 10", result.Breakdown.IndustryFit.Score)
	}
}

func TestScoreLeadEmptyRecordNeverPanics(t *testing.T) {
	model := NewModel(marketingContext())
	result := model.ScoreLead(LeadScoreRecord{ID: uuid.New()})

	if result.TotalScore != 0 {
		t.Errorf("total = %d, want 0 for empty record", result.TotalScore)
	}
	if result.Tier != TierD {
		t.Errorf("tier = %q, want D", result.Tier)
	}
}

func TestScoreBounds(t *testing.T) {
	model := NewModel(marketingContext())
	leads := []LeadScoreRecord{
		vpMarketingLead(),
		{ID: uuid.New()},
		{ID: uuid.New(), Title: strPtr("Chief Marketing Officer"), Country: strPtr("Germany")},
		{ID: uuid.New(), CompanySize: strPtr("enterprise"), CompanyIndustry: strPtr("SaaS")},
	}
	for _, lead := range leads {
		result := model.ScoreLead(lead)
		if result.TotalScore < 0 || result.TotalScore > 100 {
			t.Fatalf("total %d out of [0,100]", result.TotalScore)
		}
		if result.TotalScore != result.Breakdown.Total() {
			t.Fatalf("total %d does not equal breakdown sum %d", result.TotalScore, result.Breakdown.Total())
		}
		for _, c := range []Component{
			result.Breakdown.JobTitleMatch,
			result.Breakdown.SeniorityMatch,
			result.Breakdown.CompanySizeMatch,
			result.Breakdown.IndustryFit,
			result.Breakdown.LocationMatch,
			result.Breakdown.DataCompleteness,
		} {
			if c.Score < 0 || c.Score > c.Max {
				t.Fatalf("component score %d outside [0,%d]", c.Score, c.Max)
			}
		}
	}
}

func TestCompletenessMonotonic(t *testing.T) {
	model := NewModel(marketingContext())
	lead := LeadScoreRecord{ID: uuid.New()}
	previous := 0

	addField := []func(*LeadScoreRecord){
		func(l *LeadScoreRecord) { l.Email = strPtr("a@b.example") },
		func(l *LeadScoreRecord) { l.Phone = strPtr("+31612345678") },
		func(l *LeadScoreRecord) { l.CompanyDomain = strPtr("b.example") },
		func(l *LeadScoreRecord) { l.LinkedInURL = strPtr("https://linkedin.com/in/a") },
	}
	for i, add := range addField {
		add(&lead)
		score := model.ScoreLead(lead).Breakdown.DataCompleteness.Score
		if score < previous {
			t.Fatalf("completeness decreased after adding field %d: %d -> %d", i, previous, score)
		}
		previous = score
	}
	if previous != 5 {
		t.Fatalf("completeness with all four fields = %d, want 5", previous)
	}
}

func TestScoreLeadDeterministic(t *testing.T) {
	model := NewModel(marketingContext())
	lead := vpMarketingLead()

	first := model.ScoreLead(lead)
	second := model.ScoreLead(lead)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}

func TestScoreBatchMatchesScoreLead(t *testing.T) {
	model := NewModel(marketingContext())
	lead := vpMarketingLead()

	batch := model.ScoreBatch([]LeadScoreRecord{lead})
	if len(batch) != 1 {
		t.Fatalf("batch of one returned %d results", len(batch))
	}
	if !reflect.DeepEqual(batch[0], model.ScoreLead(lead)) {
		t.Fatal("batch result differs from direct scoring")
	}
}

func TestScoreBatchPreservesOrder(t *testing.T) {
	model := NewModel(marketingContext())

	leads := make([]LeadScoreRecord, 50)
	for i := range leads {
		leads[i] = LeadScoreRecord{ID: uuid.New()}
	}
	results := model.ScoreBatch(leads)
	if len(results) != len(leads) {
		t.Fatalf("got %d results for %d leads", len(results), len(leads))
	}
	for i := range leads {
		if results[i].LeadID != leads[i].ID {
			t.Fatalf("result %d has lead id %s, want %s", i, results[i].LeadID, leads[i].ID)
		}
	}
}

func TestScoreBatchEmpty(t *testing.T) {
	model := NewModel(marketingContext())
	if results := model.ScoreBatch(nil); len(results) != 0 {
		t.Fatalf("empty batch returned %d results", len(results))
	}
}

func TestPersonaTags(t *testing.T) {
	model := NewModel(marketingContext())
	result := model.ScoreLead(vpMarketingLead())

	want := map[string]bool{"tier_a": false, "seniority_vp": false, "Marketing Leader": false}
	for _, tag := range result.PersonaTags {
		if _, ok := want[tag]; ok {
			want[tag] = true
		}
	}
	for tag, seen := range want {
		if !seen {
			t.Errorf("missing tag %q in %v", tag, result.PersonaTags)
		}
	}
}
