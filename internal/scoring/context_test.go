package scoring

import (
	"sort"
	"testing"

	"github.com/google/uuid"
)

func marketingContext() *Context {
	niche := NicheContext{
		ID:           uuid.New(),
		Name:         "B2B SaaS Marketing",
		Industries:   []string{"SaaS", "Software"},
		CompanySizes: []string{"201-500"},
		JobTitles:    []string{"VP Marketing", "CMO"},
	}
	personas := []PersonaContext{
		{
			ID:              uuid.New(),
			Name:            "Marketing Leader",
			JobTitles:       []string{"VP Marketing", "Marketing Director"},
			SeniorityLevels: []string{"vp", "director"},
			CompanySizes:    []string{"201-500", "501-1000"},
		},
	}
	fit := []IndustryFitScore{
		{Industry: "SaaS", FitScore: 95},
		{Industry: "Consulting", FitScore: 60},
	}
	return NewContext(niche, personas, fit, []string{"United States"})
}

func TestAllTargetJobTitlesUnion(t *testing.T) {
	ctx := marketingContext()
	titles := ctx.AllTargetJobTitles()
	sort.Strings(titles)
	want := []string{"CMO", "Marketing Director", "VP Marketing"}
	if len(titles) != len(want) {
		t.Fatalf("got %d titles %v, want %v", len(titles), titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles = %v, want %v", titles, want)
		}
	}
}

func TestAllTargetCompanySizesUnion(t *testing.T) {
	ctx := marketingContext()
	sizes := ctx.AllTargetCompanySizes()
	if len(sizes) != 2 {
		t.Fatalf("expected persona and niche sizes deduplicated to 2 buckets, got %v", sizes)
	}
}

func TestIndustryFitLookup(t *testing.T) {
	ctx := marketingContext()
	cases := []struct {
		name     string
		industry string
		want     int
	}{
		{"exact match", "SaaS", 95},
		{"case insensitive exact", "saas", 95},
		{"lead industry contains table entry", "B2B SaaS Platform", 95},
		{"table entry contains lead industry", "Consult", 60},
		{"unknown defaults to neutral", "Aerospace", 50},
		{"empty defaults to neutral", "", 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ctx.IndustryFit(tc.industry); got != tc.want {
				t.Fatalf("IndustryFit(%q) = %d, want %d", tc.industry, got, tc.want)
			}
		})
	}
}
