package scoring

import (
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds the worker fan-out in ScoreBatch. Each lead is
// scored independently against the shared read-only context, so the batch
// is safe to parallelize.
const batchConcurrency = 8

// seniorityLadder orders seniority levels from junior to senior. Adjacency
// in this ladder earns partial seniority credit.
var seniorityLadder = []string{
	"entry",
	"junior",
	"senior",
	"lead",
	"manager",
	"director",
	"vp",
	"cxo",
	"founder",
}

// Model scores individual leads or batches against a fixed Context.
// A Model is stateless beyond its context and safe for concurrent use.
type Model struct {
	ctx *Context
}

// NewModel creates a scoring model bound to a campaign context.
func NewModel(ctx *Context) *Model {
	return &Model{ctx: ctx}
}

// ScoreLead computes the six component scores for one lead, sums them into
// a 0-100 total, classifies the tier and derives persona tags. It is total:
// a record with every optional field nil scores 0 across the board and
// lands in tier D, never an error.
func (m *Model) ScoreLead(lead LeadScoreRecord) Result {
	breakdown := Breakdown{
		JobTitleMatch:    Component{Score: m.scoreJobTitle(lead.Title), Max: MaxJobTitleMatch},
		SeniorityMatch:   Component{Score: m.scoreSeniority(lead.Seniority), Max: MaxSeniorityMatch},
		CompanySizeMatch: Component{Score: m.scoreCompanySize(lead.CompanySize), Max: MaxCompanySizeMatch},
		IndustryFit:      Component{Score: m.scoreIndustryFit(lead.CompanyIndustry), Max: MaxIndustryFit},
		LocationMatch:    Component{Score: m.scoreLocation(lead.Country), Max: MaxLocationMatch},
		DataCompleteness: Component{Score: scoreCompleteness(lead), Max: MaxDataCompleteness},
	}

	total := breakdown.Total()
	tier := DetermineTier(total)

	return Result{
		LeadID:      lead.ID,
		TotalScore:  total,
		Tier:        tier,
		Breakdown:   breakdown,
		PersonaTags: m.personaTags(lead, tier),
	}
}

// ScoreBatch scores every lead in the input, preserving input order.
// Leads are scored concurrently; results are reassembled by index.
func (m *Model) ScoreBatch(leads []LeadScoreRecord) []Result {
	results := make([]Result, len(leads))
	if len(leads) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, lead := range leads {
		i, lead := i, lead
		g.Go(func() error {
			results[i] = m.ScoreLead(lead)
			return nil
		})
	}
	_ = g.Wait() // scoring never fails
	return results
}

// scoreJobTitle awards full credit for an exact case-insensitive match
// against the target title union, otherwise scales the best token-overlap
// ratio into the component range. No title, or no overlap at all, scores 0.
func (m *Model) scoreJobTitle(title *string) int {
	if title == nil || strings.TrimSpace(*title) == "" {
		return 0
	}
	if m.ctx.hasTitle(*title) {
		return MaxJobTitleMatch
	}

	best := 0.0
	leadTokens := tokenize(*title)
	for _, target := range m.ctx.AllTargetJobTitles() {
		if ratio := tokenOverlap(leadTokens, tokenize(target)); ratio > best {
			best = ratio
		}
	}
	return int(best * MaxJobTitleMatch)
}

// scoreSeniority awards full credit for an exact match against the target
// seniority set and partial credit for levels close to a target in the
// seniority ladder.
func (m *Model) scoreSeniority(seniority *string) int {
	if seniority == nil || strings.TrimSpace(*seniority) == "" {
		return 0
	}
	if m.ctx.hasSeniority(*seniority) {
		return MaxSeniorityMatch
	}

	leadIdx := seniorityIndex(*seniority)
	if leadIdx < 0 {
		return 0
	}

	closest := -1
	for _, target := range m.ctx.AllTargetSeniorities() {
		idx := seniorityIndex(target)
		if idx < 0 {
			continue
		}
		distance := abs(leadIdx - idx)
		if closest < 0 || distance < closest {
			closest = distance
		}
	}
	switch closest {
	case 1:
		return 15
	case 2:
		return 8
	default:
		return 0
	}
}

// scoreCompanySize awards full credit for a bucket in the target size set,
// otherwise decays with ordinal distance to the nearest target bucket.
// Unknown sizes (index -1) score 0.
func (m *Model) scoreCompanySize(size *string) int {
	normalized := NormalizeCompanySize(size)
	if normalized == nil {
		return 0
	}
	if m.ctx.hasCompanySize(strings.ToLower(*normalized)) {
		return MaxCompanySizeMatch
	}

	leadIdx := CompanySizeIndex(normalized)
	if leadIdx < 0 {
		return 0
	}

	closest := -1
	for _, target := range m.ctx.AllTargetCompanySizes() {
		idx := CompanySizeIndex(NormalizeCompanySize(&target))
		if idx < 0 {
			continue
		}
		distance := abs(leadIdx - idx)
		if closest < 0 || distance < closest {
			closest = distance
		}
	}
	if closest < 0 {
		return 0
	}

	score := MaxCompanySizeMatch - 4*closest
	if score < 0 {
		return 0
	}
	return score
}

// scoreIndustryFit scales the 0-100 table fit score linearly into the
// component range, so a fit of 95 yields 19 and the unknown-industry
// default of 50 yields 10.
func (m *Model) scoreIndustryFit(industry *string) int {
	fit := defaultIndustryFit
	if industry != nil {
		fit = m.ctx.IndustryFit(*industry)
	}
	return int(math.Round(float64(fit) / 100 * MaxIndustryFit))
}

// scoreLocation awards full credit for target countries and a small nonzero
// baseline elsewhere; geography alone should not disqualify a lead.
func (m *Model) scoreLocation(country *string) int {
	if country == nil || strings.TrimSpace(*country) == "" {
		return 0
	}
	if m.ctx.hasCountry(*country) {
		return MaxLocationMatch
	}
	return 3
}

// scoreCompleteness counts present contact fields and scales proportionally.
func scoreCompleteness(lead LeadScoreRecord) int {
	present := 0
	for _, field := range []*string{lead.Email, lead.Phone, lead.CompanyDomain, lead.LinkedInURL} {
		if field != nil && strings.TrimSpace(*field) != "" {
			present++
		}
	}
	return int(math.Round(float64(present) / 4 * MaxDataCompleteness))
}

// personaTags derives the tag set for a result: always the tier tag, the
// seniority tag when seniority is known, and the best-matching persona's
// name when the lead's title or seniority matched that persona directly.
func (m *Model) personaTags(lead LeadScoreRecord, tier Tier) []string {
	tags := []string{"tier_" + strings.ToLower(string(tier))}

	if lead.Seniority != nil {
		if level := strings.ToLower(strings.TrimSpace(*lead.Seniority)); level != "" {
			tags = append(tags, "seniority_"+level)
		}
	}

	if persona := m.bestPersona(lead); persona != "" {
		tags = append(tags, persona)
	}
	return tags
}

// bestPersona prefers a persona whose titles match the lead exactly, then
// one whose seniorities do.
func (m *Model) bestPersona(lead LeadScoreRecord) string {
	if lead.Title != nil {
		needle := strings.ToLower(strings.TrimSpace(*lead.Title))
		for _, p := range m.ctx.Personas() {
			for _, title := range p.JobTitles {
				if strings.ToLower(strings.TrimSpace(title)) == needle {
					return p.Name
				}
			}
		}
	}
	if lead.Seniority != nil {
		needle := strings.ToLower(strings.TrimSpace(*lead.Seniority))
		for _, p := range m.ctx.Personas() {
			for _, level := range p.SeniorityLevels {
				if strings.ToLower(strings.TrimSpace(level)) == needle {
					return p.Name
				}
			}
		}
	}
	return ""
}

// tokenize lowercases and splits a title into word tokens.
func tokenize(value string) map[string]struct{} {
	tokens := map[string]struct{}{}
	for _, field := range strings.Fields(strings.ToLower(value)) {
		token := strings.Trim(field, ".,;:()/&-")
		if token != "" {
			tokens[token] = struct{}{}
		}
	}
	return tokens
}

// tokenOverlap returns the Jaccard ratio of two token sets.
func tokenOverlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for token := range a {
		if _, ok := b[token]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func seniorityIndex(level string) int {
	needle := strings.ToLower(strings.TrimSpace(level))
	for i, entry := range seniorityLadder {
		if needle == entry {
			return i
		}
	}
	return -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
