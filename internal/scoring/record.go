package scoring

import "github.com/google/uuid"

// LeadScoreRecord is one prospect's data snapshot, the scoring input.
// Optional fields are nil when the source row has no value. The four contact
// fields (Email, Phone, CompanyDomain, LinkedInURL) are only inspected for
// presence, never content.
type LeadScoreRecord struct {
	ID              uuid.UUID
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
}

// Component is one scored dimension with its maximum attainable points.
type Component struct {
	Score int `json:"score"`
	Max   int `json:"max"`
}

// Component maximums. They sum to 100 so the total needs no rescaling.
const (
	MaxJobTitleMatch    = 30
	MaxSeniorityMatch   = 20
	MaxCompanySizeMatch = 15
	MaxIndustryFit      = 20
	MaxLocationMatch    = 10
	MaxDataCompleteness = 5
)

// Breakdown decomposes a lead's score into its six independent components.
type Breakdown struct {
	JobTitleMatch    Component `json:"job_title_match"`
	SeniorityMatch   Component `json:"seniority_match"`
	CompanySizeMatch Component `json:"company_size_match"`
	IndustryFit      Component `json:"industry_fit"`
	LocationMatch    Component `json:"location_match"`
	DataCompleteness Component `json:"data_completeness"`
}

// Total returns the sum of all component scores.
func (b Breakdown) Total() int {
	return b.JobTitleMatch.Score +
		b.SeniorityMatch.Score +
		b.CompanySizeMatch.Score +
		b.IndustryFit.Score +
		b.LocationMatch.Score +
		b.DataCompleteness.Score
}

// Result is one lead's scoring outcome, handed back to the caller for
// persistence.
type Result struct {
	LeadID      uuid.UUID `json:"lead_id"`
	TotalScore  int       `json:"total_score"`
	Tier        Tier      `json:"tier"`
	Breakdown   Breakdown `json:"breakdown"`
	PersonaTags []string  `json:"persona_tags"`
}
