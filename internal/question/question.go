package question

import "strings"

// Question is a single practice problem read from the dataset.
// Optional numeric attributes are nil when the source cell was empty or malformed;
// they serialize as JSON null.
type Question struct {
	// ID — unique problem identifier.
	ID int `json:"id"`
	// Title — human readable problem title.
	Title string `json:"title"`
	// Difficulty — categorical difficulty, usually Easy, Medium or Hard.
	// Compared as an exact string.
	Difficulty string `json:"difficulty"`
	// Description — problem statement.
	Description string `json:"description"`
	// URL — link to the problem page.
	URL string `json:"url"`
	// Frequency — how often the problem is asked, 0-100.
	Frequency *float64 `json:"frequency"`
	// Rating — community rating.
	Rating *float64 `json:"rating"`
	// Likes — number of likes.
	Likes *float64 `json:"likes"`
	// AcceptanceRate — share of accepted submissions, percent.
	AcceptanceRate *float64 `json:"acceptance_rate"`
	// Companies — comma-separated list of companies asking the problem.
	Companies *string `json:"companies"`
	// AskedByFAANG — the problem was reported as asked by a tier-one employer.
	AskedByFAANG bool `json:"asked_by_faang"`
	// IsPremium — restricted problem; such rows never reach ranking.
	IsPremium bool `json:"is_premium"`
	// PriorityScore — score computed by the ranker.
	PriorityScore float64 `json:"priority_score"`
}

// CompanyList returns trimmed, non-empty company names.
// A missing or whitespace-only field yields an empty list.
func (q *Question) CompanyList() []string {
	if q.Companies == nil || strings.TrimSpace(*q.Companies) == "" {
		return nil
	}
	parts := strings.Split(*q.Companies, ",")
	companies := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			companies = append(companies, name)
		}
	}
	return companies
}

// CompanyCount is the number of comma-separated entries in Companies,
// 0 when the field is missing or blank.
func (q *Question) CompanyCount() int {
	if q.Companies == nil || strings.TrimSpace(*q.Companies) == "" {
		return 0
	}
	return len(strings.Split(*q.Companies, ","))
}

// Value dereferences an optional attribute, treating nil as zero.
func Value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// IDs returns identifiers of the given questions in order.
func IDs(questions []Question) []int {
	ids := make([]int, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
	}
	return ids
}

// WithoutPremium drops restricted questions, preserving order.
func WithoutPremium(questions []Question) []Question {
	result := make([]Question, 0, len(questions))
	for _, q := range questions {
		if !q.IsPremium {
			result = append(result, q)
		}
	}
	return result
}
