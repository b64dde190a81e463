package question

import "github.com/google/cel-go/cel"

// NewQuestionEnv declares the variables available to eligibility rules.
// Missing optional numbers are exposed as 0.0, missing companies as "".
func NewQuestionEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// --- Identity ---
		cel.Variable("id", cel.IntType),
		cel.Variable("title", cel.StringType),
		cel.Variable("difficulty", cel.StringType),
		cel.Variable("url", cel.StringType),

		// --- Metrics ---
		cel.Variable("frequency", cel.DoubleType),
		cel.Variable("rating", cel.DoubleType),
		cel.Variable("likes", cel.DoubleType),
		cel.Variable("acceptanceRate", cel.DoubleType),

		// --- Companies ---
		cel.Variable("companies", cel.StringType),
		cel.Variable("companyCount", cel.IntType),
		cel.Variable("faang", cel.BoolType),
		cel.Variable("premium", cel.BoolType),
	)
	if err != nil {
		return nil, err
	}
	return env, nil
}

// Activation builds the CEL input for q matching NewQuestionEnv.
func (q *Question) Activation() map[string]any {
	companies := ""
	if q.Companies != nil {
		companies = *q.Companies
	}
	return map[string]any{
		"id":             int64(q.ID),
		"title":          q.Title,
		"difficulty":     q.Difficulty,
		"url":            q.URL,
		"frequency":      Value(q.Frequency),
		"rating":         Value(q.Rating),
		"likes":          Value(q.Likes),
		"acceptanceRate": Value(q.AcceptanceRate),
		"companies":      companies,
		"companyCount":   int64(q.CompanyCount()),
		"faang":          q.AskedByFAANG,
		"premium":        q.IsPremium,
	}
}
