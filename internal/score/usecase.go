package score

import "dailyq/internal/question"

// Scorer computes the priority of a single question.
type Scorer interface {
	Score(q question.Question) float64
}
