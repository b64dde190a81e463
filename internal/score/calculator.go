package score

import (
	"dailyq/internal/question"
)

// Weights are the fixed coefficients of the priority formula.
type Weights struct {
	// FAANG — flat bonus for questions asked by tier-one employers.
	FAANG float64
	// Frequency — multiplier for frequency (0-100).
	Frequency float64
	// Rating — multiplier for rating.
	Rating float64
	// Likes — multiplier for likes.
	Likes float64
	// CompanyCount — multiplier for the number of companies asking the question.
	CompanyCount float64
}

// DefaultWeights returns the weights the ranking was tuned with.
func DefaultWeights() Weights {
	return Weights{
		FAANG:        100,
		Frequency:    2.0,
		Rating:       10.0,
		Likes:        0.01,
		CompanyCount: 5.0,
	}
}

// WeightedScoreCalculator — scorer implementing the weighted priority formula:
//
//	score = faang*FAANG + frequency*Frequency + rating*Rating + likes*Likes + companies*CompanyCount
//
// Missing attributes contribute nothing. Negative inputs and negative products are
// clamped to zero, so the result is never negative.
type WeightedScoreCalculator struct {
	weights Weights
}

// Score computes the priority score for q. The result depends only on q and the weights.
func (sc *WeightedScoreCalculator) Score(q question.Question) float64 {
	score := 0.0
	if q.AskedByFAANG {
		score += contribution(1, sc.weights.FAANG)
	}
	score += contribution(question.Value(q.Frequency), sc.weights.Frequency)
	score += contribution(question.Value(q.Rating), sc.weights.Rating)
	score += contribution(question.Value(q.Likes), sc.weights.Likes)
	score += contribution(float64(q.CompanyCount()), sc.weights.CompanyCount)
	return score
}

func contribution(value, weight float64) float64 {
	// NaN fails every comparison and must not leak into the sum
	if !(value > 0) || !(weight > 0) {
		return 0
	}
	return value * weight
}

// NewWeightedScoreCalculator creates a scorer with the given weights.
func NewWeightedScoreCalculator(weights Weights) *WeightedScoreCalculator {
	return &WeightedScoreCalculator{weights: weights}
}
