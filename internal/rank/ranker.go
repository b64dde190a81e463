package rank

import (
	"dailyq/internal/question"
	"dailyq/internal/score"
	"dailyq/internal/utils"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Method labels how a ranked list was produced.
const Method = "CSV-based (FAANG, frequency, rating, likes, companies)"

// RankedList is the persisted output of a ranking run.
type RankedList struct {
	// RankedAt — generation time.
	RankedAt time.Time `json:"ranked_at"`
	// TotalQuestions — number of questions in the list.
	TotalQuestions int `json:"total_questions"`
	// RankingMethod — method label, see Method.
	RankingMethod string `json:"ranking_method"`
	// Questions — questions ordered by descending priority score.
	Questions []question.Question `json:"questions"`
}

// UnmarshalJSON accepts ranked_at with or without a zone offset.
func (l *RankedList) UnmarshalJSON(data []byte) error {
	type plain RankedList
	aux := struct {
		*plain
		RankedAt string `json:"ranked_at"`
	}{plain: (*plain)(l)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	l.RankedAt = time.Time{}
	if aux.RankedAt != "" {
		t, err := utils.ParseTimestamp(aux.RankedAt)
		if err != nil {
			return fmt.Errorf("ranked_at: %w", err)
		}
		l.RankedAt = t
	}
	return nil
}

// Ranker scores questions and orders them by priority.
type Ranker struct {
	scorer score.Scorer
	now    func() time.Time
}

// Rank scores every question and returns them sorted by descending score.
// The sort is stable: questions with equal scores keep their input order.
// The input slice is not modified.
func (r *Ranker) Rank(questions []question.Question) RankedList {
	ranked := make([]question.Question, len(questions))
	copy(ranked, questions)

	for i := range ranked {
		ranked[i].PriorityScore = r.scorer.Score(ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})

	return RankedList{
		RankedAt:       r.now(),
		TotalQuestions: len(ranked),
		RankingMethod:  Method,
		Questions:      ranked,
	}
}

// NewRanker creates a ranker backed by scorer.
func NewRanker(scorer score.Scorer) *Ranker {
	return &Ranker{scorer: scorer, now: time.Now}
}
