package rank

import (
	"dailyq/internal/question"
	"sort"
)

// Summary describes the content of a ranked list.
type Summary struct {
	Total        int
	FAANG        int
	ByDifficulty map[string]int
	// Difficulties lists ByDifficulty keys, most frequent first.
	Difficulties []string
	Top          []Entry
}

// Entry is a short view of a ranked question.
type Entry struct {
	Position   int
	ID         int
	Title      string
	Difficulty string
	Score      float64
	FAANG      bool
}

// Summarize computes dataset statistics and the top entries of list.
func Summarize(list RankedList, top int) Summary {
	summary := Summary{
		Total:        len(list.Questions),
		ByDifficulty: make(map[string]int),
	}

	for _, q := range list.Questions {
		if q.AskedByFAANG {
			summary.FAANG++
		}
		if _, seen := summary.ByDifficulty[q.Difficulty]; !seen {
			summary.Difficulties = append(summary.Difficulties, q.Difficulty)
		}
		summary.ByDifficulty[q.Difficulty]++
	}

	sort.SliceStable(summary.Difficulties, func(i, j int) bool {
		return summary.ByDifficulty[summary.Difficulties[i]] > summary.ByDifficulty[summary.Difficulties[j]]
	})

	for i := 0; i < top && i < len(list.Questions); i++ {
		q := list.Questions[i]
		summary.Top = append(summary.Top, Entry{
			Position:   i + 1,
			ID:         q.ID,
			Title:      q.Title,
			Difficulty: q.Difficulty,
			Score:      q.PriorityScore,
			FAANG:      q.AskedByFAANG,
		})
	}

	return summary
}

// CountUnsent returns the number of distinct ids in questions missing from sent.
func CountUnsent(questions []question.Question, sent map[int]struct{}) int {
	unsent := make(map[int]struct{}, len(questions))
	for _, q := range questions {
		if _, done := sent[q.ID]; !done {
			unsent[q.ID] = struct{}{}
		}
	}
	return len(unsent)
}
