package selector

import "dailyq/internal/question"

// DefaultCount is the batch size used when none is configured.
const DefaultCount = 2

// Selector picks the next batch of unsent questions.
type Selector struct {
	count int
}

// Next returns the next batch from ranked, skipping ids in sent. See Select.
func (s *Selector) Next(ranked []question.Question, sent map[int]struct{}) []question.Question {
	return Select(ranked, sent, s.count)
}

// Count is the configured batch size.
func (s *Selector) Count() int {
	return s.count
}

// NewSelector creates a selector returning up to count questions per batch.
// A non-positive count falls back to DefaultCount.
func NewSelector(count int) *Selector {
	if count <= 0 {
		count = DefaultCount
	}
	return &Selector{count: count}
}

// Select picks up to count questions from ranked, in ranked order:
//  1. questions whose id is in sent are skipped;
//  2. when fewer than count remain, all of them are returned (none left yields an empty batch);
//  3. otherwise the first question of each not yet used difficulty is taken;
//  4. if difficulties run out, remaining slots are filled with the highest ranked
//     questions not chosen yet.
//
// The result never contains sent ids or the same id twice. Inputs are not modified.
func Select(ranked []question.Question, sent map[int]struct{}, count int) []question.Question {
	if count <= 0 {
		count = DefaultCount
	}

	unsent := make([]question.Question, 0, len(ranked))
	seen := make(map[int]struct{}, len(ranked))
	for _, q := range ranked {
		if _, done := sent[q.ID]; done {
			continue
		}
		if _, dup := seen[q.ID]; dup {
			continue
		}
		seen[q.ID] = struct{}{}
		unsent = append(unsent, q)
	}

	if len(unsent) <= count {
		return unsent
	}

	selected := make([]question.Question, 0, count)
	chosen := make(map[int]struct{}, count)
	difficulties := make(map[string]struct{}, count)

	for _, q := range unsent {
		if len(selected) == count {
			break
		}
		if _, used := difficulties[q.Difficulty]; used {
			continue
		}
		difficulties[q.Difficulty] = struct{}{}
		chosen[q.ID] = struct{}{}
		selected = append(selected, q)
	}

	for _, q := range unsent {
		if len(selected) == count {
			break
		}
		if _, ok := chosen[q.ID]; ok {
			continue
		}
		chosen[q.ID] = struct{}{}
		selected = append(selected, q)
	}

	return selected
}
