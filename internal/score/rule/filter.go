package rule

import (
	"dailyq/internal/question"
	"log/slog"
)

// Filter keeps the questions satisfying every rule, preserving order.
// A rule that fails to evaluate does not exclude the question; the error is logged.
func Filter(rules []Rule, questions []question.Question) []question.Question {
	if len(rules) == 0 {
		return questions
	}

	result := make([]question.Question, 0, len(questions))
	for _, q := range questions {
		if eligible(rules, q) {
			result = append(result, q)
		}
	}

	slog.Debug("eligibility rules applied", "rules", len(rules), "before", len(questions), "after", len(result))
	return result
}

func eligible(rules []Rule, q question.Question) bool {
	for i := range rules {
		ok, err := rules[i].Eval(q)
		if err != nil {
			slog.Error("rule eval", "error", err, "rule", rules[i].Name, "id", q.ID)
			continue
		}
		if !ok {
			return false
		}
	}
	return true
}
