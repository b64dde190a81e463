package digest

import (
	"context"
	"dailyq/internal/journal"
	"dailyq/internal/notify"
	"dailyq/internal/progress"
	"dailyq/internal/question"
	"dailyq/internal/rank"
	"dailyq/internal/selector"
	"fmt"
	"log/slog"
)

// Result summarizes one run.
type Result struct {
	// Sent — questions delivered in this run.
	Sent []question.Question
	// TotalSent — delivered questions across all runs after this one.
	TotalSent int
	// Remaining — unsent questions left in the ranked list after this run.
	Remaining int
	// Done — nothing was left to send.
	Done bool
}

// Runner performs the daily delivery: select the next batch, deliver it and record it.
// Progress is updated only after a successful delivery, so a failed batch is offered
// again on the next run.
type Runner struct {
	rankedPath string
	progress   *progress.Store
	selector   *selector.Selector
	notifier   notify.Notifier
	journal    journal.Journal
}

// Run executes one delivery. A missing ranked list is reported as rank.ErrNotRanked.
// Running out of questions is not an error: Result.Done is set instead.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	list, err := rank.Load(r.rankedPath)
	if err != nil {
		return Result{}, err
	}

	record, err := r.progress.Load()
	if err != nil {
		return Result{}, err
	}
	sent := record.SentSet()
	remaining := rank.CountUnsent(list.Questions, sent)

	slog.Info("Progress",
		"totalSent", record.TotalSent,
		"available", len(list.Questions),
		"remaining", remaining,
		"rankedAt", list.RankedAt,
	)

	batch := r.selector.Next(list.Questions, sent)
	if len(batch) == 0 {
		slog.Info("All questions completed, nothing left to send")
		return Result{TotalSent: record.TotalSent, Done: true}, nil
	}
	if len(batch) < r.selector.Count() {
		slog.Warn("Fewer unsent questions than batch size", "remaining", len(batch), "batch", r.selector.Count())
	}

	for i, q := range batch {
		slog.Info("Selected question",
			"position", i+1,
			"id", q.ID,
			"title", q.Title,
			"difficulty", q.Difficulty,
			"score", q.PriorityScore,
			"faang", q.AskedByFAANG,
		)
	}

	if err := r.notifier.Notify(ctx, batch); err != nil {
		return Result{}, fmt.Errorf("deliver batch: %w", err)
	}

	record, err = r.progress.MarkSent(question.IDs(batch))
	if err != nil {
		return Result{}, fmt.Errorf("batch delivered but progress not saved: %w", err)
	}
	slog.Info("Progress updated", "totalSent", record.TotalSent)

	if err := r.journal.Append(journal.NewEntry(batch, record.TotalSent)); err != nil {
		// the batch is delivered and recorded in progress, the journal is informational
		slog.Error("Journal write failed", "error", err)
	}

	return Result{
		Sent:      batch,
		TotalSent: record.TotalSent,
		Remaining: remaining - len(batch),
	}, nil
}

// NewRunner creates a runner. A nil journal disables journaling.
func NewRunner(
	rankedPath string,
	progressStore *progress.Store,
	batchSelector *selector.Selector,
	notifier notify.Notifier,
	j journal.Journal,
) *Runner {
	if j == nil {
		j = journal.Nop{}
	}
	return &Runner{
		rankedPath: rankedPath,
		progress:   progressStore,
		selector:   batchSelector,
		notifier:   notifier,
		journal:    j,
	}
}
