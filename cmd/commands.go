package main

import (
	"context"
	"dailyq/internal/configuration"
	"dailyq/internal/dataset"
	"dailyq/internal/digest"
	"dailyq/internal/journal"
	"dailyq/internal/notify"
	"dailyq/internal/progress"
	"dailyq/internal/question"
	"dailyq/internal/rank"
	"dailyq/internal/scheduler"
	"dailyq/internal/score"
	"dailyq/internal/score/rule"
	"dailyq/internal/selector"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
)

// topEntries is the number of ranked questions logged by the rank command.
const topEntries = 20

// runRank loads the dataset, drops premium and ineligible questions,
// scores the rest and writes the ranked list.
func runRank(config *configuration.AppConfig) error {
	questions, err := dataset.Load(config.Files.Dataset)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	loaded := len(questions)

	questions = question.WithoutPremium(questions)

	if config.Files.Rules != "" {
		rules, err := rule.LoadFromFile(config.Files.Rules, question.NewQuestionEnv)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		questions = rule.Filter(rules, questions)
	}

	slog.Info("Dataset loaded", "file", config.Files.Dataset, "rows", loaded, "eligible", len(questions))

	ranker := rank.NewRanker(score.NewWeightedScoreCalculator(config.Weights.Score()))
	list := ranker.Rank(questions)

	if err := rank.Save(config.Files.Ranked, list); err != nil {
		return fmt.Errorf("save ranked list: %w", err)
	}

	summary := rank.Summarize(list, topEntries)
	attrs := []any{"file", config.Files.Ranked, "total", summary.Total, "faang", summary.FAANG}
	for _, difficulty := range summary.Difficulties {
		attrs = append(attrs, strings.ToLower(difficulty), summary.ByDifficulty[difficulty])
	}
	slog.Info("Ranked list saved", attrs...)

	for _, entry := range summary.Top {
		slog.Info("Top question",
			"position", entry.Position,
			"id", entry.ID,
			"title", entry.Title,
			"difficulty", entry.Difficulty,
			"score", entry.Score,
			"faang", entry.FAANG,
		)
	}

	return nil
}

// buildNotifier combines every enabled delivery channel.
func buildNotifier(config *configuration.AppConfig) (notify.Notifier, error) {
	var channels []notify.Notifier

	if config.Mail.Enabled {
		email, err := notify.NewEmailNotifier(notify.EmailConfig{
			Host:     config.Mail.Host,
			Port:     config.Mail.Port,
			Username: config.Mail.Username,
			Password: config.Mail.Password,
			From:     config.Mail.From,
			To:       config.Mail.To,
			SSL:      config.Mail.SSL,
			Timeout:  config.Mail.Timeout,
		})
		if err != nil {
			return nil, err
		}
		channels = append(channels, email)
	}

	if config.Telegram.Enabled {
		telegram, err := notify.NewTelegramNotifier(config.Telegram.Token, config.Telegram.ChatID)
		if err != nil {
			return nil, err
		}
		channels = append(channels, telegram)
	}

	if len(channels) == 0 {
		return nil, fmt.Errorf("no delivery channel enabled: set mail.enabled or telegram.enabled")
	}

	return notify.NewMulti(channels...), nil
}

func buildJournal(config *configuration.AppConfig) journal.Journal {
	if config.Journal.File == "" {
		return journal.Nop{}
	}
	return journal.NewJsonJournal(config.Journal.File, config.Journal.Size, config.Journal.Amount)
}

func newRunner(config *configuration.AppConfig, notifier notify.Notifier, j journal.Journal) *digest.Runner {
	return digest.NewRunner(
		config.Files.Ranked,
		progress.NewStore(config.Files.Progress),
		selector.NewSelector(config.Selection.Count),
		notifier,
		j,
	)
}

func runSendCommand(ctx context.Context, config *configuration.AppConfig) error {
	notifier, err := buildNotifier(config)
	if err != nil {
		return err
	}
	j := buildJournal(config)
	defer j.Close()

	_, err = runSend(ctx, newRunner(config, notifier, j))
	return err
}

func runSend(ctx context.Context, runner *digest.Runner) (digest.Result, error) {
	result, err := runner.Run(ctx)
	if err != nil {
		return result, err
	}

	if result.Done {
		slog.Info("All questions completed", "totalSent", result.TotalSent)
		return result, nil
	}

	slog.Info("Batch delivered",
		"sent", question.IDs(result.Sent),
		"totalSent", result.TotalSent,
		"remaining", result.Remaining,
	)
	return result, nil
}

// printStats writes a human-readable progress report to w.
func printStats(w io.Writer, config *configuration.AppConfig) error {
	stats, err := progress.NewStore(config.Files.Progress).Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Questions sent: %s\n", humanize.Comma(int64(stats.TotalSent)))

	if stats.LastSent == nil {
		fmt.Fprintln(w, "Last sent: never")
	} else {
		fmt.Fprintf(w, "Last sent: %s (%s)\n", stats.LastSent.Format("2006-01-02 15:04"), humanize.Time(*stats.LastSent))
	}

	list, err := rank.Load(config.Files.Ranked)
	if err != nil {
		fmt.Fprintf(w, "Remaining: unknown (%v)\n", err)
	} else {
		record := progress.Record{SentQuestions: stats.SentIDs}
		remaining := rank.CountUnsent(list.Questions, record.SentSet())
		total := rank.CountUnsent(list.Questions, nil)
		fmt.Fprintf(w, "Remaining: %s of %s ranked\n",
			humanize.Comma(int64(remaining)), humanize.Comma(int64(total)))
	}

	if len(stats.Recent) > 0 {
		ids := make([]string, len(stats.Recent))
		for i, id := range stats.Recent {
			ids[i] = fmt.Sprint(id)
		}
		fmt.Fprintf(w, "Recently sent: %s\n", strings.Join(ids, ", "))
	}

	return nil
}

// runSchedule runs the delivery every day until ctx is cancelled.
func runSchedule(ctx context.Context, config *configuration.AppConfig) error {
	notifier, err := buildNotifier(config)
	if err != nil {
		return err
	}
	j := buildJournal(config)
	defer j.Close()

	runner := newRunner(config, notifier, j)

	s, err := scheduler.New(config.Schedule.Timezone)
	if err != nil {
		return err
	}
	err = s.Schedule(config.Schedule.Time, func() error {
		_, err := runSend(ctx, runner)
		if err != nil {
			slog.Error("Scheduled delivery failed", "error", err)
		}
		slog.Info("Next delivery", "at", s.Next())
		return err
	})
	if err != nil {
		return err
	}

	s.Start()
	slog.Info("Scheduler started", "time", config.Schedule.Time, "timezone", config.Schedule.Timezone, "next", s.Next())

	<-ctx.Done()

	s.Stop()

	failed := 0
	history := s.History()
	for _, run := range history {
		if run.Err != nil {
			failed++
		}
	}
	slog.Info("Scheduler stopped", "runs", len(history), "failed", failed)
	return nil
}
