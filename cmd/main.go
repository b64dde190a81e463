package main

import (
	"context"
	"dailyq/internal/configuration"
	"dailyq/internal/rank"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
)

const usage = `Usage: dailyq [-config file] <command>

Commands:
  rank      score the dataset and write the ranked list
  send      deliver the next batch of unsent questions
  stats     print delivery progress
  schedule  run send every day at schedule.time until interrupted
`

// prepareLogger configures the global slog logger.
// Accepts a level string (debug, info, warn, warning, error) and installs
// a JSON handler writing to os.Stdout. Unknown levels fall back to Info.
func prepareLogger(level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// Any failure while loading the configuration or running the command exits with code 1.
// Running out of questions is not a failure.
func main() {
	// secrets may come from .env; a missing file is fine
	_ = godotenv.Load()

	configPath := flag.String("config", "", "configuration file (defaults and environment only when empty)")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	config, err := configuration.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}
	prepareLogger(config.Logger.Level)

	appCtx, appCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer appCancel()

	switch command := flag.Arg(0); command {
	case "rank":
		err = runRank(config)
	case "send":
		err = runSendCommand(appCtx, config)
	case "stats":
		err = printStats(os.Stdout, config)
	case "schedule":
		err = runSchedule(appCtx, config)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, rank.ErrNotRanked) {
			slog.Error("Ranked list not found, run the rank command first", "error", err)
		} else {
			slog.Error("Command failed", "command", flag.Arg(0), "error", err)
		}
		appCancel()
		os.Exit(1)
	}
}
