package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// timeLayout is the timestamp format of journal lines.
const timeLayout = "2006-01-02 15:04:05"

// jsonLineHandler is a slog handler that writes each record as one flat JSON object
// with a "time" field and without level or message fields.
type jsonLineHandler struct {
	out   io.Writer
	attrs []slog.Attr
	mu    *sync.Mutex
}

// newJSONLineHandler creates a handler writing JSON lines to out.
func newJSONLineHandler(out io.Writer) *jsonLineHandler {
	return &jsonLineHandler{out: out, mu: &sync.Mutex{}}
}

// Handle serializes a record as a single JSON line.
func (h *jsonLineHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(h.attrs)+1)

	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "" && a.Value.Any() != nil {
			attrs[a.Key] = a.Value.Any()
		}
		return true
	})
	attrs["time"] = r.Time.Format(timeLayout)

	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.out.Write(append(data, '\n'))
	return err
}

// WithAttrs returns a handler that adds attrs to every line.
func (h *jsonLineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &jsonLineHandler{out: h.out, attrs: merged, mu: h.mu}
}

// WithGroup is a no-op: journal lines are always flat.
func (h *jsonLineHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Enabled always returns true, every delivery is recorded.
func (h *jsonLineHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// JsonJournal records delivered batches in a JSON lines file
// with rotation and compression via lumberjack.
type JsonJournal struct {
	lumberjack *lumberjack.Logger
	handler    slog.Handler
	now        func() time.Time
}

// Append writes one line for the delivered batch and reports write failures.
func (j *JsonJournal) Append(entry Entry) error {
	r := slog.NewRecord(j.now(), slog.LevelInfo, "", 0)
	r.AddAttrs(
		slog.String("run", entry.RunID),
		slog.Any("ids", entry.IDs),
		slog.Any("titles", entry.Titles),
		slog.Int("totalSent", entry.TotalSent),
	)
	if err := j.handler.Handle(context.Background(), r); err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (j *JsonJournal) Close() {
	j.lumberjack.Close()
}

// NewJsonJournal creates a journal.
// Parameters:
// - file: path to the journal file
// - maxSize: maximum file size in MB before rotation
// - maxBackups: maximum number of rotated files to keep
func NewJsonJournal(file string, maxSize, maxBackups int) *JsonJournal {
	j := JsonJournal{now: time.Now}
	j.lumberjack = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   true,
	}
	j.handler = newJSONLineHandler(j.lumberjack)
	return &j
}
