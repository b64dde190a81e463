package journal

import (
	"dailyq/internal/question"

	"github.com/google/uuid"
)

// Entry describes one delivered batch.
type Entry struct {
	RunID     string
	IDs       []int
	Titles    []string
	TotalSent int
}

// NewEntry builds an entry for batch with a fresh run id.
func NewEntry(batch []question.Question, totalSent int) Entry {
	titles := make([]string, len(batch))
	for i := range batch {
		titles[i] = batch[i].Title
	}
	return Entry{
		RunID:     uuid.NewString(),
		IDs:       question.IDs(batch),
		Titles:    titles,
		TotalSent: totalSent,
	}
}

// Journal keeps a record of delivered batches.
type Journal interface {
	Append(entry Entry) error
	Close()
}

// Nop discards entries; used when no journal file is configured.
type Nop struct{}

func (Nop) Append(Entry) error { return nil }

func (Nop) Close() {}
