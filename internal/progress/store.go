package progress

import (
	"dailyq/internal/utils"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Record is the persisted delivery progress.
// TotalSent always equals len(SentQuestions).
type Record struct {
	// SentQuestions — ids of every question delivered so far, in delivery order.
	SentQuestions []int `json:"sent_questions"`
	// LastSentDate — time of the last successful delivery, nil before the first one.
	LastSentDate *time.Time `json:"last_sent_date"`
	// TotalSent — number of delivered questions.
	TotalSent int `json:"total_sent"`
}

// SentSet returns the delivered ids as a set for membership tests.
func (r *Record) SentSet() map[int]struct{} {
	set := make(map[int]struct{}, len(r.SentQuestions))
	for _, id := range r.SentQuestions {
		set[id] = struct{}{}
	}
	return set
}

// UnmarshalJSON accepts last_sent_date with or without a zone offset.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	aux := struct {
		*plain
		LastSentDate *string `json:"last_sent_date"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.LastSentDate = nil
	if aux.LastSentDate != nil && *aux.LastSentDate != "" {
		t, err := utils.ParseTimestamp(*aux.LastSentDate)
		if err != nil {
			return fmt.Errorf("last_sent_date: %w", err)
		}
		r.LastSentDate = &t
	}
	return nil
}

// Stats is a read-only view of the progress.
type Stats struct {
	TotalSent int
	LastSent  *time.Time
	SentIDs   []int
	// Recent — the last RecentSize delivered ids, oldest first.
	Recent []int
}

// RecentSize bounds Stats.Recent.
const RecentSize = 10

// Store keeps the progress record in a single JSON file.
// It is not safe for concurrent use by several processes.
type Store struct {
	path string
	now  func() time.Time
}

// Load returns the persisted record, or an empty one when the file does not exist yet.
// Duplicate ids left by hand edits are collapsed and TotalSent is recomputed.
func (s *Store) Load() (Record, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{SentQuestions: []int{}}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("read progress: %w", err)
	}

	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return Record{}, fmt.Errorf("decode progress: %w", err)
	}

	record.SentQuestions = appendUnique(make([]int, 0, len(record.SentQuestions)), map[int]struct{}{}, record.SentQuestions)
	record.TotalSent = len(record.SentQuestions)
	return record, nil
}

// Save overwrites the progress file with record.
func (s *Store) Save(record Record) error {
	if record.SentQuestions == nil {
		record.SentQuestions = []int{}
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}

// MarkSent records ids as delivered and persists the result.
// Already recorded ids are ignored, so repeated calls with the same ids are no-ops
// apart from the last-sent timestamp.
func (s *Store) MarkSent(ids []int) (Record, error) {
	record, err := s.Load()
	if err != nil {
		return Record{}, err
	}

	record.SentQuestions = appendUnique(record.SentQuestions, record.SentSet(), ids)
	now := s.now()
	record.LastSentDate = &now
	record.TotalSent = len(record.SentQuestions)

	if err := s.Save(record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Stats returns the delivered count, last delivery time and delivered ids.
func (s *Store) Stats() (Stats, error) {
	record, err := s.Load()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalSent: record.TotalSent,
		LastSent:  record.LastSentDate,
		SentIDs:   record.SentQuestions,
		Recent:    record.SentQuestions[max(0, len(record.SentQuestions)-RecentSize):],
	}, nil
}

func appendUnique(dst []int, seen map[int]struct{}, ids []int) []int {
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		dst = append(dst, id)
	}
	return dst
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}
