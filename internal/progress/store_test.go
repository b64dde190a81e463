package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 3, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	store := NewStore(filepath.Join(t.TempDir(), "progress.json"))
	store.now = func() time.Time { return fixedNow }
	return store
}

func TestStore_Load_MissingFile(t *testing.T) {
	store := newTestStore(t)

	record, err := store.Load()
	require.NoError(t, err, "missing file is the initial state, not an error")
	assert.Empty(t, record.SentQuestions)
	assert.Nil(t, record.LastSentDate)
	assert.Equal(t, 0, record.TotalSent)
}

func TestStore_Load_Malformed(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("[1,2"), 0o600))

	_, err := store.Load()
	assert.Error(t, err)
}

func TestStore_Load_NaiveTimestamp(t *testing.T) {
	store := newTestStore(t)
	content := `{"sent_questions": [1, 2], "last_sent_date": "2025-01-02T09:00:00.123456", "total_sent": 2}`
	require.NoError(t, os.WriteFile(store.path, []byte(content), 0o600))

	record, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, record.SentQuestions)
	require.NotNil(t, record.LastSentDate)
	assert.Equal(t, time.Date(2025, 1, 2, 9, 0, 0, 123_456_000, time.Local), *record.LastSentDate)

	record, err = store.MarkSent([]int{3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, record.SentQuestions)
	assert.Equal(t, 3, record.TotalSent)

	reloaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastSentDate)
	assert.True(t, fixedNow.Equal(*reloaded.LastSentDate))
}

func TestStore_Load_NullAndInvalidDates(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, os.WriteFile(store.path, []byte(`{"sent_questions": [], "last_sent_date": null, "total_sent": 0}`), 0o600))
	record, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, record.LastSentDate)

	require.NoError(t, os.WriteFile(store.path, []byte(`{"sent_questions": [], "last_sent_date": "soon"}`), 0o600))
	_, err = store.Load()
	assert.Error(t, err)
}

func TestStore_MarkSent(t *testing.T) {
	store := newTestStore(t)

	record, err := store.MarkSent([]int{3, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, record.SentQuestions)
	assert.Equal(t, 2, record.TotalSent)
	require.NotNil(t, record.LastSentDate)
	assert.True(t, fixedNow.Equal(*record.LastSentDate))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, loaded.SentQuestions)
	assert.Equal(t, 2, loaded.TotalSent)
	require.NotNil(t, loaded.LastSentDate)
	assert.True(t, fixedNow.Equal(*loaded.LastSentDate))
}

func TestStore_MarkSent_DuplicatesInOneCall(t *testing.T) {
	store := newTestStore(t)

	record, err := store.MarkSent([]int{7, 7})
	require.NoError(t, err)
	assert.Equal(t, []int{7}, record.SentQuestions)
	assert.Equal(t, 1, record.TotalSent)
}

func TestStore_MarkSent_Idempotent(t *testing.T) {
	once := newTestStore(t)
	twice := newTestStore(t)

	first, err := once.MarkSent([]int{1, 2})
	require.NoError(t, err)

	_, err = twice.MarkSent([]int{1, 2})
	require.NoError(t, err)
	second, err := twice.MarkSent([]int{1, 2})
	require.NoError(t, err)

	assert.Equal(t, first.SentQuestions, second.SentQuestions)
	assert.Equal(t, first.TotalSent, second.TotalSent)
}

func TestStore_MarkSent_Accumulates(t *testing.T) {
	store := newTestStore(t)

	_, err := store.MarkSent([]int{1, 2})
	require.NoError(t, err)
	record, err := store.MarkSent([]int{2, 3})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, record.SentQuestions)
	assert.Equal(t, len(record.SentQuestions), record.TotalSent)
}

func TestStore_Load_RepairsCount(t *testing.T) {
	store := newTestStore(t)
	content := `{"sent_questions": [4, 5, 4], "last_sent_date": null, "total_sent": 10}`
	require.NoError(t, os.WriteFile(store.path, []byte(content), 0o600))

	record, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, record.SentQuestions)
	assert.Equal(t, 2, record.TotalSent)
}

func TestStore_Stats(t *testing.T) {
	store := newTestStore(t)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSent)
	assert.Nil(t, stats.LastSent)

	_, err = store.MarkSent([]int{9})
	require.NoError(t, err)

	stats, err = store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSent)
	assert.Equal(t, []int{9}, stats.SentIDs)
	assert.Equal(t, []int{9}, stats.Recent)
	require.NotNil(t, stats.LastSent)
}

func TestStore_Stats_RecentIsBounded(t *testing.T) {
	store := newTestStore(t)

	ids := make([]int, RecentSize+5)
	for i := range ids {
		ids[i] = i + 1
	}
	_, err := store.MarkSent(ids)
	require.NoError(t, err)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Len(t, stats.Recent, RecentSize)
	assert.Equal(t, 6, stats.Recent[0])
	assert.Equal(t, RecentSize+5, stats.Recent[RecentSize-1])
}

func TestRecord_SentSet(t *testing.T) {
	record := Record{SentQuestions: []int{1, 2}}

	set := record.SentSet()
	assert.Contains(t, set, 1)
	assert.Contains(t, set, 2)
	assert.NotContains(t, set, 3)
}
