package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"09:00", 9, 0, true},
		{"23:59", 23, 59, true},
		{"00:00", 0, 0, true},
		{"24:00", 0, 0, false},
		{"12:60", 0, 0, false},
		{"9:00", 0, 0, false},
		{"ab:cd", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			hour, minute, err := ParseTime(c.in)
			if !c.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.hour, hour)
			assert.Equal(t, c.minute, minute)
		})
	}
}

func TestNew_InvalidTimezone(t *testing.T) {
	_, err := New("Not/AZone")
	assert.Error(t, err)
}

func TestScheduler_Schedule(t *testing.T) {
	s, err := New("UTC")
	require.NoError(t, err)

	assert.True(t, s.Next().IsZero(), "nothing scheduled yet")

	require.NoError(t, s.Schedule("09:30", func() error { return nil }))
	s.Start()
	defer s.Stop()

	next := s.Next()
	require.False(t, next.IsZero())
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 30, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestScheduler_Reschedule(t *testing.T) {
	s, err := New("UTC")
	require.NoError(t, err)

	require.NoError(t, s.Schedule("09:00", func() error { return nil }))
	first := s.entryID
	require.NoError(t, s.Schedule("10:15", func() error { return nil }))

	assert.NotEqual(t, first, s.entryID)
	assert.Len(t, s.cron.Entries(), 1, "previous entry should be removed")

	assert.Error(t, s.Schedule("bad", func() error { return nil }))
}

func TestScheduler_History(t *testing.T) {
	s, err := New("UTC")
	require.NoError(t, err)
	assert.Empty(t, s.History())

	boom := errors.New("smtp down")
	results := []error{nil, boom}
	for _, result := range results {
		s.recorded(func() error { return result })()
	}

	history := s.History()
	require.Len(t, history, 2)
	assert.NoError(t, history[0].Err)
	assert.ErrorIs(t, history[1].Err, boom)
	assert.False(t, history[1].Finished.Before(history[1].Started))
}

func TestScheduler_History_Bounded(t *testing.T) {
	s, err := New("UTC")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < HistorySize+10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.recorded(func() error { return nil })()
			_ = s.History()
		}()
	}
	wg.Wait()

	assert.Len(t, s.History(), HistorySize)
}
