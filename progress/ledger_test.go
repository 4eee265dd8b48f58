package progress

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setStatus(s Status, p int) func(Record) Record {
	return func(r Record) Record {
		r.Status = s
		r.Progress = p
		return r
	}
}

func TestNewLedger_AllWaiting(t *testing.T) {
	l := NewLedger([]string{"111", "222", "111"}, nil)

	assert.Equal(t, 2, l.Len())
	for _, id := range []string{"111", "222"} {
		r, ok := l.Get(id)
		require.True(t, ok)
		assert.Equal(t, StatusWaiting, r.Status)
		assert.Equal(t, 0, r.Progress)
		assert.Equal(t, "Mod-"+id, r.DisplayName)
	}

	snap := l.Snapshot()
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "111", snap.Entries[0].ID)
	assert.Equal(t, "222", snap.Entries[1].ID)
}

func TestLedger_HappyPath(t *testing.T) {
	l := NewLedger([]string{"111"}, nil)

	require.NoError(t, l.Update("111", setStatus(StatusDownloading, 0)))
	require.NoError(t, l.Update("111", setStatus(StatusDownloading, 45)))
	require.NoError(t, l.Update("111", setStatus(StatusMoving, 95)))
	require.NoError(t, l.Update("111", func(r Record) Record {
		r.Status = StatusCompleted
		r.Progress = 100
		r.DisplayName = "Better Maps"
		return r
	}))

	r, _ := l.Get("111")
	assert.Equal(t, StatusCompleted, r.Status)
	assert.Equal(t, 100, r.Progress)
	assert.Equal(t, "Better Maps", r.DisplayName)
}

func TestLedger_RejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup []func(Record) Record
		next  func(Record) Record
	}{
		{"skip downloading", nil, setStatus(StatusMoving, 95)},
		{"waiting to completed", nil, setStatus(StatusCompleted, 100)},
		{"moving back to downloading", []func(Record) Record{setStatus(StatusDownloading, 0), setStatus(StatusMoving, 95)}, setStatus(StatusDownloading, 95)},
		{"progress decreases", []func(Record) Record{setStatus(StatusDownloading, 50)}, setStatus(StatusDownloading, 40)},
		{"progress over 100", []func(Record) Record{setStatus(StatusDownloading, 0)}, setStatus(StatusDownloading, 101)},
		{"leave completed", []func(Record) Record{setStatus(StatusDownloading, 0), setStatus(StatusMoving, 95), setStatus(StatusCompleted, 100)}, setStatus(StatusError, 0)},
		{"leave error", []func(Record) Record{setStatus(StatusDownloading, 10), setStatus(StatusError, 10)}, setStatus(StatusDownloading, 10)},
		{"error twice", []func(Record) Record{setStatus(StatusDownloading, 10), setStatus(StatusError, 10)}, setStatus(StatusError, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger([]string{"111"}, nil)
			for _, step := range tt.setup {
				require.NoError(t, l.Update("111", step))
			}
			before, _ := l.Get("111")

			err := l.Update("111", tt.next)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			after, _ := l.Get("111")
			assert.Equal(t, before, after, "rejected update must not change the record")
		})
	}
}

func TestLedger_ErrorMayResetProgress(t *testing.T) {
	l := NewLedger([]string{"111"}, nil)
	require.NoError(t, l.Update("111", setStatus(StatusDownloading, 60)))
	require.NoError(t, l.Update("111", func(r Record) Record {
		r.Status = StatusError
		r.Progress = 0
		r.Detail = "steamcmd exited with code 1"
		return r
	}))

	r, _ := l.Get("111")
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, "steamcmd exited with code 1", r.Detail)
}

func TestLedger_WaitingToError(t *testing.T) {
	l := NewLedger([]string{"111"}, nil)
	require.NoError(t, l.Set("111", Record{Status: StatusError, Detail: "cancelled"}))

	r, _ := l.Get("111")
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, "Mod-111", r.DisplayName, "empty display name keeps the previous one")
}

func TestLedger_DetailOnlyOnError(t *testing.T) {
	l := NewLedger([]string{"111"}, nil)
	require.NoError(t, l.Update("111", func(r Record) Record {
		r.Status = StatusDownloading
		r.Detail = "should be dropped"
		return r
	}))

	r, _ := l.Get("111")
	assert.Empty(t, r.Detail)
}

func TestLedger_UnknownItem(t *testing.T) {
	l := NewLedger([]string{"111"}, nil)
	err := l.Update("999", setStatus(StatusDownloading, 0))
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestLedger_ObserverSeesEveryMutation(t *testing.T) {
	var seen []Snapshot
	l := NewLedger([]string{"111", "222"}, func(s Snapshot) { seen = append(seen, s) })

	require.NoError(t, l.Update("111", setStatus(StatusDownloading, 0)))
	require.NoError(t, l.Update("111", setStatus(StatusDownloading, 5)))
	assert.Error(t, l.Update("111", setStatus(StatusDownloading, 0)))

	require.Len(t, seen, 2, "rejected updates are not published")
	e, ok := seen[1].Get("111")
	require.True(t, ok)
	assert.Equal(t, 5, e.Record.Progress)
}

func TestLedger_ConcurrentUpdatesNeverRegress(t *testing.T) {
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = fmt.Sprintf("%d", 1000+i)
	}

	last := make(map[string]Record)
	var violations []string
	l := NewLedger(ids, func(s Snapshot) {
		// Runs under the ledger lock, so last needs no extra locking
		for _, e := range s.Entries {
			prev, ok := last[e.ID]
			if ok && e.Record.Status < prev.Status {
				violations = append(violations, e.ID+" status regressed")
			}
			if ok && e.Record.Status != StatusError && e.Record.Progress < prev.Progress {
				violations = append(violations, e.ID+" progress regressed")
			}
			last[e.ID] = e.Record
		}
	})

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_ = l.Update(id, setStatus(StatusDownloading, 0))
			for i := 0; i < 30; i++ {
				_ = l.Update(id, func(r Record) Record {
					r.Progress = min(r.Progress+5, 90)
					return r
				})
			}
			_ = l.Update(id, setStatus(StatusMoving, 95))
			_ = l.Update(id, setStatus(StatusCompleted, 100))
		}(id)
	}
	wg.Wait()

	assert.Empty(t, violations)
	c := l.Snapshot().Counts()
	assert.Equal(t, len(ids), c.Completed)
}
