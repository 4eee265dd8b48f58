package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finish(t *testing.T, l *Ledger, id string, ok bool) {
	t.Helper()
	require.NoError(t, l.Update(id, setStatus(StatusDownloading, 0)))
	if !ok {
		require.NoError(t, l.Update(id, func(r Record) Record {
			r.Status = StatusError
			r.Detail = "boom " + id
			return r
		}))
		return
	}
	require.NoError(t, l.Update(id, setStatus(StatusMoving, 95)))
	require.NoError(t, l.Update(id, setStatus(StatusCompleted, 100)))
}

func TestSnapshot_Counts(t *testing.T) {
	l := NewLedger([]string{"1", "2", "3", "4", "5"}, nil)
	finish(t, l, "1", true)
	finish(t, l, "2", false)
	require.NoError(t, l.Update("3", setStatus(StatusDownloading, 10)))

	c := l.Snapshot().Counts()
	assert.Equal(t, Counts{Waiting: 2, Active: 1, Completed: 1, Errored: 1}, c)
	assert.Equal(t, 2, c.Finished())
}

func TestSnapshot_RecentlyCompletedUsesFinishOrder(t *testing.T) {
	ids := []string{"1", "2", "3", "4", "5", "6", "7"}
	l := NewLedger(ids, nil)
	for _, id := range []string{"7", "3", "1", "6", "2", "5", "4"} {
		finish(t, l, id, true)
	}

	recent := l.Snapshot().RecentlyCompleted(5)
	require.Len(t, recent, 5)
	got := make([]string, len(recent))
	for i, e := range recent {
		got[i] = e.ID
	}
	assert.Equal(t, []string{"1", "6", "2", "5", "4"}, got)
}

func TestSnapshot_RecentlyCompletedNonPositive(t *testing.T) {
	l := NewLedger([]string{"1", "2"}, nil)
	finish(t, l, "1", true)
	snap := l.Snapshot()

	assert.Empty(t, snap.RecentlyCompleted(0))
	assert.NotPanics(t, func() {
		assert.Empty(t, snap.RecentlyCompleted(-1))
	})
}

func TestSnapshot_PendingAndErrors(t *testing.T) {
	l := NewLedger([]string{"1", "2", "3"}, nil)
	finish(t, l, "2", false)

	pending := l.Snapshot().Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "1", pending[0].ID)
	assert.Equal(t, "3", pending[1].ID)

	errs := l.Snapshot().Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "boom 2", errs[0].Record.Detail)
}

func TestSnapshot_IsACopy(t *testing.T) {
	l := NewLedger([]string{"1"}, nil)
	snap := l.Snapshot()
	require.NoError(t, l.Update("1", setStatus(StatusDownloading, 50)))

	assert.Equal(t, StatusWaiting, snap.Entries[0].Record.Status)
}

func TestEntry_Name(t *testing.T) {
	assert.Equal(t, "Mod-9", Entry{ID: "9"}.Name())
	assert.Equal(t, "Title", Entry{ID: "9", Record: Record{DisplayName: "Title"}}.Name())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Downloading", StatusDownloading.String())
	assert.Equal(t, "Unknown", Status(42).String())
	assert.True(t, StatusError.IsTerminal())
	assert.False(t, StatusMoving.IsTerminal())
	assert.True(t, StatusMoving.IsActive())
	assert.False(t, StatusWaiting.IsActive())
}
