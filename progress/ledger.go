package progress

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrUnknownItem       = errors.New("unknown item")
	ErrInvalidTransition = errors.New("invalid progress transition")
)

// Record is the progress state of one workshop item
type Record struct {
	Status      Status
	Progress    int // percent, 0-100
	DisplayName string
	Detail      string // error detail, only kept while Status is StatusError
}

// SynthesizedName is the display name used until the real title is known
func SynthesizedName(id string) string {
	return "Mod-" + id
}

// Observer receives a snapshot after every successful mutation. It runs while
// the ledger lock is held, so it must not call back into the ledger.
type Observer func(Snapshot)

// Ledger is the single source of truth for per-item progress. Every mutation
// and the observer call that follows it happen under one lock.
type Ledger struct {
	mu       sync.Mutex
	order    []string
	records  map[string]Record
	finished map[string]uint64 // terminal sequence numbers
	seq      uint64
	observer Observer
}

// NewLedger creates a ledger with every id in StatusWaiting. Repeated ids are
// ignored. observer may be nil.
func NewLedger(ids []string, observer Observer) *Ledger {
	l := &Ledger{
		order:    make([]string, 0, len(ids)),
		records:  make(map[string]Record, len(ids)),
		finished: make(map[string]uint64),
		observer: observer,
	}
	for _, id := range ids {
		if _, ok := l.records[id]; ok {
			continue
		}
		l.order = append(l.order, id)
		l.records[id] = Record{Status: StatusWaiting, DisplayName: SynthesizedName(id)}
	}
	return l
}

// Len returns the number of tracked items
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// Get returns the current record for id
func (l *Ledger) Get(id string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.records[id]
	return r, ok
}

// Set replaces the record for id
func (l *Ledger) Set(id string, next Record) error {
	return l.Update(id, func(Record) Record { return next })
}

// Update applies fn to the current record for id and stores the result if it
// is a valid transition. fn runs under the ledger lock.
func (l *Ledger) Update(id string, fn func(Record) Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur, ok := l.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}

	next := fn(cur)
	if err := validate(cur, next); err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	if next.Status != StatusError {
		next.Detail = ""
	}
	if next.DisplayName == "" {
		next.DisplayName = cur.DisplayName
	}
	if next.Status.IsTerminal() {
		l.seq++
		l.finished[id] = l.seq
	}

	l.records[id] = next
	if l.observer != nil {
		l.observer(l.snapshotLocked())
	}
	return nil
}

// Snapshot returns an immutable copy of all records in insertion order
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() Snapshot {
	entries := make([]Entry, len(l.order))
	for i, id := range l.order {
		entries[i] = Entry{ID: id, Record: l.records[id], finishedSeq: l.finished[id]}
	}
	return Snapshot{Entries: entries}
}

func validate(cur, next Record) error {
	if !canTransition(cur.Status, next.Status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, next.Status)
	}
	if next.Progress < 0 || next.Progress > 100 {
		return fmt.Errorf("%w: progress %d out of range", ErrInvalidTransition, next.Progress)
	}
	if next.Status != StatusError && next.Progress < cur.Progress {
		return fmt.Errorf("%w: progress %d -> %d", ErrInvalidTransition, cur.Progress, next.Progress)
	}
	return nil
}
