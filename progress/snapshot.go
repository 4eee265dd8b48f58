package progress

import "sort"

// Entry is one item in a snapshot
type Entry struct {
	ID     string
	Record Record

	finishedSeq uint64
}

// Name returns the display name, falling back to the synthesized one
func (e Entry) Name() string {
	if e.Record.DisplayName != "" {
		return e.Record.DisplayName
	}
	return SynthesizedName(e.ID)
}

// Snapshot is a point-in-time copy of the ledger
type Snapshot struct {
	Entries []Entry
}

// Counts tallies the snapshot by status group
type Counts struct {
	Waiting   int
	Active    int
	Completed int
	Errored   int
}

// Finished returns the number of items in a terminal state
func (c Counts) Finished() int {
	return c.Completed + c.Errored
}

// Counts tallies entries by status
func (s Snapshot) Counts() Counts {
	var c Counts
	for _, e := range s.Entries {
		switch {
		case e.Record.Status == StatusCompleted:
			c.Completed++
		case e.Record.Status == StatusError:
			c.Errored++
		case e.Record.Status.IsActive():
			c.Active++
		default:
			c.Waiting++
		}
	}
	return c
}

// Pending returns every non-terminal entry in insertion order
func (s Snapshot) Pending() []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if !e.Record.Status.IsTerminal() {
			out = append(out, e)
		}
	}
	return out
}

// RecentlyCompleted returns up to n completed entries, most recent last
func (s Snapshot) RecentlyCompleted(n int) []Entry {
	if n <= 0 {
		return nil
	}
	done := s.finishedWith(StatusCompleted)
	if len(done) > n {
		done = done[len(done)-n:]
	}
	return done
}

// Errors returns every errored entry in the order they failed
func (s Snapshot) Errors() []Entry {
	return s.finishedWith(StatusError)
}

// Get returns the entry for id
func (s Snapshot) Get(id string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (s Snapshot) finishedWith(status Status) []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if e.Record.Status == status {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].finishedSeq < out[j].finishedSeq })
	return out
}
