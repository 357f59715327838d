package todo

import (
	"sync"
)

// State is the lifecycle state of an in-flight intent.
type State int

const (
	// StatePending means the request has been sent but not resolved.
	StatePending State = iota
	// StateSucceeded means the store confirmed the mutation but a
	// fresh confirmed snapshot has not absorbed it yet. The intent
	// stays optimistic until then so the display never flickers back.
	StateSucceeded
	// StateFailed means the store rejected the mutation. The entry is
	// kept only until its error has been surfaced once.
	StateFailed
)

// Handle identifies one registered intent for the lifetime of its
// settlement.
type Handle int64

// Entry pairs an intent with its lifecycle state.
type Entry struct {
	Handle Handle
	Intent Intent
	State  State
	Err    error // set when State == StateFailed
}

// Optimistic reports whether the entry's predicted effect should be
// applied by the reconciler.
func (e Entry) Optimistic() bool {
	return e.State != StateFailed
}

// Inflight tracks the mutation intents currently pending, just
// confirmed, or just failed for one user. Entries keep registration
// order, which the reconciler relies on for last-write-wins within an
// item and for stable ordering of concurrent creates.
//
// Only two call sites mutate an Inflight: the handler that originates
// a mutation (Register) and the completion callback that settles it
// (Resolve). Methods are safe for concurrent use.
type Inflight struct {
	mu      sync.Mutex
	next    Handle
	entries []*Entry
}

// NewInflight creates an empty in-flight mutation set.
func NewInflight() *Inflight {
	return &Inflight{}
}

// Register adds a new pending entry and returns its handle. Intents of
// any mix of kinds may be pending at once.
func (f *Inflight) Register(in Intent) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.entries = append(f.entries, &Entry{Handle: f.next, Intent: in, State: StatePending})
	return f.next
}

// Resolve settles a pending entry: Succeeded when err is nil, Failed
// otherwise. Resolving an unknown or already-settled handle is a no-op.
func (f *Inflight) Resolve(h Handle, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.Handle == h && e.State == StatePending {
			if err != nil {
				e.State = StateFailed
				e.Err = err
			} else {
				e.State = StateSucceeded
			}
			return
		}
	}
}

// Prune removes an entry once its effect has been absorbed into a
// confirmed snapshot, preventing double application.
func (f *Inflight) Prune(h Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.Handle == h {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}

// Entries returns all entries in registration order.
func (f *Inflight) Entries() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Entry, len(f.entries))
	for i, e := range f.entries {
		out[i] = *e
	}
	return out
}

// optimistic returns the entries whose predicted effect applies,
// optionally filtered by kind, in registration order.
func (f *Inflight) optimistic(kinds ...Kind) []Entry {
	var out []Entry
	for _, e := range f.Entries() {
		if !e.Optimistic() {
			continue
		}
		if len(kinds) == 0 {
			out = append(out, e)
			continue
		}
		for _, k := range kinds {
			if e.Intent.Kind == k {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Len returns the number of tracked entries.
func (f *Inflight) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// TakeFailures removes and returns all failed entries in registration
// order. Each failure is surfaced exactly once; a retry is a brand-new
// intent. Failed creates keep the typed title so the input can be
// restored for correction.
func (f *Inflight) TakeFailures() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var failed []Entry
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.State == StateFailed {
			failed = append(failed, *e)
		} else {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return failed
}

// PruneReflected drops every succeeded entry whose effect is already
// visible in the confirmed snapshot. Pending entries are never pruned:
// their requests are still in flight and the snapshot may predate them.
func (f *Inflight) PruneReflected(confirmed []Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.State == StateSucceeded && reflectedIn(e.Intent, confirmed) {
			continue
		}
		kept = append(kept, e)
	}
	f.entries = kept
}

// reflectedIn reports whether the snapshot already shows the intent's
// effect.
func reflectedIn(in Intent, confirmed []Item) bool {
	find := func(id string) *Item {
		for i := range confirmed {
			if confirmed[i].ID == id {
				return &confirmed[i]
			}
		}
		return nil
	}

	switch in.Kind {
	case KindCreate:
		return find(in.ID) != nil
	case KindToggle:
		it := find(in.ID)
		return it == nil || it.Complete == in.Complete
	case KindUpdateTitle:
		it := find(in.ID)
		return it == nil || it.Title == in.Title
	case KindDelete:
		return find(in.ID) == nil
	case KindToggleAll:
		for _, it := range confirmed {
			if it.Complete != in.Complete {
				return false
			}
		}
		return true
	case KindDeleteCompleted:
		for _, it := range confirmed {
			if it.Complete {
				return false
			}
		}
		return true
	}
	return false
}
