package web

import (
	"sync"

	"github.com/marcus/ticklist/internal/store"
	"github.com/marcus/ticklist/internal/todo"
)

// Dispatcher owns the per-user in-flight intent set and the last
// confirmed snapshot. Only two paths mutate the in-flight set: Apply,
// which registers an intent and settles it with the store's verdict,
// and View, which absorbs settled intents into a fresh snapshot.
type Dispatcher struct {
	store *store.Store

	mu    sync.Mutex
	users map[string]*userState
}

type userState struct {
	inflight *todo.Inflight

	mu        sync.Mutex
	confirmed []todo.Item
}

// NewDispatcher creates a Dispatcher backed by the given store.
func NewDispatcher(st *store.Store) *Dispatcher {
	return &Dispatcher{store: st, users: make(map[string]*userState)}
}

// state returns the per-user state, creating it on first use.
func (d *Dispatcher) state(userID string) *userState {
	d.mu.Lock()
	defer d.mu.Unlock()
	us, ok := d.users[userID]
	if !ok {
		us = &userState{inflight: todo.NewInflight()}
		d.users[userID] = us
	}
	return us
}

// Apply registers the intent as pending, applies it to the store, and
// resolves it with the outcome. A succeeded entry stays optimistic
// until a refreshed snapshot absorbs it, so a render racing the store
// write never shows the item flickering back. The handle is returned
// so a caller that reports the outcome itself can discard the entry.
func (d *Dispatcher) Apply(userID string, in todo.Intent) (todo.Handle, error) {
	us := d.state(userID)
	h := us.inflight.Register(in)
	err := d.applyStore(userID, in)
	us.inflight.Resolve(h, err)
	return h, err
}

// applyStore executes one intent against the store.
func (d *Dispatcher) applyStore(userID string, in todo.Intent) error {
	switch in.Kind {
	case todo.KindCreate:
		return d.store.CreateTodo(userID, in.ID, in.Title, in.CreatedAt)
	case todo.KindToggle:
		return d.store.SetComplete(userID, in.ID, in.Complete)
	case todo.KindToggleAll:
		return d.store.SetAllComplete(userID, in.Complete)
	case todo.KindUpdateTitle:
		return d.store.SetTitle(userID, in.ID, in.Title)
	case todo.KindDelete:
		return d.store.DeleteTodo(userID, in.ID)
	case todo.KindDeleteCompleted:
		_, err := d.store.DeleteCompleted(userID)
		return err
	default:
		return todo.ErrUnknownIntent
	}
}

// Discard removes an entry whose outcome was already reported to the
// caller, so a failure is not surfaced a second time on the next render.
func (d *Dispatcher) Discard(userID string, h todo.Handle) {
	d.state(userID).inflight.Prune(h)
}

// Refresh replaces the user's confirmed snapshot from the store and
// prunes in-flight entries the snapshot reflects. The snapshot is
// always replaced wholesale, never patched.
func (d *Dispatcher) Refresh(userID string) error {
	items, err := d.store.ListTodos(userID)
	if err != nil {
		return err
	}
	us := d.state(userID)
	us.mu.Lock()
	us.confirmed = items
	us.mu.Unlock()
	us.inflight.PruneReflected(items)
	return nil
}

// View refreshes the snapshot, reconciles pending intents over it, and
// projects the result through the filter. Failed intents are drained
// and returned alongside so each failure is surfaced exactly once.
func (d *Dispatcher) View(userID string, f todo.Filter) (todo.View, []todo.Entry, error) {
	if err := d.Refresh(userID); err != nil {
		return todo.View{}, nil, err
	}
	us := d.state(userID)
	us.mu.Lock()
	confirmed := us.confirmed
	us.mu.Unlock()

	failures := us.inflight.TakeFailures()
	items := todo.Reconcile(confirmed, us.inflight)
	return todo.Project(items, f, us.inflight), failures, nil
}

// PendingFor reports how many unsettled or unabsorbed intents the user
// has.
func (d *Dispatcher) PendingFor(userID string) int {
	return d.state(userID).inflight.Len()
}
