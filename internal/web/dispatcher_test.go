package web

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcus/ticklist/internal/store"
	"github.com/marcus/ticklist/internal/todo"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *store.Store, string) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ticklist.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	u, err := st.CreateUser("dispatch@test.com", "secret123")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewDispatcher(st), st, u.ID
}

func TestApplyCreateAbsorbedByRefresh(t *testing.T) {
	d, st, uid := newTestDispatcher(t)

	in, err := todo.NewCreate(store.NewTodoID(), "learn reconciliation", time.Time{})
	if err != nil {
		t.Fatalf("build intent: %v", err)
	}
	if _, err := d.Apply(uid, in); err != nil {
		t.Fatalf("apply: %v", err)
	}

	// Succeeded but not yet absorbed: still tracked in flight.
	if n := d.PendingFor(uid); n != 1 {
		t.Fatalf("expected 1 in-flight entry, got %d", n)
	}

	view, failures, err := d.View(uid, todo.FilterAll)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %d", len(failures))
	}
	if len(view.Items) != 1 || view.Items[0].Title != "learn reconciliation" {
		t.Fatalf("unexpected view: %+v", view.Items)
	}

	// The refreshed snapshot reflects the create, so it is pruned.
	if n := d.PendingFor(uid); n != 0 {
		t.Fatalf("expected in-flight set drained, got %d", n)
	}

	items, _ := st.ListTodos(uid)
	if len(items) != 1 {
		t.Fatalf("expected 1 stored todo, got %d", len(items))
	}
}

func TestApplyFailureSurfacedOnce(t *testing.T) {
	d, _, uid := newTestDispatcher(t)

	in, err := todo.NewToggle(store.NewTodoID(), true)
	if err != nil {
		t.Fatalf("build intent: %v", err)
	}
	if _, err := d.Apply(uid, in); !errors.Is(err, todo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, failures, err := d.View(uid, todo.FilterAll)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(failures) != 1 || !errors.Is(failures[0].Err, todo.ErrNotFound) {
		t.Fatalf("expected one not-found failure, got %+v", failures)
	}

	_, failures, err = d.View(uid, todo.FilterAll)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("failure should be surfaced once, got %+v", failures)
	}
}

func TestDiscardSuppressesFailure(t *testing.T) {
	d, _, uid := newTestDispatcher(t)

	in, err := todo.NewDelete(store.NewTodoID())
	if err != nil {
		t.Fatalf("build intent: %v", err)
	}
	h, err := d.Apply(uid, in)
	if !errors.Is(err, todo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	d.Discard(uid, h)

	_, failures, err := d.View(uid, todo.FilterAll)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("discarded failure should not surface, got %+v", failures)
	}
}

func TestPendingToggleRendersOptimistically(t *testing.T) {
	d, st, uid := newTestDispatcher(t)

	id := store.NewTodoID()
	if err := st.CreateTodo(uid, id, "slow network", time.Time{}); err != nil {
		t.Fatalf("create todo: %v", err)
	}

	// Simulate a request still in flight: registered, not yet resolved.
	us := d.state(uid)
	in, err := todo.NewToggle(id, true)
	if err != nil {
		t.Fatalf("build intent: %v", err)
	}
	h := us.inflight.Register(in)

	view, _, err := d.View(uid, todo.FilterAll)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Items) != 1 || !view.Items[0].Complete {
		t.Fatalf("expected optimistic completion, got %+v", view.Items)
	}
	if !view.Items[0].Disabled {
		t.Fatal("expected item disabled while its toggle settles")
	}

	// The store rejects it: the prediction rolls back on the next pass.
	us.inflight.Resolve(h, todo.ErrNotFound)

	view, failures, err := d.View(uid, todo.FilterAll)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(failures) != 1 {
		t.Fatalf("expected one failure, got %d", len(failures))
	}
	if view.Items[0].Complete {
		t.Fatal("expected prediction rolled back after failure")
	}
	if view.Items[0].Disabled {
		t.Fatal("expected item re-enabled after failure drained")
	}
}

func TestViewIsScopedPerUser(t *testing.T) {
	d, st, uid := newTestDispatcher(t)

	other, err := st.CreateUser("other@test.com", "secret123")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	in, err := todo.NewCreate(store.NewTodoID(), "mine only", time.Time{})
	if err != nil {
		t.Fatalf("build intent: %v", err)
	}
	if _, err := d.Apply(uid, in); err != nil {
		t.Fatalf("apply: %v", err)
	}

	view, _, err := d.View(other.ID, todo.FilterAll)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty view for other user, got %+v", view.Items)
	}
}
