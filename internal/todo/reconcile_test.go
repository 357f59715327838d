package todo

import (
	"reflect"
	"testing"
	"time"
)

func ts(sec int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, sec, 0, time.UTC)
}

func confirmedPair() []Item {
	return []Item{
		{ID: "a", Title: "alpha", Complete: false, CreatedAt: ts(0)},
		{ID: "b", Title: "beta", Complete: false, CreatedAt: ts(1)},
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func mustToggle(t *testing.T, id string, complete bool) Intent {
	t.Helper()
	in, err := NewToggle(id, complete)
	if err != nil {
		t.Fatalf("new toggle: %v", err)
	}
	return in
}

func mustCreate(t *testing.T, id, title string, at time.Time) Intent {
	t.Helper()
	in, err := NewCreate(id, title, at)
	if err != nil {
		t.Fatalf("new create: %v", err)
	}
	return in
}

func TestReconcileEmptyPassthrough(t *testing.T) {
	confirmed := confirmedPair()
	got := Reconcile(confirmed, NewInflight())
	if !reflect.DeepEqual(got, confirmed) {
		t.Fatalf("expected passthrough, got %+v", got)
	}
}

func TestReconcileDoesNotMutateConfirmed(t *testing.T) {
	confirmed := confirmedPair()
	pending := NewInflight()
	pending.Register(NewToggleAll(true))

	Reconcile(confirmed, pending)

	if confirmed[0].Complete || confirmed[1].Complete {
		t.Fatal("confirmed snapshot was mutated")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	confirmed := confirmedPair()
	pending := NewInflight()
	pending.Register(mustToggle(t, "a", true))
	pending.Register(mustCreate(t, "c", "gamma", ts(2)))

	first := Reconcile(confirmed, pending)
	second := Reconcile(confirmed, pending)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reconcile not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestReconcileDeleteWins(t *testing.T) {
	confirmed := []Item{{ID: "a", Complete: false, CreatedAt: ts(0)}}
	pending := NewInflight()
	pending.Register(mustToggle(t, "a", true))
	del, err := NewDelete("a")
	if err != nil {
		t.Fatalf("new delete: %v", err)
	}
	pending.Register(del)

	got := Reconcile(confirmed, pending)
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", ids(got))
	}
}

func TestReconcileLastWriteWinsSameID(t *testing.T) {
	confirmed := []Item{{ID: "a", Complete: false, CreatedAt: ts(0)}}
	pending := NewInflight()
	pending.Register(mustToggle(t, "a", true))
	pending.Register(mustToggle(t, "a", false))

	got := Reconcile(confirmed, pending)
	if len(got) != 1 || got[0].Complete {
		t.Fatalf("expected a.complete=false, got %+v", got)
	}
}

func TestReconcileCreateDedup(t *testing.T) {
	confirmed := []Item{{ID: "x", Title: "confirmed", CreatedAt: ts(0)}}
	pending := NewInflight()
	pending.Register(mustCreate(t, "x", "predicted", ts(0)))

	got := Reconcile(confirmed, pending)
	if len(got) != 1 {
		t.Fatalf("expected exactly one item, got %d", len(got))
	}
	if got[0].Title != "confirmed" {
		t.Fatalf("expected confirmed item to win, got %q", got[0].Title)
	}
}

func TestReconcileToggleAllOverriddenPerItem(t *testing.T) {
	confirmed := confirmedPair()
	pending := NewInflight()
	pending.Register(NewToggleAll(true))
	pending.Register(mustToggle(t, "b", false))

	got := Reconcile(confirmed, pending)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if !got[0].Complete {
		t.Fatalf("expected a.complete=true, got %+v", got[0])
	}
	if got[1].Complete {
		t.Fatalf("expected b.complete=false, got %+v", got[1])
	}
}

func TestReconcileCreateOrderingStable(t *testing.T) {
	pending := NewInflight()
	pending.Register(mustCreate(t, "A", "first", ts(1)))
	pending.Register(mustCreate(t, "B", "second", ts(2)))
	pending.Register(mustCreate(t, "C", "third", ts(3)))

	got := Reconcile(nil, pending)
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected order %v, got %v", want, ids(got))
	}

	// Completion order must not affect display order.
	entries := pending.Entries()
	pending.Resolve(entries[2].Handle, nil)
	pending.Resolve(entries[0].Handle, nil)

	got = Reconcile(nil, pending)
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("after out-of-order completion: expected %v, got %v", want, ids(got))
	}
}

func TestReconcileCreateOrderTiebreakSubmission(t *testing.T) {
	// Identical timestamps: submission order holds.
	pending := NewInflight()
	pending.Register(mustCreate(t, "A", "first", ts(1)))
	pending.Register(mustCreate(t, "B", "second", ts(1)))

	got := Reconcile(nil, pending)
	want := []string{"A", "B"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
}

func TestReconcileDeleteCompletedDropsCompleted(t *testing.T) {
	confirmed := []Item{
		{ID: "a", Complete: true, CreatedAt: ts(0)},
		{ID: "b", Complete: false, CreatedAt: ts(1)},
		{ID: "c", Complete: true, CreatedAt: ts(2)},
	}
	pending := NewInflight()
	pending.Register(NewDeleteCompleted())

	got := Reconcile(confirmed, pending)
	if !reflect.DeepEqual(ids(got), []string{"b"}) {
		t.Fatalf("expected [b], got %v", ids(got))
	}
}

func TestReconcileFailedIntentNotApplied(t *testing.T) {
	confirmed := []Item{{ID: "a", Complete: false, CreatedAt: ts(0)}}
	pending := NewInflight()
	h := pending.Register(mustToggle(t, "a", true))
	pending.Resolve(h, ErrNotFound)

	got := Reconcile(confirmed, pending)
	if got[0].Complete {
		t.Fatal("failed toggle must not be applied")
	}
}

func TestReconcileSucceededStaysAppliedUntilPruned(t *testing.T) {
	// The store confirmed the toggle but the snapshot has not caught
	// up; the prediction must hold so the display never flickers.
	confirmed := []Item{{ID: "a", Complete: false, CreatedAt: ts(0)}}
	pending := NewInflight()
	h := pending.Register(mustToggle(t, "a", true))
	pending.Resolve(h, nil)

	got := Reconcile(confirmed, pending)
	if !got[0].Complete {
		t.Fatal("succeeded toggle must stay applied until pruned")
	}

	pending.Prune(h)
	got = Reconcile(confirmed, pending)
	if got[0].Complete {
		t.Fatal("pruned toggle must no longer be applied")
	}
}

func TestReconcilePendingCreateAcceptsFollowups(t *testing.T) {
	// A predicted create uses its real generated id, so toggles and
	// deletes can target it before the store confirms the insert.
	pending := NewInflight()
	pending.Register(mustCreate(t, "n1", "new item", ts(1)))
	pending.Register(mustToggle(t, "n1", true))

	got := Reconcile(nil, pending)
	if len(got) != 1 || !got[0].Complete {
		t.Fatalf("expected predicted item toggled complete, got %+v", got)
	}

	del, _ := NewDelete("n1")
	pending.Register(del)
	got = Reconcile(nil, pending)
	if len(got) != 0 {
		t.Fatalf("expected delete to mask pending create, got %v", ids(got))
	}
}

func TestReconcileUpdateTitle(t *testing.T) {
	confirmed := []Item{{ID: "a", Title: "old", CreatedAt: ts(0)}}
	pending := NewInflight()
	up, err := NewUpdateTitle("a", "new title")
	if err != nil {
		t.Fatalf("new update: %v", err)
	}
	pending.Register(up)

	got := Reconcile(confirmed, pending)
	if got[0].Title != "new title" {
		t.Fatalf("expected retitled item, got %q", got[0].Title)
	}
}
