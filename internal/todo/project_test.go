package todo

import (
	"testing"
)

func TestProjectRemainingCount(t *testing.T) {
	items := []Item{
		{ID: "a", Complete: false, CreatedAt: ts(0)},
		{ID: "b", Complete: true, CreatedAt: ts(1)},
		{ID: "c", Complete: false, CreatedAt: ts(2)},
	}
	v := Project(items, FilterAll, NewInflight())

	if v.Remaining != 2 {
		t.Fatalf("expected remaining=2, got %d", v.Remaining)
	}
	if v.AllComplete {
		t.Fatal("expected allComplete=false")
	}
	if !v.HasCompleted {
		t.Fatal("expected hasCompleted=true")
	}
}

func TestProjectAllComplete(t *testing.T) {
	items := []Item{
		{ID: "a", Complete: true, CreatedAt: ts(0)},
		{ID: "b", Complete: true, CreatedAt: ts(1)},
	}
	if v := Project(items, FilterAll, NewInflight()); !v.AllComplete {
		t.Fatal("expected allComplete=true")
	}
	// An empty list is never "all complete".
	if v := Project(nil, FilterAll, NewInflight()); v.AllComplete {
		t.Fatal("expected allComplete=false for empty list")
	}
}

func TestProjectFilters(t *testing.T) {
	items := []Item{
		{ID: "a", Complete: false, CreatedAt: ts(0)},
		{ID: "b", Complete: true, CreatedAt: ts(1)},
	}

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"a", "b"}},
		{FilterActive, []string{"a"}},
		{FilterComplete, []string{"b"}},
	}
	for _, tt := range tests {
		v := Project(items, tt.filter, NewInflight())
		if len(v.Items) != len(tt.want) {
			t.Fatalf("%s: expected %d items, got %d", tt.filter, len(tt.want), len(v.Items))
		}
		for i, id := range tt.want {
			if v.Items[i].ID != id {
				t.Fatalf("%s: expected %s at %d, got %s", tt.filter, id, i, v.Items[i].ID)
			}
		}
	}
}

func TestProjectDisabledWhileSettling(t *testing.T) {
	items := []Item{
		{ID: "a", CreatedAt: ts(0)},
		{ID: "b", CreatedAt: ts(1)},
	}
	pending := NewInflight()
	pending.Register(mustToggle(t, "a", true))

	v := Project(items, FilterAll, pending)
	if !v.Items[0].Disabled {
		t.Fatal("expected item with pending toggle to be disabled")
	}
	if v.Items[1].Disabled {
		t.Fatal("expected untouched item to stay enabled")
	}
}

func TestProjectPendingCreateStaysInteractive(t *testing.T) {
	// A create in flight does not disable its own item: the real
	// generated id makes it immediately targetable.
	pending := NewInflight()
	pending.Register(mustCreate(t, "n1", "new", ts(1)))

	items := Reconcile(nil, pending)
	v := Project(items, FilterAll, pending)
	if len(v.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(v.Items))
	}
	if v.Items[0].Disabled {
		t.Fatal("pending create must not disable its item")
	}
}
