package todo

import (
	"sort"
)

// Reconcile merges the last confirmed snapshot with the predicted
// effects of every optimistic in-flight intent and returns the list to
// display. It is pure: inputs are never mutated, and calling it twice
// with the same snapshot and set yields the same list.
//
// Passes run in a fixed order; later passes operate on the output of
// earlier ones:
//
//	1. defensive copy of confirmed
//	2. deleteCompleted drops completed items
//	3. toggleAll sets every remaining item (last registered wins)
//	4. per-item deletes remove their targets
//	5. per-item toggles in registration order (later wins, and a
//	   per-item toggle overrides toggleAll for that id; a deleted id
//	   is a no-op, so delete wins)
//	6. per-item title updates, same precedence rules
//	7. creates not yet present in confirmed append a synthesized
//	   item; ones already confirmed are settled and skipped so the
//	   item never renders twice
//	8. stable sort by CreatedAt ascending; ties keep submission order
//
// Failed intents are never applied, so a failure reverts the display
// to confirmed-plus-remaining-pending on the next recompute.
func Reconcile(confirmed []Item, pending *Inflight) []Item {
	items := make([]Item, len(confirmed))
	copy(items, confirmed)

	confirmedIDs := make(map[string]bool, len(confirmed))
	for _, it := range confirmed {
		confirmedIDs[it.ID] = true
	}

	// Pass 2: bulk clear of completed items.
	if len(pending.optimistic(KindDeleteCompleted)) > 0 {
		kept := items[:0]
		for _, it := range items {
			if !it.Complete {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	// Pass 3: bulk toggle.
	for _, e := range pending.optimistic(KindToggleAll) {
		for i := range items {
			items[i].Complete = e.Intent.Complete
		}
	}

	// Pass 4: per-item deletes. The deleted set also masks later
	// passes so a delete wins over any other intent on the same id.
	deleted := make(map[string]bool)
	for _, e := range pending.optimistic(KindDelete) {
		deleted[e.Intent.ID] = true
	}
	if len(deleted) > 0 {
		kept := items[:0]
		for _, it := range items {
			if !deleted[it.ID] {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	// Pass 7 prep: synthesize unconfirmed creates now so passes 5-6
	// can address them; a create's item carries a real generated id
	// and accepts follow-up intents immediately.
	for _, e := range pending.optimistic(KindCreate) {
		if confirmedIDs[e.Intent.ID] || deleted[e.Intent.ID] {
			continue
		}
		items = append(items, e.Intent.item())
	}

	index := func(id string) int {
		for i := range items {
			if items[i].ID == id {
				return i
			}
		}
		return -1
	}

	// Pass 5: per-item toggles, registration order, last write wins.
	for _, e := range pending.optimistic(KindToggle) {
		if i := index(e.Intent.ID); i >= 0 {
			items[i].Complete = e.Intent.Complete
		}
	}

	// Pass 6: per-item title updates, same rules.
	for _, e := range pending.optimistic(KindUpdateTitle) {
		if i := index(e.Intent.ID); i >= 0 {
			items[i].Title = e.Intent.Title
		}
	}

	// Pass 8: display order. Stable, so equal timestamps keep the
	// submission order users typed in.
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt.Before(items[b].CreatedAt)
	})

	return items
}
