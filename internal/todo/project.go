package todo

// ItemView is one reconciled item plus its display-only state.
type ItemView struct {
	Item
	// Disabled is true while the item's own toggle, retitle, or
	// delete is still settling, so the form controls cannot submit
	// the same mutation twice.
	Disabled bool
}

// View holds everything a render pass needs, derived fresh from the
// reconciled list on every recompute.
type View struct {
	Items        []ItemView
	Filter       Filter
	Remaining    int
	AllComplete  bool
	HasCompleted bool
}

// Project derives the display view from a reconciled list, the active
// filter, and the in-flight set. It has no side effects.
func Project(items []Item, f Filter, pending *Inflight) View {
	settling := make(map[string]bool)
	for _, e := range pending.optimistic(KindToggle, KindUpdateTitle, KindDelete) {
		settling[e.Intent.ID] = true
	}

	v := View{Filter: f}
	for _, it := range items {
		if !it.Complete {
			v.Remaining++
		} else {
			v.HasCompleted = true
		}
		if f.Matches(it) {
			v.Items = append(v.Items, ItemView{Item: it, Disabled: settling[it.ID]})
		}
	}
	v.AllComplete = v.Remaining == 0 && len(items) > 0
	return v
}
