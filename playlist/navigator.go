package playlist

// Navigator is the sidebar's view of the playlist: the active filter and
// search query, the items they leave, and which of those is selected.
type Navigator struct {
	all     []Item
	filters *Filters
	filter  string
	query   string
	view    []Item
	index   int
}

// NewNavigator starts on the "all" filter at the first item.
func NewNavigator(items []Item, filters *Filters) *Navigator {
	if filters == nil {
		filters, _ = NewFilters(nil, nil)
	}
	n := &Navigator{all: items, filters: filters, filter: CategoryAll}
	n.refresh()
	return n
}

func (n *Navigator) refresh() {
	n.view = n.filters.Apply(n.all, n.filter, n.query)
	n.index = clampIndex(n.index, len(n.view))
}

// SetItems swaps the playlist, keeping the selection on the same item when
// it survives.
func (n *Navigator) SetItems(items []Item) {
	cur, ok := n.Current()
	n.all = items
	n.refresh()
	if !ok {
		return
	}
	if i := IndexOf(n.view, cur.ID); i >= 0 {
		n.index = i
	}
}

// SetFilters swaps the preset set and re-applies the active filter.
func (n *Navigator) SetFilters(f *Filters) {
	if f == nil {
		return
	}
	n.filters = f
	n.refresh()
}

// SetFilter changes the filter and selects the first match.
func (n *Navigator) SetFilter(name string) {
	if name == "" {
		name = CategoryAll
	}
	n.filter = name
	n.index = 0
	n.refresh()
}

// SetQuery changes the search text and selects the first match.
func (n *Navigator) SetQuery(q string) {
	n.query = q
	n.index = 0
	n.refresh()
}

// Select moves to i, clamped into range.
func (n *Navigator) Select(i int) (Item, bool) {
	n.index = clampIndex(i, len(n.view))
	return n.Current()
}

// Next moves forward, wrapping to the first item.
func (n *Navigator) Next() (Item, bool) {
	return n.step(1)
}

// Prev moves back, wrapping to the last item.
func (n *Navigator) Prev() (Item, bool) {
	return n.step(-1)
}

func (n *Navigator) step(d int) (Item, bool) {
	if len(n.view) == 0 {
		return Item{}, false
	}
	n.index = ((n.index+d)%len(n.view) + len(n.view)) % len(n.view)
	return n.Current()
}

// Current returns the selected item.
func (n *Navigator) Current() (Item, bool) {
	if len(n.view) == 0 {
		return Item{}, false
	}
	return n.view[n.index], true
}

func (n *Navigator) Items() []Item { return n.view }
func (n *Navigator) All() []Item { return n.all }
func (n *Navigator) Index() int { return n.index }
func (n *Navigator) Filter() string { return n.filter }
func (n *Navigator) Query() string { return n.query }
func (n *Navigator) Options() []Option { return n.filters.Options(n.all) }
func (n *Navigator) State() State { return State{Filter: n.filter, Index: n.index} }

// Restore applies a saved state. An unknown filter falls back to "all".
func (n *Navigator) Restore(s State) {
	n.filter = CategoryAll
	if n.filters.Has(n.all, s.Filter) {
		n.filter = s.Filter
	}
	n.index = s.Index
	n.refresh()
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
