// Package selection holds the mutable proposal controls: which catalog items
// are included, the active approach, the rush flag and the contingency
// percentage. A State belongs to one actor and is not safe for concurrent use.
package selection

import (
	"proposal-workers/internal/proposal/aggregator"
	"proposal-workers/internal/proposal/catalog"
)

// DefaultContingencyPercentage is the starting contingency buffer.
const DefaultContingencyPercentage = 15

// StarterItems are pre-selected in a new default proposal.
var StarterItems = []string{
	"discovery",
	"uiux-design",
	"core-pages",
	"online-ordering",
	"payment-gateway",
	"google-business",
	"local-seo",
	"analytics-dashboard",
	"gdpr-compliance",
	"hosting-platform",
	"maintenance-support",
}

type State struct {
	catalog     *catalog.Catalog
	selected    map[string]bool
	approach    catalog.Approach
	rush        bool
	contingency int
}

// New returns a state with nothing selected, the no-code approach, no rush
// and the default contingency.
func New(cat *catalog.Catalog) *State {
	return &State{
		catalog:     cat,
		selected:    make(map[string]bool),
		approach:    catalog.NoCode,
		contingency: DefaultContingencyPercentage,
	}
}

// NewDefault returns New with the starter items selected.
func NewDefault(cat *catalog.Catalog) *State {
	s := New(cat)
	for _, id := range StarterItems {
		if cat.Contains(id) {
			s.selected[id] = true
		}
	}
	return s
}

// Toggle flips the inclusion flag of a catalog item. Ids outside the catalog
// are ignored and false is returned.
func (s *State) Toggle(itemID string) bool {
	if !s.catalog.Contains(itemID) {
		return false
	}
	s.selected[itemID] = !s.selected[itemID]
	return true
}

// Select sets the inclusion flag of one catalog item.
func (s *State) Select(itemID string, included bool) bool {
	if !s.catalog.Contains(itemID) {
		return false
	}
	s.selected[itemID] = included
	return true
}

// SetCategory sets every item of a category to included in one step: the new
// selection is built aside and swapped in whole.
func (s *State) SetCategory(categoryID string, included bool) bool {
	ids := s.catalog.CategoryItemIDs(categoryID)
	if ids == nil {
		return false
	}
	next := make(map[string]bool, len(s.selected)+len(ids))
	for id, v := range s.selected {
		next[id] = v
	}
	for _, id := range ids {
		next[id] = included
	}
	s.selected = next
	return true
}

// CategoryCount returns how many of a category's items are selected and how
// many it has. Unknown categories yield (0, 0).
func (s *State) CategoryCount(categoryID string) (selected, total int) {
	ids := s.catalog.CategoryItemIDs(categoryID)
	for _, id := range ids {
		if s.selected[id] {
			selected++
		}
	}
	return selected, len(ids)
}

// SetApproach replaces the approach; invalid approaches are ignored.
func (s *State) SetApproach(a catalog.Approach) bool {
	if !a.Valid() {
		return false
	}
	s.approach = a
	return true
}

func (s *State) SetRush(rush bool) {
	s.rush = rush
}

// SetContingencyPercentage stores n as given. Range checks belong to the caller.
func (s *State) SetContingencyPercentage(n int) {
	s.contingency = n
}

func (s *State) Approach() catalog.Approach { return s.approach }

func (s *State) Rush() bool { return s.rush }

func (s *State) ContingencyPercentage() int { return s.contingency }

func (s *State) Catalog() *catalog.Catalog { return s.catalog }

func (s *State) IsSelected(itemID string) bool {
	return s.selected[itemID]
}

// SelectedIDs lists selected item ids in catalog order.
func (s *State) SelectedIDs() []string {
	var ids []string
	s.catalog.Each(func(_ string, it catalog.Item) {
		if s.selected[it.ID] {
			ids = append(ids, it.ID)
		}
	})
	return ids
}

// Inputs captures the aggregator inputs. The selection map is copied.
func (s *State) Inputs() aggregator.Inputs {
	sel := make(map[string]bool, len(s.selected))
	for id, v := range s.selected {
		if v {
			sel[id] = true
		}
	}
	return aggregator.Inputs{
		Selected:              sel,
		Approach:              s.approach,
		Rush:                  s.rush,
		ContingencyPercentage: s.contingency,
	}
}

// Totals recomputes the derived totals for the current state.
func (s *State) Totals() aggregator.Totals {
	return aggregator.Calculate(s.catalog, s.Inputs())
}

// Clone returns an independent copy sharing only the immutable catalog.
func (s *State) Clone() *State {
	c := *s
	c.selected = make(map[string]bool, len(s.selected))
	for id, v := range s.selected {
		c.selected[id] = v
	}
	return &c
}
