package domain

import "sort"

// State is the tri-state tag on a single preference item. The zero value means
// the item is untagged; untagged items are omitted from serialized selections.
type State string

// preference states, cycled in this order
const (
	StateUnset State = ""
	StateWants State = "wants"
	StateOkay  State = "okay"
	StateNot   State = "not"
)

// Next returns the state following s in the selection cycle. In restricted mode
// the "not" state is skipped. Unknown states are treated as unset, so the
// operation is total.
func (s State) Next(restricted bool) State {
	switch s {
	case StateUnset:
		return StateWants
	case StateWants:
		return StateOkay
	case StateOkay:
		if restricted {
			return StateUnset
		}
		return StateNot
	case StateNot:
		return StateUnset
	default:
		return StateWants
	}
}

// Valid reports whether s is one of the tagged states.
func (s State) Valid() bool {
	return s == StateWants || s == StateOkay || s == StateNot
}

// Category identifies one of the four fixed selection categories.
type Category string

// selection categories
const (
	CategoryToys     Category = "toys"
	CategoryOutfits  Category = "outfits"
	CategorySettings Category = "settings"
	CategoryKinks    Category = "kinks"
)

// Categories returns all selection categories in presentation order.
func Categories() []Category {
	return []Category{CategoryToys, CategoryKinks, CategoryOutfits, CategorySettings}
}

// Selection maps item names to their tagged state within a single category.
// Items in StateUnset are never stored; a key is present in at most one state.
type Selection map[string]State

// Cycle advances the state of item and returns the new state. Items cycled
// back to unset are removed from the map.
func (sel Selection) Cycle(item string, restricted bool) State {
	next := sel[item].Next(restricted)
	if next == StateUnset {
		delete(sel, item)
		return StateUnset
	}
	sel[item] = next
	return next
}

// Set assigns a state to item directly, removing the item when unset.
func (sel Selection) Set(item string, state State) {
	if state == StateUnset {
		delete(sel, item)
		return
	}
	sel[item] = state
}

// Groups splits the selection into normalized wants/okay/avoid lists, sorted
// for stable output.
func (sel Selection) Groups() Grouped {
	var g Grouped
	for item, state := range sel {
		switch state {
		case StateWants:
			g.Wants = append(g.Wants, item)
		case StateOkay:
			g.Okay = append(g.Okay, item)
		case StateNot:
			g.Avoid = append(g.Avoid, item)
		}
	}
	sort.Strings(g.Wants)
	sort.Strings(g.Okay)
	sort.Strings(g.Avoid)
	return g
}

// Clone returns an independent copy of the selection.
func (sel Selection) Clone() Selection {
	c := make(Selection, len(sel))
	for k, v := range sel {
		c[k] = v
	}
	return c
}

// Grouped is the normalized view of a category selection, emitted on every
// change and consumed by the prompt assembler.
type Grouped struct {
	Wants []string `json:"wants"`
	Okay  []string `json:"okay"`
	Avoid []string `json:"not"`
}

// Empty reports whether no item is tagged wants or okay.
func (g Grouped) Empty() bool {
	return len(g.Wants) == 0 && len(g.Okay) == 0
}
