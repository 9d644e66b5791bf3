package annotations

import "sort"

// SortOrder names a presentation ordering. Sorting is a pure view computed
// on read; the stored collections never change order.
type SortOrder string

const (
	// SortByEntry orders by creation time, newest first.
	SortByEntry SortOrder = "entry"
	// SortByPaper orders by reference string, ascending lexicographically.
	SortByPaper SortOrder = "paper"
)

// SortedNotes returns a sorted copy of notes in the given order. Unknown
// orders fall back to entry order.
func SortedNotes(notes []Note, order SortOrder) []Note {
	out := append([]Note(nil), notes...)
	switch order {
	case SortByPaper:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Reference < out[j].Reference
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// SortedQuotes returns a sorted copy of quotes in the given order.
func SortedQuotes(quotes []Quote, order SortOrder) []Quote {
	out := append([]Quote(nil), quotes...)
	switch order {
	case SortByPaper:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Reference < out[j].Reference
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
