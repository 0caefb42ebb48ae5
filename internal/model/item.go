package model

// Item is the domain model for a todo entry.
// Its address is its position in the list; there is no ID.
type Item struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Toggle flips the completion flag.
func (it *Item) Toggle() { it.Done = !it.Done }

// Equal reports whether two lists hold the same items in the same order.
func Equal(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
