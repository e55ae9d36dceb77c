package viewstate

// Modal holds at most one selected record and whether the dialog is shown.
// Closing keeps the selection until the next Open replaces it.
type Modal[T any] struct {
	selected T
	has      bool
	open     bool
}

func (m *Modal[T]) Open(v T) {
	m.selected = v
	m.has = true
	m.open = true
}

func (m *Modal[T]) Close() {
	m.open = false
}

func (m *Modal[T]) IsOpen() bool {
	return m.open
}

// Selected returns the last opened record, if any.
func (m *Modal[T]) Selected() (T, bool) {
	return m.selected, m.has
}
