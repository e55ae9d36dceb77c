// Package viewstate holds the presentation state machines of the portfolio
// page. None of them persist anything and all of them are meant to be driven
// from a single goroutine.
package viewstate

// DefaultLookahead is how far above a section's top the viewport may be
// while that section already counts as active.
const DefaultLookahead = 200

// Section is one page section and the offset of its top edge.
type Section struct {
	ID  string
	Top int
}

// SectionTracker follows the scroll position and reports which section the
// navigation should highlight.
type SectionTracker struct {
	sections  []Section
	lookahead int
	active    string
}

// NewSectionTracker starts with the first section active.
func NewSectionTracker(lookahead int, sections ...Section) *SectionTracker {
	t := &SectionTracker{lookahead: lookahead}
	t.SetSections(sections)
	if len(sections) > 0 {
		t.active = sections[0].ID
	}
	return t
}

// SetSections replaces the layout, e.g. after a resize. The active section
// is kept.
func (t *SectionTracker) SetSections(sections []Section) {
	t.sections = append(t.sections[:0], sections...)
}

// OnScroll updates the active section for scroll offset y: the last section
// in page order whose top minus the lookahead is at or above y. When none
// qualifies the previous active section stays.
func (t *SectionTracker) OnScroll(y int) string {
	current := ""
	for _, s := range t.sections {
		if y >= s.Top-t.lookahead {
			current = s.ID
		}
	}
	if current != "" {
		t.active = current
	}
	return t.active
}

func (t *SectionTracker) Active() string {
	return t.active
}

// VisibleRatio returns the fraction of a block of height lines starting at
// top that lies inside the viewport [viewTop, viewTop+viewHeight).
func VisibleRatio(top, height, viewTop, viewHeight int) float64 {
	if height <= 0 || viewHeight <= 0 {
		return 0
	}
	lo := max(top, viewTop)
	hi := min(top+height, viewTop+viewHeight)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(height)
}
