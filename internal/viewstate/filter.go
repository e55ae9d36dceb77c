package viewstate

import "github.com/aTrapDeer/portfolio/internal/models"

// FilterAll shows every item.
const FilterAll = "all"

// Filter keeps the subset of items whose category matches the current
// filter value.
type Filter[T any] struct {
	items    []T
	category func(T) string
	current  string
	visible  []T
}

// NewFilter starts with FilterAll.
func NewFilter[T any](items []T, category func(T) string) *Filter[T] {
	f := &Filter[T]{category: category, current: FilterAll}
	f.SetItems(items)
	return f
}

// NewProjectFilter filters projects by their category.
func NewProjectFilter(projects []models.Project) *Filter[models.Project] {
	return NewFilter(projects, func(p models.Project) string { return p.Category })
}

// SetItems replaces the full set and recomputes the visible subset.
func (f *Filter[T]) SetItems(items []T) {
	f.items = items
	f.recompute()
}

// Set changes the filter value and recomputes the visible subset.
func (f *Filter[T]) Set(value string) []T {
	f.current = value
	f.recompute()
	return f.visible
}

func (f *Filter[T]) Current() string {
	return f.current
}

func (f *Filter[T]) Visible() []T {
	return f.visible
}

func (f *Filter[T]) recompute() {
	if f.current == FilterAll {
		f.visible = f.items
		return
	}
	f.visible = make([]T, 0, len(f.items))
	for _, it := range f.items {
		if f.category(it) == f.current {
			f.visible = append(f.visible, it)
		}
	}
}
