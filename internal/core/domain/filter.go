package domain

// CategoryAll disables the category constraint.
const CategoryAll = "All"

// SizeOptions are the selectable size chips.
var SizeOptions = []string{"XS", "S", "M", "L", "XL"}

// A FilterState holds the user-selected constraints narrowing the catalog.
//
// Zero values of Query, Sizes, MinPrice and MaxPrice mean no constraint.
// Category must be [CategoryAll] to disable the category constraint,
// use [DefaultFilter] to get a state without constraints.
type FilterState struct {
	Query    string
	Category string
	Sizes    []string
	MinPrice *int64
	MaxPrice *int64
}

func DefaultFilter() FilterState {
	return FilterState{Category: CategoryAll}
}

// ToggleSize adds size to the selection or removes it when already selected.
func (f *FilterState) ToggleSize(size string) {
	for i, s := range f.Sizes {
		if s == size {
			f.Sizes = append(f.Sizes[:i:i], f.Sizes[i+1:]...)
			return
		}
	}
	f.Sizes = append(f.Sizes, size)
}

// HasSize reports whether size is selected.
func (f FilterState) HasSize(size string) bool {
	for _, s := range f.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (f FilterState) Clone() FilterState {
	c := f
	c.Sizes = append([]string(nil), f.Sizes...)
	if f.MinPrice != nil {
		v := *f.MinPrice
		c.MinPrice = &v
	}
	if f.MaxPrice != nil {
		v := *f.MaxPrice
		c.MaxPrice = &v
	}
	return c
}
