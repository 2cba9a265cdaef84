package listview

// State is the serializable view state of one list page: search term, named
// filters, and pagination. Transitions are value-returning reducers so stale
// copies can never leak mutations across views.
type State struct {
	Search   string            `json:"search"`
	Filters  map[string]string `json:"filters,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// NewState returns an empty view state on page 1. A zero pageSize means
// the view is unpaginated.
func NewState(pageSize int) State {
	if pageSize < 0 {
		pageSize = 0
	}
	return State{Page: 1, PageSize: pageSize}
}

// WithSearch sets the search term. Changing any criterion resets to page 1.
func (s State) WithSearch(term string) State {
	next := s.clone()
	next.Search = term
	next.Page = 1
	return next
}

// WithFilter sets a named filter value; an empty value clears the filter.
// Resets to page 1.
func (s State) WithFilter(name, value string) State {
	next := s.clone()
	if value == "" {
		delete(next.Filters, name)
	} else {
		next.Filters[name] = value
	}
	next.Page = 1
	return next
}

// WithPage moves to the given page without touching filters
func (s State) WithPage(page int) State {
	next := s.clone()
	if page < 1 {
		page = 1
	}
	next.Page = page
	return next
}

// Filter returns the named filter value, or empty when unset
func (s State) Filter(name string) string {
	return s.Filters[name]
}

func (s State) clone() State {
	filters := make(map[string]string, len(s.Filters))
	for k, v := range s.Filters {
		filters[k] = v
	}
	s.Filters = filters
	return s
}
