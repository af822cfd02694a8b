package shared

// ListFilters represents standard list filters for master data queries.
type ListFilters struct {
	Search          string
	SortBy          string
	SortDir         string
	IncludeInactive bool
	Limit           int
	Offset          int
}
