package model

// DefaultPageLimit is the contacts page size used when none is given
const DefaultPageLimit = 50

// Pagination is the client's view of the contacts paging state. It is kept
// apart from the contacts collection.
type Pagination struct {
	Page        int
	Limit       int
	Total       int
	TotalPages  int
	HasMore     bool
	LoadingMore bool
}

// DefaultPagination is the state before the first page is fetched
func DefaultPagination() Pagination {
	return Pagination{Page: 1, Limit: DefaultPageLimit}
}

// TotalPages returns the number of pages for total items of size limit
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
