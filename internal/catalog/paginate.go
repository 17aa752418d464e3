package catalog

// Paginate returns the 1-based page of items for the given page size.
// Pages past the end, page < 1 and size < 1 all yield an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	// compare against the page count before multiplying; huge pages overflow
	pages := len(items) / size
	if len(items)%size != 0 {
		pages++
	}
	if page > pages {
		return []T{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
