package ledger

// Page slices an already-sorted record set into its pageNum-th fixed-size
// page, 0-indexed. The range is clamped to the sequence length, so a page
// past the end is empty rather than a bounds failure. pageSize must be
// positive; validating it (and pageNum against PageCount) is the caller's
// job, the view itself is pure and total.
func Page[T any](records []T, pageSize, pageNum int) []T {
	start := pageNum * pageSize
	if start < 0 || start >= len(records) {
		return nil
	}

	end := min(start+pageSize, len(records))

	return records[start:end]
}

// PageCount returns ceil(total/pageSize).
func PageCount(total, pageSize int) int {
	return (total + pageSize - 1) / pageSize
}
