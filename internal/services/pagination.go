package services

// Listing endpoints share the same pagination contract: 1-indexed page,
// default page size of 10.
const defaultPageLimit = 10

// PageSkip normalizes a page/limit pair and returns the matching skip and
// limit values for a store query.
func PageSkip(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	return (page - 1) * limit, limit
}
