package scraper

// PageSize is the number of listings the site returns per results page.
const PageSize = 32

// MaxPages counts full pages only. A partial last page is not fetchable.
func MaxPages(count int) int {
	if count < 0 {
		return 0
	}
	return count / PageSize
}

func ValidPages(requested, max int) bool {
	return requested >= 1 && requested <= max
}

// CheckPages is ValidPages with a typed error for the caller to show.
func CheckPages(requested, max int) error {
	if !ValidPages(requested, max) {
		return &ValidationError{Requested: requested, Max: max}
	}
	return nil
}
