package openlibrary

import "fmt"

// coverURL derives a medium cover image URL from the search document's
// cover identifiers. The edition key takes precedence over the numeric
// cover id; with neither present there is no cover.
func coverURL(editionKey string, coverID int64) string {
	if editionKey != "" {
		return fmt.Sprintf("%s/b/olid/%s-M.jpg", coversBaseURL, editionKey)
	}
	if coverID != 0 {
		return fmt.Sprintf("%s/b/id/%d-M.jpg", coversBaseURL, coverID)
	}
	return ""
}
