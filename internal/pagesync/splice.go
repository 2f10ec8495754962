package pagesync

import (
	"fmt"
	"strings"

	"github.com/gabesw/confluence-readme-sync/internal/syncerr"
)

// Splice replaces everything between the end of startMarker and the start of
// endMarker in body with markup. Both markers are kept. The first occurrence
// of each marker is used, and startMarker must not come after endMarker.
func Splice(body, startMarker, endMarker, markup string) (string, error) {
	if startMarker == "" || endMarker == "" {
		return "", syncerr.Config(nil, "insert start and end text must not be empty")
	}

	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)

	switch {
	case start == -1:
		return "", syncerr.Config(nil, fmt.Sprintf("insert start text %q was not found in the body of the Confluence page", startMarker))
	case end == -1:
		return "", syncerr.Config(nil, fmt.Sprintf("insert end text %q was not found in the body of the Confluence page", endMarker))
	case start > end:
		return "", syncerr.Config(nil, "insert start text occurs after insert end text in the body of the Confluence page")
	}

	return body[:start+len(startMarker)] + markup + body[end:], nil
}
