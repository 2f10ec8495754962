package images

import (
	"regexp"
	"strings"
)

// imagePattern matches ![alt](path). The path stops at the first closing
// parenthesis, so paths containing parentheses are not supported.
var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

var remoteSchemes = []string{"http://", "https://", "ftp://"}

// Reference is a markdown image reference as written in the source document
type Reference struct {
	FullMatch string
	AltText   string
	RawPath   string
}

// Scan returns every image reference in markdown in document order,
// duplicates included.
func Scan(markdown string) []Reference {
	matches := imagePattern.FindAllStringSubmatch(markdown, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, Reference{
			FullMatch: m[0],
			AltText:   m[1],
			RawPath:   m[2],
		})
	}
	return refs
}

// IsLocal reports whether path refers to a local file rather than a URL.
// Only the scheme prefix is checked.
func IsLocal(path string) bool {
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(path, scheme) {
			return false
		}
	}
	return true
}
