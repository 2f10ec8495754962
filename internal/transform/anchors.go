package transform

import "regexp"

// sectionLinkPattern matches the opening of a link whose target starts with
// more than one hash, e.g. [Debugging](##debugging).
var sectionLinkPattern = regexp.MustCompile(`\]\(#{2,}`)

// NormalizeAnchors collapses the run of hashes at the start of a link target
// to a single hash so section links work as Confluence URL fragments.
// Applying it more than once has no further effect.
func NormalizeAnchors(markdown string) string {
	return sectionLinkPattern.ReplaceAllLiteralString(markdown, "](#")
}
