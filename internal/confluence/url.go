package confluence

import (
	"fmt"
	"regexp"
)

var (
	domainPattern = regexp.MustCompile(`https://(.*?)/`)
	pageIDPattern = regexp.MustCompile(`/pages/(\d+)/`)
)

// ParsePageURL extracts the site domain and the page id from a Confluence
// page URL such as
// https://example.atlassian.net/wiki/spaces/TEAM/pages/1234567890/Page+Name
func ParsePageURL(pageURL string) (domain, pageID string, err error) {
	domain, err = ExtractDomain(pageURL)
	if err != nil {
		return "", "", err
	}
	pageID, err = ExtractPageID(pageURL)
	if err != nil {
		return "", "", err
	}
	return domain, pageID, nil
}

// ExtractDomain returns the host between https:// and the next slash
func ExtractDomain(pageURL string) (string, error) {
	m := domainPattern.FindStringSubmatch(pageURL)
	if m == nil {
		return "", fmt.Errorf("failed to extract domain from url: %s", pageURL)
	}
	return m[1], nil
}

// ExtractPageID returns the numeric id following /pages/
func ExtractPageID(pageURL string) (string, error) {
	m := pageIDPattern.FindStringSubmatch(pageURL)
	if m == nil {
		return "", fmt.Errorf("failed to extract page id from url: %s", pageURL)
	}
	return m[1], nil
}
