package pagesync

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// StripFrontMatter removes a leading YAML/TOML/JSON front matter block from
// a markdown document. Documents without front matter are returned as is.
func StripFrontMatter(markdown []byte) ([]byte, error) {
	var meta map[string]any

	body, err := frontmatter.Parse(bytes.NewReader(markdown), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return body, nil
}
