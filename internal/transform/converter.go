package transform

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Options configures the markdown to storage format conversion
type Options struct {
	// MaxImageWidth is written as the width of every embedded image; empty or "0" keeps the original size
	MaxImageWidth string
}

// Converter turns markdown into Confluence storage format markup.
//
// The markdown is first normalized (section links, attachment placeholders),
// then rendered to XHTML by goldmark with GFM tables, and finally the rendered
// code blocks are replaced with code macros.
type Converter struct {
	opts   Options
	engine goldmark.Markdown
}

func NewConverter(opts Options) *Converter {
	return &Converter{
		opts: opts,
		engine: goldmark.New(
			goldmark.WithExtensions(extension.Table, StorageTags),
			goldmark.WithRendererOptions(html.WithUnsafe(), html.WithXHTML()),
		),
	}
}

// Convert renders markdown to storage format
func (c *Converter) Convert(markdown string) (string, error) {
	source := NormalizeAnchors(markdown)
	source = ConvertImagePlaceholders(source, c.opts.MaxImageWidth)

	var buf bytes.Buffer
	if err := c.engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return ConvertCodeBlocks(strings.TrimRight(buf.String(), "\n")), nil
}
