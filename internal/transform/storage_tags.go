package transform

import (
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// CommonMark tag names cannot contain a colon, so without this extension
// goldmark escapes Confluence storage tags such as <ac:image> as text.
var storageTagPattern = regexp.MustCompile(
	`^(?:<(?:ac|ri):[A-Za-z][A-Za-z0-9-]*` +
		`(?:\s+[A-Za-z_:][A-Za-z0-9_.:-]*(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'=<>` + "`" + `]+))?)*` +
		`\s*/?>` +
		`|</(?:ac|ri):[A-Za-z][A-Za-z0-9-]*\s*>)`,
)

type storageTagParser struct{}

func (p *storageTagParser) Trigger() []byte {
	return []byte{'<'}
}

func (p *storageTagParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	loc := storageTagPattern.FindIndex(line)
	if loc == nil {
		return nil
	}

	node := ast.NewRawHTML()
	node.Segments.Append(segment.WithStop(segment.Start + loc[1]))
	block.Advance(loc[1])
	return node
}

type storageTags struct{}

// StorageTags is a goldmark extension that passes inline Confluence storage
// format tags (ac:* and ri:*) through as raw HTML. The renderer must be
// configured with html.WithUnsafe for them to be written.
var StorageTags goldmark.Extender = &storageTags{}

func (e *storageTags) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(util.Prioritized(&storageTagParser{}, 150)),
	)
}
