package transform

import (
	"html"
	"regexp"
	"strings"
)

// NoLanguage is the code macro language used for blocks without a language tag
const NoLanguage = "none"

var (
	taggedCodePattern   = regexp.MustCompile(`(?s)<pre><code class="language-([\w+#-]+)">(.*?)</code></pre>`)
	untaggedCodePattern = regexp.MustCompile(`(?s)<pre><code>(.*?)</code></pre>`)
)

// languageAliases maps fenced code languages to the names the Confluence code
// macro understands.
var languageAliases = map[string]string{
	"bash": "shell",
}

// ConvertCodeBlocks replaces rendered <pre><code> blocks with Confluence code
// macros. The code is HTML-unescaped once and wrapped in CDATA. When nothing
// is converted the input is returned unchanged.
func ConvertCodeBlocks(htmlText string) string {
	converted := 0

	out := taggedCodePattern.ReplaceAllStringFunc(htmlText, func(match string) string {
		groups := taggedCodePattern.FindStringSubmatch(match)
		converted++
		return codeMacro(groups[1], groups[2])
	})

	out = untaggedCodePattern.ReplaceAllStringFunc(out, func(match string) string {
		groups := untaggedCodePattern.FindStringSubmatch(match)
		converted++
		return codeMacro(NoLanguage, groups[1])
	})

	if converted == 0 {
		return htmlText
	}

	for from, to := range languageAliases {
		out = strings.ReplaceAll(out, languageParameter(from), languageParameter(to))
	}
	return out
}

func codeMacro(language, escapedCode string) string {
	var b strings.Builder
	b.WriteString(`<ac:structured-macro ac:name="code">`)
	b.WriteString(languageParameter(language))
	b.WriteString(`<ac:plain-text-body>`)
	b.WriteString(cdata(html.UnescapeString(escapedCode)))
	b.WriteString(`</ac:plain-text-body></ac:structured-macro>`)
	return b.String()
}

func languageParameter(language string) string {
	return `<ac:parameter ac:name="language">` + language + `</ac:parameter>`
}

// cdata wraps text in a CDATA section. A "]]>" inside text is split across
// two sections so it cannot end the section early.
func cdata(text string) string {
	return "<![CDATA[" + strings.ReplaceAll(text, "]]>", "]]]]><![CDATA[>") + "]]>"
}
