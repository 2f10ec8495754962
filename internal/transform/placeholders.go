package transform

import (
	"regexp"
	"strings"

	"github.com/gabesw/confluence-readme-sync/internal/models"
)

// placeholderPattern matches ![alt](confluence-attachment:file) within a single line
var placeholderPattern = regexp.MustCompile(`!\[([^\]\n]*)\]\(` + regexp.QuoteMeta(models.AttachmentScheme) + `([^)\n]+)\)`)

var attrQuote = strings.NewReplacer(`"`, "&quot;")

// ConvertImagePlaceholders rewrites attachment placeholders into Confluence
// image macros. maxWidth is emitted as the ac:width attribute unless it is
// empty or "0". Alt text and filename are copied as is except for double
// quotes, which would end the attribute value.
func ConvertImagePlaceholders(markdown, maxWidth string) string {
	withWidth := maxWidth != "" && maxWidth != "0"

	return placeholderPattern.ReplaceAllStringFunc(markdown, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		alt, filename := attrQuote.Replace(groups[1]), attrQuote.Replace(groups[2])

		var b strings.Builder
		b.WriteString(`<ac:image ac:alt="`)
		b.WriteString(alt)
		b.WriteString(`"`)
		if withWidth {
			b.WriteString(` ac:width="`)
			b.WriteString(maxWidth)
			b.WriteString(`"`)
		}
		b.WriteString(`><ri:attachment ri:filename="`)
		b.WriteString(filename)
		b.WriteString(`" /></ac:image>`)
		return b.String()
	})
}
