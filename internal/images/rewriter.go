package images

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabesw/confluence-readme-sync/internal/models"
	"github.com/gabesw/confluence-readme-sync/internal/storage"
)

// Resolved is a local image that was found on disk
type Resolved struct {
	AbsolutePath string
	Filename     string
	AltText      string
	Reference    Reference
}

// Miss is a local image reference that could not be found
type Miss struct {
	Reference Reference
	Tried     []string
}

// Result is the rewritten markdown together with the images that still have
// to be uploaded in this run
type Result struct {
	Markdown string
	Pending  []Resolved
	Missing  []Miss
}

// Rewriter replaces local image references with attachment placeholders
type Rewriter struct {
	resolver *Resolver
	ledger   *storage.UploadLedger
}

func NewRewriter(resolver *Resolver, ledger *storage.UploadLedger) *Rewriter {
	return &Rewriter{
		resolver: resolver,
		ledger:   ledger,
	}
}

// Placeholder builds the attachment placeholder for an image
func Placeholder(altText, filename string) string {
	return "![" + altText + "](" + models.AttachmentScheme + filename + ")"
}

// Process rewrites every resolvable local image reference in markdown to a
// placeholder. Substitution is textual: all occurrences of the same reference
// text get the same placeholder. A file is queued once per run; files already
// in the ledger are rewritten but not queued.
//
// Each attachment name belongs to one file. When two files share a basename
// the later one is renamed x-1.png, x-2.png, ... in document order.
//
// Remote references and references to missing files are left unchanged.
func (r *Rewriter) Process(markdown string) Result {
	result := Result{Markdown: markdown}
	queued := make(map[string]struct{})
	missed := make(map[string]struct{})
	names := newAttachmentNames(r.ledger)

	for _, ref := range Scan(markdown) {
		if !IsLocal(ref.RawPath) {
			slog.Debug("Skipping remote image", "path", ref.RawPath)
			continue
		}

		res := r.resolver.Resolve(ref.RawPath)
		if !res.Found {
			if _, seen := missed[ref.FullMatch]; !seen {
				missed[ref.FullMatch] = struct{}{}
				slog.Warn("Image file not found", "path", ref.RawPath, "tried", strings.Join(res.Tried, ", "))
				result.Missing = append(result.Missing, Miss{Reference: ref, Tried: res.Tried})
			}
			continue
		}

		filename := names.claim(res.Path, filepath.Base(ref.RawPath))

		_, alreadyQueued := queued[res.Path]
		if !alreadyQueued && !r.ledger.Has(res.Path) {
			queued[res.Path] = struct{}{}
			result.Pending = append(result.Pending, Resolved{
				AbsolutePath: res.Path,
				Filename:     filename,
				AltText:      ref.AltText,
				Reference:    ref,
			})
		}

		result.Markdown = strings.ReplaceAll(result.Markdown, ref.FullMatch, Placeholder(ref.AltText, filename))
	}

	return result
}

// attachmentNames hands out one attachment name per local file
type attachmentNames struct {
	ledger  *storage.UploadLedger
	byPath  map[string]string
	claimed map[string]string
}

// newAttachmentNames reserves the names of files already uploaded in this run
func newAttachmentNames(ledger *storage.UploadLedger) *attachmentNames {
	n := &attachmentNames{
		ledger:  ledger,
		byPath:  make(map[string]string),
		claimed: make(map[string]string),
	}
	for path, name := range ledger.All() {
		n.claimed[name] = path
	}
	return n
}

func (n *attachmentNames) claim(path, base string) string {
	if name, ok := n.ledger.Get(path); ok {
		return name
	}
	if name, ok := n.byPath[path]; ok {
		return name
	}

	name := base
	if owner, taken := n.claimed[name]; taken && owner != path {
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		for i := 1; ; i++ {
			name = fmt.Sprintf("%s-%d%s", stem, i, ext)
			if _, taken := n.claimed[name]; !taken {
				break
			}
		}
		slog.Warn("Attachment name already used by another image, renaming", "path", path, "attachment", name)
	}

	n.byPath[path] = name
	n.claimed[name] = path
	return name
}
