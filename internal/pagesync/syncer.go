package pagesync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gabesw/confluence-readme-sync/internal/images"
	"github.com/gabesw/confluence-readme-sync/internal/models"
	"github.com/gabesw/confluence-readme-sync/internal/storage"
	"github.com/gabesw/confluence-readme-sync/internal/syncerr"
	"github.com/gabesw/confluence-readme-sync/internal/transform"
)

// DefaultAttachmentComment is attached to every uploaded image
const DefaultAttachmentComment = "Uploaded by confluence-readme-sync"

// PageClient is the part of the Confluence API a sync needs
type PageClient interface {
	GetPage(ctx context.Context, pageID string) (*models.Page, error)
	UpdatePage(ctx context.Context, page *models.Page, message string) error
	UploadAttachment(ctx context.Context, pageID, filename string, content io.Reader, comment string) (int, error)
}

// Options describes one sync
type Options struct {
	PageID      string
	FilePath    string
	StartMarker string
	EndMarker   string

	MaxImageWidth    string
	WorkspaceRoot    string
	StripFrontMatter bool
	DryRun           bool

	AttachmentComment string
	VersionMessage    string
}

// Syncer copies one markdown file into the marked region of one page
type Syncer struct {
	client PageClient
	opts   Options
	ledger *storage.UploadLedger
}

func New(client PageClient, opts Options) *Syncer {
	if opts.AttachmentComment == "" {
		opts.AttachmentComment = DefaultAttachmentComment
	}
	return &Syncer{
		client: client,
		opts:   opts,
		ledger: storage.NewUploadLedger(),
	}
}

// Ledger returns the uploads confirmed so far in this run
func (s *Syncer) Ledger() *storage.UploadLedger {
	return s.ledger
}

// Run fetches the page, converts the markdown, uploads the local images and
// writes the page back. Splice errors abort before anything is uploaded.
// Failed uploads are logged and reported but do not stop the run.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	report := newReport()
	report.PageID = s.opts.PageID
	report.DryRun = s.opts.DryRun

	slog.Info("Getting confluence page content", "page_id", s.opts.PageID)
	page, err := s.client.GetPage(ctx, s.opts.PageID)
	if err != nil {
		return report, fmt.Errorf("failed to get page: %w", err)
	}
	if !page.Complete() {
		return report, syncerr.Integrity(nil, "values were not correctly received from Confluence page")
	}
	report.Title = page.Title
	report.VersionBefore = page.Version

	processed, err := s.Prepare(s.opts.FilePath)
	if err != nil {
		return report, err
	}
	for _, miss := range processed.Images.Missing {
		report.Missing = append(report.Missing, MissingImage{
			Reference: miss.Reference.FullMatch,
			Tried:     miss.Tried,
		})
	}
	report.Markup = processed.Markup

	body, err := Splice(page.Body, s.opts.StartMarker, s.opts.EndMarker, processed.Markup)
	if err != nil {
		return report, err
	}
	report.Body = body

	if s.opts.DryRun {
		slog.Info("Dry run, skipping uploads and page update", "pending_images", len(processed.Images.Pending))
		return report, nil
	}

	for _, img := range processed.Images.Pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.upload(ctx, img); err != nil {
			report.Failed = append(report.Failed, FailedUpload{
				Filename: img.Filename,
				Path:     img.AbsolutePath,
				Reason:   err.Error(),
			})
			continue
		}
		report.Uploaded = append(report.Uploaded, UploadedImage{
			Filename: img.Filename,
			Path:     img.AbsolutePath,
		})
	}

	page.Body = body
	slog.Info("Updating confluence page", "page_id", page.ID, "version", page.Version+1)
	if err := s.client.UpdatePage(ctx, page, s.opts.VersionMessage); err != nil {
		return report, syncerr.RemoteWrite(err, "failed to update confluence page")
	}
	report.VersionAfter = page.Version + 1

	slog.Info("Sync successful!", "uploaded", len(report.Uploaded), "failed", len(report.Failed), "missing", len(report.Missing))
	return report, nil
}

// Prepared is a markdown file converted to storage format
type Prepared struct {
	Markup string
	Images images.Result
}

// Prepare reads the markdown file, rewrites its local images to attachment
// placeholders and converts it. Nothing is uploaded.
func (s *Syncer) Prepare(path string) (*Prepared, error) {
	slog.Info("Reading markdown file", "path", path)
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown file: %w", err)
	}

	if s.opts.StripFrontMatter {
		source, err = StripFrontMatter(source)
		if err != nil {
			return nil, err
		}
	}

	baseDir := filepath.Dir(path)
	slog.Debug("Resolving images", "base_dir", baseDir, "workspace", s.opts.WorkspaceRoot)

	resolver := images.NewResolver(baseDir, s.opts.WorkspaceRoot)
	result := images.NewRewriter(resolver, s.ledger).Process(string(source))

	converter := transform.NewConverter(transform.Options{MaxImageWidth: s.opts.MaxImageWidth})
	markup, err := converter.Convert(result.Markdown)
	if err != nil {
		return nil, err
	}

	return &Prepared{Markup: markup, Images: result}, nil
}

func (s *Syncer) upload(ctx context.Context, img images.Resolved) error {
	slog.Info("Uploading image", "file", img.Filename, "path", img.AbsolutePath)

	f, err := os.Open(img.AbsolutePath)
	if err != nil {
		slog.Error("Error uploading image", "file", img.Filename, "error", err)
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	status, err := s.client.UploadAttachment(ctx, s.opts.PageID, img.Filename, f, s.opts.AttachmentComment)
	if err != nil {
		slog.Error("Error uploading image", "file", img.Filename, "error", err)
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		slog.Warn("Failed to upload image", "file", img.Filename, "status", status)
		return fmt.Errorf("upload returned status %d", status)
	}

	slog.Info("Successfully uploaded", "file", img.Filename)
	s.ledger.Record(img.AbsolutePath, img.Filename)
	return nil
}
