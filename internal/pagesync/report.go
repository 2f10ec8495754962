package pagesync

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Report summarizes one sync run
type Report struct {
	PageID        string          `yaml:"pageid"`
	Title         string          `yaml:"title"`
	VersionBefore int             `yaml:"versionbefore"`
	VersionAfter  int             `yaml:"versionafter,omitempty"`
	DryRun        bool            `yaml:"dryrun"`
	Uploaded      []UploadedImage `yaml:"uploaded"`
	Failed        []FailedUpload  `yaml:"failed"`
	Missing       []MissingImage  `yaml:"missing"`
	Timestamp     string          `yaml:"timestamp"`

	// Markup is the converted document inserted between the markers
	Markup string `yaml:"-"`
	// Body is the full page body that was (or, in a dry run, would be) written
	Body string `yaml:"-"`
}

type UploadedImage struct {
	Filename string `yaml:"filename"`
	Path     string `yaml:"path"`
}

// FailedUpload is an image whose placeholder is in the page although the
// attachment could not be uploaded
type FailedUpload struct {
	Filename string `yaml:"filename"`
	Path     string `yaml:"path"`
	Reason   string `yaml:"reason"`
}

type MissingImage struct {
	Reference string   `yaml:"reference"`
	Tried     []string `yaml:"tried"`
}

func newReport() *Report {
	return &Report{
		Uploaded:  []UploadedImage{},
		Failed:    []FailedUpload{},
		Missing:   []MissingImage{},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// WriteYAML saves the report to path, creating parent directories
func (r *Report) WriteYAML(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}
