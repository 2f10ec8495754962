package pagesync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReportWriteYAML(t *testing.T) {
	report := newReport()
	report.PageID = "42"
	report.Title = "Readme"
	report.VersionBefore = 3
	report.VersionAfter = 4
	report.Markup = "<p>not persisted</p>"
	report.Uploaded = append(report.Uploaded, UploadedImage{Filename: "a.png", Path: "/ws/a.png"})
	report.Missing = append(report.Missing, MissingImage{Reference: "![x](x.png)", Tried: []string{"/ws/x.png"}})

	path := filepath.Join(t.TempDir(), "out", "report.yaml")
	require.NoError(t, report.WriteYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "not persisted")

	var decoded Report
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "42", decoded.PageID)
	assert.Equal(t, 4, decoded.VersionAfter)
	assert.Equal(t, report.Uploaded, decoded.Uploaded)
	assert.Equal(t, report.Missing, decoded.Missing)
	assert.Empty(t, decoded.Failed)
	assert.NotEmpty(t, decoded.Timestamp)
}
