package images

import (
	"reflect"
	"testing"
)

func TestScan(t *testing.T) {
	markdown := `
# Test Document
Here is an image: ![Alt text](image.png)
Another one: ![Description](https://example.com/image.jpg)
And one more: ![](./relative/path.gif)
`

	refs := Scan(markdown)

	expected := []Reference{
		{FullMatch: "![Alt text](image.png)", AltText: "Alt text", RawPath: "image.png"},
		{FullMatch: "![Description](https://example.com/image.jpg)", AltText: "Description", RawPath: "https://example.com/image.jpg"},
		{FullMatch: "![](./relative/path.gif)", AltText: "", RawPath: "./relative/path.gif"},
	}
	if !reflect.DeepEqual(refs, expected) {
		t.Errorf("Expected %+v, got %+v", expected, refs)
	}
}

func TestScanEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected []string // raw paths
	}{
		{
			name:     "no images",
			markdown: "plain text with a [link](page.md)",
			expected: nil,
		},
		{
			name:     "duplicates kept",
			markdown: "![a](x.png) and ![a](x.png)",
			expected: []string{"x.png", "x.png"},
		},
		{
			name:     "path stops at first closing paren",
			markdown: "![a](img(1).png)",
			expected: []string{"img(1"},
		},
		{
			name:     "two on one line",
			markdown: "![a](one.png)![b](two.png)",
			expected: []string{"one.png", "two.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paths []string
			for _, ref := range Scan(tt.markdown) {
				paths = append(paths, ref.RawPath)
			}
			if !reflect.DeepEqual(paths, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, paths)
			}
		})
	}
}

func TestIsLocal(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"image.png", true},
		{"./images/photo.jpg", true},
		{"../assets/diagram.svg", true},
		{"/absolute/path/file.gif", true},
		{"data:image/png;base64,AAAA", true},
		{"http://example.com/image.png", false},
		{"https://example.com/image.png", false},
		{"ftp://server.com/file.jpg", false},
		{"HTTPS://example.com/image.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsLocal(tt.path); got != tt.expected {
				t.Errorf("IsLocal(%q) = %v, expected %v", tt.path, got, tt.expected)
			}
		})
	}
}
