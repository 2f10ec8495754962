package models

// AttachmentScheme prefixes the path of a markdown image once the referenced
// local file has been queued as a page attachment. The image pipeline emits
// it and the markup converter consumes it:
//
//	![alt](confluence-attachment:diagram.png)
const AttachmentScheme = "confluence-attachment:"

// Page is the part of a Confluence page the sync reads and writes back
type Page struct {
	ID      string `json:"id" yaml:"id"`
	Status  string `json:"status" yaml:"status"`
	Title   string `json:"title" yaml:"title"`
	Body    string `json:"body" yaml:"-"` // storage format markup
	Version int    `json:"version" yaml:"version"`
}

// Complete reports whether every field required for a write-back is present.
func (p *Page) Complete() bool {
	return p != nil && p.Status != "" && p.Title != "" && p.Body != "" && p.Version != 0
}
