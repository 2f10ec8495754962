package storage

// UploadLedger records which local image files have been uploaded during a
// single sync run, keyed by absolute local path. It is not persisted; a new
// run starts from an empty ledger and uploads everything again.
//
// A ledger is owned by one run and is not safe for concurrent use.
type UploadLedger struct {
	attachments map[string]string
}

func NewUploadLedger() *UploadLedger {
	return &UploadLedger{
		attachments: make(map[string]string),
	}
}

// Has reports whether localPath was already uploaded in this run.
func (l *UploadLedger) Has(localPath string) bool {
	_, exists := l.attachments[localPath]
	return exists
}

// Get returns the attachment name recorded for localPath.
func (l *UploadLedger) Get(localPath string) (string, bool) {
	name, exists := l.attachments[localPath]
	return name, exists
}

// Record marks localPath as uploaded under attachmentName. Callers should
// only record after the remote side confirmed the upload.
func (l *UploadLedger) Record(localPath, attachmentName string) {
	l.attachments[localPath] = attachmentName
}

func (l *UploadLedger) All() map[string]string {
	result := make(map[string]string, len(l.attachments))
	for k, v := range l.attachments {
		result[k] = v
	}
	return result
}

func (l *UploadLedger) Len() int {
	return len(l.attachments)
}
