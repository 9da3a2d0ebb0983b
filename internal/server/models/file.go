package models

import "time"

// Upload lifecycle states for a file row. A row starts as pending, becomes
// committed once the blob is durably stored, and pending rows past the
// janitor grace period are reclaimed together with their blobs.
const (
	UploadStatusPending   = "pending"
	UploadStatusCommitted = "committed"
)

// File describes metadata for one uploaded object. The bytes themselves
// live in object storage; URL points at the durable public location.
type File struct {
	ID            string
	Title         string
	OriginalName  string
	Size          int64
	MimeType      string
	URL           string
	Provider      string
	UserID        string
	StorageKey    string
	UploadStatus  string
	DownloadCount int64
	CreatedAt     time.Time
}
