package domain

import "time"

// FileRecord tracks an uploaded binary stored in the blob store.
// The URL is the blob store address; deleting a record removes the
// blob first, then the row.
type FileRecord struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploaderID string    `json:"uploader_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
