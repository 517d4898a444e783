package domain

import "context"

// Attachment is a blob stored in the external attachment store. FileID is
// the opaque handle used to delete the blob later.
type Attachment struct {
	FileURL string `bson:"file_url,omitempty" json:"file_url,omitempty"`
	FileID  string `bson:"file_id,omitempty" json:"file_id,omitempty"`
}

// Present reports whether the attachment references a stored blob.
func (a Attachment) Present() bool {
	return a.FileID != ""
}

// FileUpload carries an incoming multipart file through the usecases.
type FileUpload struct {
	Name string
	Data []byte
}

// AttachmentStore is the external blob-hosting collaborator. It is
// at-least-once and non-transactional; callers own cleanup semantics.
type AttachmentStore interface {
	Upload(ctx context.Context, folder, filename string, data []byte) (fileURL, fileID string, err error)
	Delete(ctx context.Context, fileID string) error
}
