package models

import "time"

// Upload is a stored user file. Kind never changes after creation.
type Upload struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"userId" db:"user_id"`
	OriginalName string     `json:"originalName" db:"original_name"`
	StoredName   string     `json:"filename" db:"stored_name"`
	StoragePath  string     `json:"-" db:"storage_path"`
	MimeType     string     `json:"mimetype" db:"mime_type"`
	SizeBytes    int64      `json:"size" db:"size_bytes"`
	Kind         UploadKind `json:"fileType" db:"kind"`
	CreatedAt    time.Time  `json:"uploadDate" db:"created_at"`
}
