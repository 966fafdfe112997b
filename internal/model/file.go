package model

import (
	"time"
)

const (
	FileTypeProofPhoto = "proof_photo"
)

const (
	FileOwnerSubmission = "submission"
)

type File struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`    // Who uploaded the file
	OwnerType    string    `db:"owner_type"` // "submission"
	OwnerID      string    `db:"owner_id"`   // Polymorphic FK
	Type         string    `db:"type"`
	Filename     string    `db:"filename"`
	OriginalName string    `db:"original_name"`
	MimeType     string    `db:"mime_type"`
	Size         int64     `db:"size"`
	StoragePath  string    `db:"storage_path"`
	Public       bool      `db:"public"` // Proof photos are always private
	CreatedAt    time.Time `db:"created_at"`
}
