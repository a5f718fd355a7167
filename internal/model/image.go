package model

import "time"

type Image struct {
	ID        string     `db:"id" json:"id"`
	ImageURL  string     `db:"image_url" json:"image_url"`
	BrandName *string    `db:"brand_name" json:"brand_name,omitempty"`
	FileName  string     `db:"file_name" json:"file_name"`
	FileSize  int64      `db:"file_size" json:"file_size"`
	MimeType  string     `db:"mime_type" json:"mime_type"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
