package model

import (
	"time"

	"github.com/lib/pq"
)

type Brand struct {
	ID            int64          `db:"id" json:"id"`
	Name          string         `db:"brand_name" json:"brand_name"`
	Content       string         `db:"brand_content" json:"brand_content"`
	UUID          string         `db:"brand_uuid" json:"brand_uuid"`
	ProductLink   *string        `db:"product_link" json:"product_link,omitempty"`
	ProductImages pq.StringArray `db:"product_images" json:"product_images,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}
