package model

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// LandingPage is created empty and filled in later by the AI builder,
// which keys its work on SessionID.
type LandingPage struct {
	ID           int64          `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Brand        string         `db:"brand" json:"brand"`
	SessionID    string         `db:"session_id" json:"session_id"`
	HTMLCode     *string        `db:"html_code" json:"html_code,omitempty"`
	HeaderCode   *string        `db:"header_code" json:"header_code,omitempty"`
	Images       pq.StringArray `db:"images" json:"images,omitempty"`
	PurchaseLink *string        `db:"purchase_link" json:"purchase_link,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// HasContent reports whether the builder has produced a usable page yet.
func (p *LandingPage) HasContent() bool {
	return p.HTMLCode != nil && len(strings.TrimSpace(*p.HTMLCode)) > 10
}
