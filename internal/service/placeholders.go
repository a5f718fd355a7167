// internal/service/placeholders.go
package service

import (
	"regexp"

	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

type placeholder struct {
	pattern *regexp.Regexp
	value   func(model.Lead) string
}

func token(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\[\[` + name + `\]\]`)
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

var placeholders = []placeholder{
	{token("name"), func(l model.Lead) string { return or(l.Name, "User") }},
	{token("email"), func(l model.Lead) string { return or(l.ContactEmail(), "user@example.com") }},
	{token("phone"), func(l model.Lead) string { return or(l.Phone, "N/A") }},
	{token("company"), func(l model.Lead) string { return or(l.AudienceType, "Company") }},
	{token("status"), func(l model.Lead) string { return or(l.Status, "Active") }},
}

// RenderPlaceholders replaces [[name]], [[email]], [[phone]], [[company]]
// and [[status]] (any case) with the lead's values or literal fallbacks.
// Unknown tokens are left as they are.
func RenderPlaceholders(text string, lead model.Lead) string {
	if text == "" {
		return text
	}
	for _, p := range placeholders {
		// ReplaceAllLiteralString so "$" in lead data is not expanded.
		text = p.pattern.ReplaceAllLiteralString(text, p.value(lead))
	}
	return text
}
