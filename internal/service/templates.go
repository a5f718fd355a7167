package service

import (
	"fmt"

	"github.com/osteele/liquid"
)

var templates = liquid.NewEngine()

func renderTemplate(src string, b liquid.Bindings) (string, error) {
	out, err := templates.ParseAndRenderString(src, b)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return out, nil
}
