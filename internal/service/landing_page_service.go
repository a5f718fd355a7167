package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/osteele/liquid"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/repository"
	"github.com/unclebandit/marketing-ops-backend/internal/webhook"
)

// SlowBuilderReply is returned instead of an error when the builder times
// out or cannot be reached. The builder usually keeps working and writes the
// page anyway.
const SlowBuilderReply = "The AI service is taking longer than expected to respond, but don't worry! " +
	"Your landing page should still be updated. Try refreshing the preview or reloading the page to see the latest changes."

// SlowBuilderNotice is attached to a reply that took longer than the slow
// notice threshold.
const SlowBuilderNotice = "This is taking longer than expected. The AI is still working on your landing page."

// BuilderReply is the builder's answer plus the slow notice, if the turn
// outlasted it.
type BuilderReply struct {
	webhook.LandingReply
	Notice string `json:"notice,omitempty"`
}

const placeholderPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ name | escape }}</title>
</head>
<body style="font-family: sans-serif; text-align: center; padding: 4rem;">
<h1>{{ name | escape }}</h1>
<p>This landing page for {{ brand | escape }} is still being built. Check back soon.</p>
</body>
</html>`

type LandingPageInput struct {
	Name    string `json:"name"`
	BrandID int64  `json:"brand_id"`
}

type LandingPageService struct {
	Pages      repository.LandingPageRepositoryInterface
	Brands     repository.BrandRepositoryInterface
	Builder    LandingBuilder
	SlowNotice time.Duration
	Now        func() time.Time
}

func (s *LandingPageService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *LandingPageService) List(ctx context.Context) ([]*model.LandingPage, error) {
	return s.Pages.List(ctx)
}

func (s *LandingPageService) Get(ctx context.Context, id int64) (*model.LandingPage, error) {
	return s.Pages.GetByID(ctx, id)
}

func (s *LandingPageService) GetBySession(ctx context.Context, sessionID string) (*model.LandingPage, error) {
	return s.Pages.GetBySessionID(ctx, sessionID)
}

// Create registers an empty page under a fresh builder session.
func (s *LandingPageService) Create(ctx context.Context, in LandingPageInput) (*model.LandingPage, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, appErrors.NewValidation("Landing page name is required")
	}
	if in.BrandID <= 0 {
		return nil, appErrors.NewValidation("Please select a brand")
	}
	brand, err := s.Brands.GetByID(ctx, in.BrandID)
	if err != nil {
		var nf *appErrors.NotFoundError
		if errors.As(err, &nf) {
			return nil, appErrors.NewValidation("Selected brand does not exist")
		}
		return nil, err
	}

	empty := ""
	p := &model.LandingPage{
		Name:         name,
		Brand:        brand.Name,
		SessionID:    NewSessionID(s.now()),
		HTMLCode:     &empty,
		Images:       []string{},
		PurchaseLink: &empty,
	}
	if err := s.Pages.Create(ctx, p); err != nil {
		return nil, err
	}
	slog.Info("landing page created", "id", p.ID, "session_id", p.SessionID)
	return p, nil
}

// NewSessionID returns "session_{unixMillis}_{9 base36 chars}".
func NewSessionID(now time.Time) string {
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), randomBase36(9))
}

func (s *LandingPageService) UpdateHeaderCode(ctx context.Context, id int64, code string) (*model.LandingPage, error) {
	if err := s.Pages.UpdateHeaderCode(ctx, id, code); err != nil {
		return nil, err
	}
	return s.Pages.GetByID(ctx, id)
}

func (s *LandingPageService) Delete(ctx context.Context, id int64) error {
	return s.Pages.Delete(ctx, id)
}

// SendMessage forwards one builder prompt for the page's session. A slow
// or unreachable builder yields SlowBuilderReply rather than an error, and a
// turn that outlasts SlowNotice carries SlowBuilderNotice.
func (s *LandingPageService) SendMessage(ctx context.Context, sessionID, prompt string) (*BuilderReply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, appErrors.NewValidation("Message is required")
	}
	if _, err := s.Pages.GetBySessionID(ctx, sessionID); err != nil {
		return nil, err
	}

	var slow atomic.Bool
	if s.SlowNotice > 0 {
		timer := time.AfterFunc(s.SlowNotice, func() {
			slow.Store(true)
			slog.Warn("landing page builder still working", "session_id", sessionID, "waited", s.SlowNotice.String())
		})
		defer timer.Stop()
	}

	out := &BuilderReply{}
	reply, err := s.Builder.GenerateLandingPage(ctx, prompt, sessionID)
	switch {
	case err == nil:
		out.LandingReply = *reply
	case isTimeoutOrNetwork(err):
		slog.Warn("landing page builder unreachable", "session_id", sessionID, "error", err)
		out.Response = SlowBuilderReply
	default:
		return nil, err
	}
	if slow.Load() {
		out.Notice = SlowBuilderNotice
	}
	return out, nil
}

func isTimeoutOrNetwork(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// Render returns the public HTML of a page. Header code is injected right
// after <head>; a page the builder has not filled yet gets a placeholder.
func (s *LandingPageService) Render(ctx context.Context, sessionID string) (string, error) {
	p, err := s.Pages.GetBySessionID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !p.HasContent() {
		return s.renderPlaceholder(p)
	}

	html := *p.HTMLCode
	if p.HeaderCode == nil || strings.TrimSpace(*p.HeaderCode) == "" {
		return html, nil
	}
	return injectHeader(html, *p.HeaderCode), nil
}

var headTag = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)

func injectHeader(html, header string) string {
	loc := headTag.FindStringIndex(html)
	if loc == nil {
		return header + html
	}
	return html[:loc[1]] + "\n" + header + html[loc[1]:]
}

func (s *LandingPageService) renderPlaceholder(p *model.LandingPage) (string, error) {
	return renderTemplate(placeholderPage, liquid.Bindings{
		"name":  p.Name,
		"brand": p.Brand,
	})
}
