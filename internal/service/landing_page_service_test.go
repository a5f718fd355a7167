package service_test

import (
	"context"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
	"github.com/unclebandit/marketing-ops-backend/internal/webhook"
)

func strPtr(s string) *string { return &s }

func newLandingService(pages ...*model.LandingPage) (*service.LandingPageService, *MockLandingPageRepo, *MockBuilder) {
	repo := &MockLandingPageRepo{pages: map[int64]*model.LandingPage{}}
	for _, p := range pages {
		repo.pages[p.ID] = p
	}
	builder := &MockBuilder{}
	svc := &service.LandingPageService{
		Pages:   repo,
		Brands:  &MockBrandRepo{brands: map[int64]*model.Brand{7: {ID: 7, Name: "Acme"}}},
		Builder: builder,
		Now:     func() time.Time { return time.UnixMilli(1700000000123) },
	}
	return svc, repo, builder
}

func TestCreateLandingPage(t *testing.T) {
	svc, repo, _ := newLandingService()

	p, err := svc.Create(context.Background(), service.LandingPageInput{Name: "  Spring Sale ", BrandID: 7})
	require.NoError(t, err)

	assert.Equal(t, "Spring Sale", p.Name)
	assert.Equal(t, "Acme", p.Brand)
	assert.Regexp(t, `^session_1700000000123_[0-9a-z]{9}$`, p.SessionID)
	require.NotNil(t, p.HTMLCode)
	assert.Equal(t, "", *p.HTMLCode)
	assert.Empty(t, p.Images)
	assert.Len(t, repo.pages, 1)
}

func TestCreateLandingPageValidation(t *testing.T) {
	svc, repo, _ := newLandingService()

	for _, in := range []service.LandingPageInput{
		{Name: " ", BrandID: 7},
		{Name: "x"},
		{Name: "x", BrandID: 42},
	} {
		_, err := svc.Create(context.Background(), in)
		var ve *appErrors.ValidationError
		assert.ErrorAs(t, err, &ve)
	}
	assert.Empty(t, repo.pages)
}

func TestRenderInjectsHeaderCode(t *testing.T) {
	svc, _, _ := newLandingService(&model.LandingPage{
		ID:         1,
		SessionID:  "s1",
		HTMLCode:   strPtr(`<html><HEAD lang="en"><title>x</title></head><body><header>hi</header></body></html>`),
		HeaderCode: strPtr(`<script>track()</script>`),
	})

	html, err := svc.Render(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, `<html><HEAD lang="en">`+"\n"+`<script>track()</script><title>x</title></head><body><header>hi</header></body></html>`, html)
}

func TestRenderPlaceholderForEmptyPage(t *testing.T) {
	svc, _, _ := newLandingService(&model.LandingPage{
		ID: 1, SessionID: "s1", Name: "Tom & Jerry", Brand: "Acme", HTMLCode: strPtr("   "),
	})

	html, err := svc.Render(context.Background(), "s1")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Tom &amp; Jerry</h1>")
	assert.Contains(t, html, "Acme")
}

func TestRenderMissingPage(t *testing.T) {
	svc, _, _ := newLandingService()

	_, err := svc.Render(context.Background(), "nope")
	var nf *appErrors.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSendMessageReturnsBuilderReply(t *testing.T) {
	svc, _, builder := newLandingService(&model.LandingPage{ID: 1, SessionID: "s1"})
	builder.reply = &webhook.LandingReply{Response: "Done", IsLandingPageLive: true}

	reply, err := svc.SendMessage(context.Background(), "s1", "  make it blue ")
	require.NoError(t, err)
	assert.Equal(t, "Done", reply.Response)
	assert.Equal(t, []string{"make it blue"}, builder.prompts)
}

func TestSendMessageTimeoutIsFriendly(t *testing.T) {
	svc, _, builder := newLandingService(&model.LandingPage{ID: 1, SessionID: "s1"})
	builder.err = appErrors.NewUpstream("n8n", 0, &url.Error{Op: "Post", URL: "http://x", Err: &net.OpError{Op: "dial", Err: context.DeadlineExceeded}})

	reply, err := svc.SendMessage(context.Background(), "s1", "hi")
	require.NoError(t, err)
	assert.Equal(t, service.SlowBuilderReply, reply.Response)
}

func TestSendMessageFlagsSlowTurn(t *testing.T) {
	svc, _, builder := newLandingService(&model.LandingPage{ID: 1, SessionID: "s1"})
	svc.SlowNotice = 5 * time.Millisecond
	builder.reply = &webhook.LandingReply{Response: "Done"}
	builder.delay = 50 * time.Millisecond

	reply, err := svc.SendMessage(context.Background(), "s1", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Done", reply.Response)
	assert.Equal(t, service.SlowBuilderNotice, reply.Notice)
}

func TestSendMessageFastTurnHasNoNotice(t *testing.T) {
	svc, _, builder := newLandingService(&model.LandingPage{ID: 1, SessionID: "s1"})
	svc.SlowNotice = time.Minute
	builder.reply = &webhook.LandingReply{Response: "Done"}

	reply, err := svc.SendMessage(context.Background(), "s1", "hi")
	require.NoError(t, err)
	assert.Empty(t, reply.Notice)
}

func TestSendMessageUpstreamStatusIsError(t *testing.T) {
	svc, _, builder := newLandingService(&model.LandingPage{ID: 1, SessionID: "s1"})
	builder.err = appErrors.NewUpstream("n8n", 500, errBoom)

	_, err := svc.SendMessage(context.Background(), "s1", "hi")
	var up *appErrors.UpstreamError
	assert.ErrorAs(t, err, &up)
}

func TestSendMessageRequiresPrompt(t *testing.T) {
	svc, _, builder := newLandingService(&model.LandingPage{ID: 1, SessionID: "s1"})

	_, err := svc.SendMessage(context.Background(), "s1", " ")
	var ve *appErrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, builder.prompts)
}
