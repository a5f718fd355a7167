package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/marketing-ops-backend/internal/cache"
	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
)

func TestChatKeepsSession(t *testing.T) {
	a := &MockAssistant{reply: "Try a spring promo"}
	svc := &service.ChatService{Assistant: a}

	reply, err := svc.Chat(context.Background(), " ideas? ", "session_1_x")
	require.NoError(t, err)
	assert.Equal(t, "Try a spring promo", reply.Response)
	assert.Equal(t, "session_1_x", a.session)
}

func TestChatStartsSession(t *testing.T) {
	a := &MockAssistant{reply: "hi"}
	svc := &service.ChatService{Assistant: a, Now: func() time.Time { return time.UnixMilli(42) }}

	reply, err := svc.Chat(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Regexp(t, `^session_42_[0-9a-z]{9}$`, reply.SessionID)
	assert.Equal(t, reply.SessionID, a.session)

	_, err = svc.Chat(context.Background(), "  ", "")
	var ve *appErrors.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestLaunchLeadsFlow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	src := &MockLeadSource{data: []byte(leadListing)}
	leads := &service.LeadService{Source: src, Cache: cache.NewLeadCache(client, time.Minute)}
	_, err := leads.List(context.Background(), "")
	require.NoError(t, err)

	a := &MockAssistant{flowRes: json.RawMessage(`{"ok":true}`)}
	svc := &service.FlowService{Assistant: a, Leads: leads}

	res, err := svc.LaunchLeads(context.Background(), service.LeadsFlowInput{
		CampaignName: " Dentists TX ", Weblink: "https://maps.example.com/q",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(res.CampaignID)
	assert.NoError(t, err)
	assert.Equal(t, res.CampaignID, a.flowReq.CampaignID)
	assert.Equal(t, "Dentists TX", a.flowReq.CampaignName)
	assert.Equal(t, 20, a.flowReq.PerPage)
	assert.JSONEq(t, `{"ok":true}`, string(res.Response))

	_, err = leads.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestLaunchLeadsFlowValidation(t *testing.T) {
	a := &MockAssistant{}
	svc := &service.FlowService{Assistant: a}

	_, err := svc.LaunchLeads(context.Background(), service.LeadsFlowInput{CampaignName: "x"})
	var ve *appErrors.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, a.flowReq.CampaignID)
}
