package main

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/queue"
)

// MockLauncher records delivered jobs in memory
type MockLauncher struct {
	mu   sync.Mutex
	jobs []model.LaunchJob
}

func (m *MockLauncher) LaunchCampaign(ctx context.Context, job model.LaunchJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	return nil
}

func TestWorker(t *testing.T) {
	q := queue.NewInMemoryQueue(0)
	launcher := &MockLauncher{}

	require.NoError(t, consume(q, launcher))
	require.NoError(t, q.Publish(queue.LaunchTopic, model.LaunchJob{CampaignID: "c-1", CampaignName: "Spring"}))
	require.NoError(t, q.Publish(queue.LaunchTopic, map[string]string{"unexpected": "shape"}))
	q.Wait()

	require.Len(t, launcher.jobs, 1)
	assert.Equal(t, "c-1", launcher.jobs[0].CampaignID)
	assert.Equal(t, "Spring", launcher.jobs[0].CampaignName)
}
