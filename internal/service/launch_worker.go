package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/unclebandit/marketing-ops-backend/internal/model"
)

// LaunchWorker delivers queued launch snapshots to the campaign delivery
// workflow. Handle has the queue.Handler signature.
type LaunchWorker struct {
	Launcher CampaignLauncher
}

func NewLaunchWorker(launcher CampaignLauncher) *LaunchWorker {
	return &LaunchWorker{Launcher: launcher}
}

// Handle processes one message. A body that is not a launch job is logged
// and dropped since redelivering it can never succeed.
func (w *LaunchWorker) Handle(body []byte) error {
	var job model.LaunchJob
	if err := json.Unmarshal(body, &job); err != nil || job.CampaignID == "" {
		slog.Error("⚠️ invalid launch job, dropping", "error", err, "body_bytes", len(body))
		return nil
	}

	if err := w.Launcher.LaunchCampaign(context.Background(), job); err != nil {
		slog.Error("❌ launch notification failed", "campaign_id", job.CampaignID, "error", err)
		return err
	}
	slog.Info("📨 launch notification delivered", "campaign_id", job.CampaignID, "campaign_name", job.CampaignName)
	return nil
}
