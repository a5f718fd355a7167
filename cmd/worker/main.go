// cmd/worker/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/unclebandit/marketing-ops-backend/internal/config"
	"github.com/unclebandit/marketing-ops-backend/internal/logging"
	"github.com/unclebandit/marketing-ops-backend/internal/queue"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
	"github.com/unclebandit/marketing-ops-backend/internal/webhook"
)

// The worker consumes campaign launch jobs from RabbitMQ and posts each one
// to the delivery workflow. It exits when the broker connection drops so the
// supervisor can restart it.
func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.LoadFromEnv(path)
	if err != nil {
		log.Fatal("❌ failed to load config: ", err)
	}
	logging.Init(cfg.Log.Level)

	if cfg.Queue.URL == "" {
		log.Fatal("❌ AMQP_URL is not configured")
	}
	q, err := queue.NewAMQPQueue(cfg.Queue.URL)
	if err != nil {
		log.Fatal("❌ ", err)
	}
	defer q.Close()

	if err := consume(q, webhook.NewClient(cfg.Webhooks)); err != nil {
		log.Fatal("❌ ", err)
	}
	log.Println("👷 Worker running, waiting for launch jobs...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Println("👋 Worker stopped")
	case err := <-q.NotifyClose():
		log.Fatal("❌ broker connection closed: ", err)
	}
}

func consume(q queue.Queue, launcher service.CampaignLauncher) error {
	return q.Subscribe(queue.LaunchTopic, service.NewLaunchWorker(launcher).Handle)
}
