// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unclebandit/marketing-ops-backend/internal/cache"
	"github.com/unclebandit/marketing-ops-backend/internal/config"
	"github.com/unclebandit/marketing-ops-backend/internal/controller"
	"github.com/unclebandit/marketing-ops-backend/internal/db"
	"github.com/unclebandit/marketing-ops-backend/internal/handler"
	"github.com/unclebandit/marketing-ops-backend/internal/logging"
	"github.com/unclebandit/marketing-ops-backend/internal/queue"
	"github.com/unclebandit/marketing-ops-backend/internal/repository"
	"github.com/unclebandit/marketing-ops-backend/internal/router"
	"github.com/unclebandit/marketing-ops-backend/internal/service"
	"github.com/unclebandit/marketing-ops-backend/internal/sms"
	"github.com/unclebandit/marketing-ops-backend/internal/storage"
	"github.com/unclebandit/marketing-ops-backend/internal/webhook"
)

func main() {
	cfg, err := config.LoadFromEnv(configPath())
	if err != nil {
		log.Fatal("❌ failed to load config: ", err)
	}
	logging.Init(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("❌ failed to connect to database: ", err)
	}
	defer conn.Close()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("❌ failed to configure storage: ", err)
	}

	n8n := webhook.NewClient(cfg.Webhooks)
	twilio := sms.NewClient(cfg.Twilio)
	if !cfg.Twilio.Enabled() {
		log.Println("⚠️ Twilio is not configured, test MMS will fail")
	}

	q, closeQueue := openQueue(cfg.Queue, n8n)
	defer closeQueue()

	redisClient := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		log.Println("⚠️ REDIS_ADDR not set, lead listings are not cached")
	}

	// Repositories
	campaignRepo := &repository.CampaignRepository{DB: conn}
	brandRepo := &repository.BrandRepository{DB: conn}
	pageRepo := &repository.LandingPageRepository{DB: conn}
	imageRepo := &repository.ImageRepository{DB: conn}

	// Services
	leadService := &service.LeadService{
		Source: n8n,
		Cache:  cache.NewLeadCache(redisClient, cfg.Redis.LeadTTL()),
	}
	campaignService := &service.CampaignService{
		CampaignRepo:    campaignRepo,
		BrandRepo:       brandRepo,
		LandingPageRepo: pageRepo,
		Leads:           leadService,
		Queue:           q,
		Landing:         cfg.Landing,
	}
	contentService := &service.ContentService{
		Brands:    brandRepo,
		Pages:     pageRepo,
		Campaigns: campaignRepo,
		Leads:     leadService,
		Generator: n8n,
		Email:     n8n,
		SMS:       twilio,
		Landing:   cfg.Landing,
	}
	pageService := &service.LandingPageService{
		Pages:      pageRepo,
		Brands:     brandRepo,
		Builder:    n8n,
		SlowNotice: cfg.Webhooks.SlowNotice(),
	}

	api := router.New(router.Deps{
		Campaigns: &controller.CampaignController{
			CampaignService: campaignService,
			ContentService:  contentService,
		},
		Brands:       &controller.BrandController{BrandService: &service.BrandService{Brands: brandRepo}},
		LandingPages: &controller.LandingPageController{LandingPageService: pageService},
		Leads:        &controller.LeadController{LeadService: leadService},
		Assistant: &controller.AssistantController{
			ChatService: &service.ChatService{Assistant: n8n},
			FlowService: &service.FlowService{Assistant: n8n, Leads: leadService},
			LogService:  &service.LogService{Executions: n8n, Flows: cfg.Flows},
		},
		Images: &handler.ImageHandler{
			Service:        &service.ImageService{Images: imageRepo, Store: store},
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
		},
		Landing:     &handler.LandingHandler{Service: pageService},
		Health:      &handler.HealthHandler{DB: conn},
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	log.Printf("🚀 Server running on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("❌ server failed: ", err)
	}
	log.Println("👋 Server stopped")
}

// openQueue connects the launch queue. With the in-memory driver the launch
// worker runs inside this process; with amqp it runs in cmd/worker.
func openQueue(cfg config.QueueConfig, launcher service.CampaignLauncher) (queue.Queue, func()) {
	if cfg.Driver == "amqp" {
		q, err := queue.NewAMQPQueue(cfg.URL)
		if err != nil {
			log.Fatal("❌ failed to connect to queue: ", err)
		}
		log.Println("✅ Publishing launches to RabbitMQ")
		return q, func() { q.Close() }
	}

	q := queue.NewInMemoryQueue(cfg.MaxRetries)
	if err := q.Subscribe(queue.LaunchTopic, service.NewLaunchWorker(launcher).Handle); err != nil {
		log.Fatal("❌ failed to start launch worker: ", err)
	}
	log.Println("✅ In-memory launch worker started")
	return q, q.Wait
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
