package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the server, worker and seeder.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Storage  StorageConfig  `yaml:"storage"`
	Webhooks WebhookConfig  `yaml:"webhooks"`
	Flows    FlowConfig     `yaml:"flows"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Redis    RedisConfig    `yaml:"redis"`
	Queue    QueueConfig    `yaml:"queue"`
	Landing  LandingConfig  `yaml:"landing"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	CORSOrigins    []string `yaml:"cors_origins"`
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

type DatabaseConfig struct {
	URL             string `yaml:"url"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime_minutes"`
}

type SupabaseConfig struct {
	URL            string `yaml:"url"`
	AnonKey        string `yaml:"anon_key"`
	ServiceRoleKey string `yaml:"service_role_key"`
}

// ProjectRef is the first host label of the project URL.
func (s SupabaseConfig) ProjectRef() string {
	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.Split(u.Hostname(), ".")[0]
}

// StorageConfig selects the object store backing the images bucket.
type StorageConfig struct {
	Driver        string `yaml:"driver"` // s3 or minio
	Endpoint      string `yaml:"endpoint"`
	Region        string `yaml:"region"`
	Bucket        string `yaml:"bucket"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	SessionToken  string `yaml:"session_token"`
	PublicBaseURL string `yaml:"public_base_url"`
	UseSSL        bool   `yaml:"use_ssl"`
}

type WebhookConfig struct {
	LeadsURL           string `yaml:"leads_url"`
	ContentURL         string `yaml:"content_url"`
	LandingPageURL     string `yaml:"landing_page_url"`
	LaunchURL          string `yaml:"launch_url"`
	TestEmailURL       string `yaml:"test_email_url"`
	ExecutionsURL      string `yaml:"executions_url"`
	ExecutionDetailURL string `yaml:"execution_detail_url"`
	ChatURL            string `yaml:"chat_url"`
	LeadsFlowURL       string `yaml:"leads_flow_url"`
	APIKey             string `yaml:"api_key"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	LandingTimeoutSecs int    `yaml:"landing_timeout_seconds"`
	SlowNoticeSeconds  int    `yaml:"slow_notice_seconds"`
	MaxResponseBytes   int64  `yaml:"max_response_bytes"`
}

func (w WebhookConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

func (w WebhookConfig) LandingTimeout() time.Duration {
	return time.Duration(w.LandingTimeoutSecs) * time.Second
}

func (w WebhookConfig) SlowNotice() time.Duration {
	return time.Duration(w.SlowNoticeSeconds) * time.Second
}

// FlowConfig names the automation workflows whose executions are listed on
// the logs screen.
type FlowConfig struct {
	LeadsWorkflowID  string `yaml:"leads_workflow_id"`
	BundleWorkflowID string `yaml:"bundle_workflow_id"`
}

// WorkflowID resolves a flow name ("leads" or "bundle") to its id.
func (f FlowConfig) WorkflowID(flow string) (string, bool) {
	switch flow {
	case "", "leads":
		return f.LeadsWorkflowID, true
	case "bundle":
		return f.BundleWorkflowID, true
	}
	return "", false
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
	BaseURL    string `yaml:"base_url"`
}

func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

type RedisConfig struct {
	Addr           string `yaml:"addr"`
	Password       string `yaml:"password"`
	DB             int    `yaml:"db"`
	LeadTTLSeconds int    `yaml:"lead_ttl_seconds"`
}

func (r RedisConfig) LeadTTL() time.Duration {
	return time.Duration(r.LeadTTLSeconds) * time.Second
}

type QueueConfig struct {
	Driver     string `yaml:"driver"` // memory or amqp
	URL        string `yaml:"url"`
	MaxRetries int    `yaml:"max_retries"`
}

type LandingConfig struct {
	PublicBaseURL string `yaml:"public_base_url"`
}

// PageURL is the public address of a landing page session.
func (l LandingConfig) PageURL(sessionID string) string {
	return strings.TrimRight(l.PublicBaseURL, "/") + "/" + sessionID
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads path (if it exists) and applies defaults. A missing file is not
// an error; the environment alone can configure the service.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, err
		}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads .env (if present), the YAML file, then environment
// overrides.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Supabase.URL, "NEXT_PUBLIC_SUPABASE_URL", "SUPABASE_URL")
	setString(&cfg.Supabase.AnonKey, "NEXT_PUBLIC_SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY")
	setString(&cfg.Supabase.ServiceRoleKey, "SUPABASE_SERVICE_ROLE_KEY")

	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.Region, "STORAGE_REGION")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Storage.PublicBaseURL, "STORAGE_PUBLIC_BASE_URL")
	if v := os.Getenv("STORAGE_USE_SSL"); v != "" {
		cfg.Storage.UseSSL, _ = strconv.ParseBool(v)
	}

	setString(&cfg.Webhooks.APIKey, "N8N_API_KEY")
	setString(&cfg.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setString(&cfg.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setString(&cfg.Twilio.FromNumber, "TWILIO_FROM_NUMBER", "TWILIO_PHONE_NUMBER")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Queue.Driver, "QUEUE_DRIVER")
	setString(&cfg.Queue.URL, "AMQP_URL")
	setString(&cfg.Landing.PublicBaseURL, "LANDING_PUBLIC_BASE_URL")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	cfg.deriveStorage()
	return cfg, nil
}

// setString assigns the first non-empty env var among keys.
func setString(dst *string, keys ...string) {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			*dst = v
			return
		}
	}
}

const webhookBase = "https://evenbetterbuy.app.n8n.cloud/webhook/"

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 100 << 20
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "s3"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "images"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}

	w := &cfg.Webhooks
	defaultString(&w.LeadsURL, webhookBase+"1af20e39-0067-4f50-87f1-d7cf47e21746")
	defaultString(&w.ContentURL, webhookBase+"70e75e07-a792-4e68-983e-9e940e393de2")
	defaultString(&w.LandingPageURL, webhookBase+"landing-page-generator")
	defaultString(&w.LaunchURL, webhookBase+"launch-campaign")
	defaultString(&w.TestEmailURL, webhookBase+"f1bc25fc-3a15-41c2-8f74-06f1b66a94a5")
	defaultString(&w.ExecutionsURL, webhookBase+"97b7faee-b0bc-40df-b3f0-0db7426a059a")
	defaultString(&w.ExecutionDetailURL, webhookBase+"c275f012-39f5-40b5-85f4-67e48ff532e435")
	defaultString(&w.ChatURL, webhookBase+"881ffe97-466e-4757-b297-b64118d40f8c")
	defaultString(&w.LeadsFlowURL, webhookBase+"c3ce318e-0d2f-4051-88fa-3a4291e4a973")
	if w.TimeoutSeconds == 0 {
		w.TimeoutSeconds = 30
	}
	if w.LandingTimeoutSecs == 0 {
		w.LandingTimeoutSecs = 600
	}
	if w.SlowNoticeSeconds == 0 {
		w.SlowNoticeSeconds = 60
	}
	if w.MaxResponseBytes == 0 {
		w.MaxResponseBytes = 16 << 20
	}

	defaultString(&cfg.Flows.LeadsWorkflowID, "g6A1VMI4Mofkc3Mu")
	defaultString(&cfg.Flows.BundleWorkflowID, "yJSsttzrtd4exJby")
	defaultString(&cfg.Twilio.BaseURL, "https://api.twilio.com")
	if cfg.Redis.LeadTTLSeconds == 0 {
		cfg.Redis.LeadTTLSeconds = 60
	}
	defaultString(&cfg.Queue.Driver, "memory")
	defaultString(&cfg.Landing.PublicBaseURL, "https://landing-page-bulder.vercel.app/landing")
	defaultString(&cfg.Log.Level, "info")
}

// deriveStorage fills storage settings from the Supabase project when they
// are not given explicitly. Supabase's S3 endpoint accepts the project ref
// as access key and the anon key as secret, with the service role key as
// session token.
func (cfg *Config) deriveStorage() {
	base := strings.TrimRight(cfg.Supabase.URL, "/")
	if base == "" {
		return
	}
	s := &cfg.Storage
	if s.Endpoint == "" && s.Driver == "s3" {
		s.Endpoint = base + "/storage/v1/s3"
	}
	if s.PublicBaseURL == "" {
		s.PublicBaseURL = base + "/storage/v1/object/public"
	}
	if s.AccessKey == "" {
		s.AccessKey = cfg.Supabase.ProjectRef()
		s.SecretKey = cfg.Supabase.AnonKey
		s.SessionToken = cfg.Supabase.ServiceRoleKey
	}
}

func defaultString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
