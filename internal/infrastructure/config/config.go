// Package config loads service configuration from TOML and environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Webhook     WebhookConfig
	Render      RenderConfig
	Store       StoreConfig
	Storage     StorageConfig
	Telegram    TelegramConfig
	WooCommerce WooCommerceConfig
	Backup      BackupConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodySize  int64
}

// WebhookConfig holds webhook ingestion settings
type WebhookConfig struct {
	// Secret verifies delivery signatures. Empty disables verification,
	// which is only acceptable in development.
	Secret string
}

// RenderConfig holds PDF rendering settings
type RenderConfig struct {
	Timeout   time.Duration
	RemoteURL string // Chrome DevTools websocket URL; empty launches a local browser
	NoSandbox bool
	FontPath  string
}

// StoreInfo shown on rendered documents
type StoreConfig struct {
	Name    string
	Phone   string
	Address string
}

// StorageConfig selects and configures the artifact store
type StorageConfig struct {
	// Backend is "filesystem" or "s3"
	Backend  string
	BasePath string
	S3       S3Config
}

// S3Config holds S3-compatible object storage settings
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	Prefix       string
	UseSSL       bool
	UsePathStyle bool
}

// TelegramConfig holds document delivery settings
type TelegramConfig struct {
	Enabled        bool
	Token          string
	GroupChatID    string
	APIBaseURL     string
	UsersFile      string
	TimeoutSeconds int
}

// WooCommerceConfig holds the store API credentials used by the backup tool
type WooCommerceConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	TimeoutSeconds int
}

// BackupConfig holds backup export settings
type BackupConfig struct {
	OutputDir   string
	ArchivePath string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ORDERDOCS_ prefix (e.g., ORDERDOCS_WEBHOOK_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ORDERDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
			MaxBodySize:  v.GetInt64("http.max_body_size"),
		},
		Webhook: WebhookConfig{
			Secret: v.GetString("webhook.secret"),
		},
		Render: RenderConfig{
			Timeout:   v.GetDuration("render.timeout"),
			RemoteURL: v.GetString("render.remote_url"),
			NoSandbox: v.GetBool("render.no_sandbox"),
			FontPath:  v.GetString("render.font_path"),
		},
		Store: StoreConfig{
			Name:    v.GetString("store.name"),
			Phone:   v.GetString("store.phone"),
			Address: v.GetString("store.address"),
		},
		Storage: StorageConfig{
			Backend:  v.GetString("storage.backend"),
			BasePath: v.GetString("storage.base_path"),
			S3: S3Config{
				Endpoint:     v.GetString("storage.s3.endpoint"),
				Region:       v.GetString("storage.s3.region"),
				Bucket:       v.GetString("storage.s3.bucket"),
				AccessKey:    v.GetString("storage.s3.access_key"),
				SecretKey:    v.GetString("storage.s3.secret_key"),
				Prefix:       v.GetString("storage.s3.prefix"),
				UseSSL:       v.GetBool("storage.s3.use_ssl"),
				UsePathStyle: v.GetBool("storage.s3.use_path_style"),
			},
		},
		Telegram: TelegramConfig{
			Enabled:        v.GetBool("telegram.enabled"),
			Token:          v.GetString("telegram.token"),
			GroupChatID:    v.GetString("telegram.group_chat_id"),
			APIBaseURL:     v.GetString("telegram.api_base_url"),
			UsersFile:      v.GetString("telegram.users_file"),
			TimeoutSeconds: v.GetInt("telegram.timeout_seconds"),
		},
		WooCommerce: WooCommerceConfig{
			BaseURL:        v.GetString("woocommerce.base_url"),
			ConsumerKey:    v.GetString("woocommerce.consumer_key"),
			ConsumerSecret: v.GetString("woocommerce.consumer_secret"),
			TimeoutSeconds: v.GetInt("woocommerce.timeout_seconds"),
		},
		Backup: BackupConfig{
			OutputDir:   v.GetString("backup.output_dir"),
			ArchivePath: v.GetString("backup.archive_path"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "orderdocs"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// rendering happens inside the request, so writes need headroom
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20
	}
	if cfg.Render.Timeout == 0 {
		cfg.Render.Timeout = 30 * time.Second
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "filesystem"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "output"
	}
	if cfg.Telegram.UsersFile == "" {
		cfg.Telegram.UsersFile = "telegram_users.json"
	}
	if cfg.Backup.OutputDir == "" {
		cfg.Backup.OutputDir = "backup"
	}
	if cfg.Backup.ArchivePath == "" {
		cfg.Backup.ArchivePath = "backup.zip"
	}
}

// validate checks configuration consistency
func (c *Config) validate() error {
	if c.IsProduction() && c.Webhook.Secret == "" {
		return fmt.Errorf("webhook.secret is required in production")
	}
	switch c.Storage.Backend {
	case "filesystem", "s3":
	default:
		return fmt.Errorf("storage.backend must be filesystem or s3, got %q", c.Storage.Backend)
	}
	if c.Storage.Backend == "s3" && c.Storage.S3.Bucket == "" {
		return fmt.Errorf("storage.s3.bucket is required for the s3 backend")
	}
	if c.Telegram.Enabled {
		if c.Telegram.Token == "" || c.Telegram.GroupChatID == "" {
			return fmt.Errorf("telegram.token and telegram.group_chat_id are required when telegram is enabled")
		}
	}
	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
