package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string

	AdminUser      string
	AdminPassHash  string // bcrypt
	AuthHMACSecret string

	CORSOrigins []string

	GeminiAPIKey      string
	GeminiModel       string
	GeminiBaseURL     string
	GenerationTimeout time.Duration
	GenerationRetries int
	GenerationBackoff time.Duration

	LogLevel  string
	LogOutput string // stdout|file
	LogPath   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(ModeOffline))
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "")
	v.SetDefault("blob_base_path", "./data")
	v.SetDefault("admin_user", "admin")
	// empty hash: offline mode accepts password == username, online mode refuses login
	v.SetDefault("admin_pass_hash", "")
	v.SetDefault("auth_hmac_secret", "supersecret-dev-key")
	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-pro")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("generation_timeout", "30s")
	v.SetDefault("generation_retries", 2)
	v.SetDefault("generation_backoff", "500ms")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_output", "stdout")
	v.SetDefault("log_path", "./logs")
}

// New returns a viper instance with defaults and environment binding
// (HTTP_ADDR, DB_DRIVER, GEMINI_API_KEY, ...).
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// FromEnv loads configuration from the environment.
func FromEnv() Config {
	return Load(New())
}

// Load reads a Config from v. An optional config file can be merged into v
// before calling this.
func Load(v *viper.Viper) Config {
	mode := Mode(strings.ToLower(v.GetString("mode")))
	if mode != ModeOnline {
		mode = ModeOffline
	}
	return Config{
		Mode:              mode,
		HTTPAddr:          v.GetString("http_addr"),
		DBDriver:          v.GetString("db_driver"),
		DBDSN:             v.GetString("db_dsn"),
		BlobBasePath:      v.GetString("blob_base_path"),
		AdminUser:         v.GetString("admin_user"),
		AdminPassHash:     v.GetString("admin_pass_hash"),
		AuthHMACSecret:    v.GetString("auth_hmac_secret"),
		CORSOrigins:       csv(v.GetString("cors_origins")),
		GeminiAPIKey:      v.GetString("gemini_api_key"),
		GeminiModel:       v.GetString("gemini_model"),
		GeminiBaseURL:     v.GetString("gemini_base_url"),
		GenerationTimeout: v.GetDuration("generation_timeout"),
		GenerationRetries: v.GetInt("generation_retries"),
		GenerationBackoff: v.GetDuration("generation_backoff"),
		LogLevel:          v.GetString("log_level"),
		LogOutput:         v.GetString("log_output"),
		LogPath:           v.GetString("log_path"),
	}
}

func csv(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
