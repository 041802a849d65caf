// Package config loads service settings from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config enumerates every environment-sourced setting of the service.
type Config struct {
	ListenAddr string `env:"SERVER_ADDR" envDefault:":8080"`
	Debug      bool   `env:"DEBUG"`

	// 模型端配置（OpenAI 兼容接口，DeepSeek 等填 MODEL_BASE_URL）。
	ModelAPIKey  string `env:"MODEL_API_KEY,required,notEmpty"`
	ModelBaseURL string `env:"MODEL_BASE_URL"`
	ModelName    string `env:"MODEL_NAME,required,notEmpty"`

	// 公众号平台配置。
	WeChatAppID         string `env:"WECHAT_APP_ID,required,notEmpty"`
	WeChatAppSecret     string `env:"WECHAT_APP_SECRET,required,notEmpty"`
	DefaultThumbMediaID string `env:"DEFAULT_THUMB_MEDIA_ID"`
	MaxContentLength    int    `env:"MAX_CONTENT_LENGTH" envDefault:"20000"`

	ChunkMaxLength int `env:"CHUNK_MAX_LENGTH" envDefault:"2000"`

	AllowedExtensions []string `env:"ALLOWED_EXTENSIONS" envDefault:"pdf,txt,md,docx"`
	MaxUploadBytes    int64    `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`

	AuditLogPath string `env:"AUDIT_LOG_PATH" envDefault:"log.md"`
}

// Load reads .env (when present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
