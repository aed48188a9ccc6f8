package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	BaseURL    string

	MySQLDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret      string
	SessionTTL     time.Duration
	ActionTokenTTL time.Duration

	OTPTTL          time.Duration
	SendCodeLimit   int
	SendCodeWindow  time.Duration
	DevMailFallback bool

	CoordinatorEmails []string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string

	UploadDir    string
	MaxImageSize int64

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("MYSQL_DSN", "user:password@tcp(localhost:3306)/clubhub?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("SESSION_TTL", "1h")
	v.SetDefault("ACTION_TOKEN_TTL", "168h")
	v.SetDefault("OTP_TTL", "300s")
	v.SetDefault("SEND_CODE_LIMIT", 6)
	v.SetDefault("SEND_CODE_WINDOW", "1m")
	v.SetDefault("DEV_MAIL_FALLBACK", false)
	v.SetDefault("COORDINATOR_EMAILS", "coordinator@campus.edu")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_IMAGE_SIZE", 5<<20)

	coordinators := make([]string, 0, 1)
	for _, e := range strings.Split(v.GetString("COORDINATOR_EMAILS"), ",") {
		if e = strings.TrimSpace(strings.ToLower(e)); e != "" {
			coordinators = append(coordinators, e)
		}
	}

	return &Config{
		ServerPort:        v.GetString("SERVER_PORT"),
		BaseURL:           strings.TrimRight(v.GetString("BASE_URL"), "/"),
		MySQLDSN:          v.GetString("MYSQL_DSN"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisDB:           v.GetInt("REDIS_DB"),
		RedisPass:         v.GetString("REDIS_PASSWORD"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		SessionTTL:        v.GetDuration("SESSION_TTL"),
		ActionTokenTTL:    v.GetDuration("ACTION_TOKEN_TTL"),
		OTPTTL:            v.GetDuration("OTP_TTL"),
		SendCodeLimit:     v.GetInt("SEND_CODE_LIMIT"),
		SendCodeWindow:    v.GetDuration("SEND_CODE_WINDOW"),
		DevMailFallback:   v.GetBool("DEV_MAIL_FALLBACK"),
		CoordinatorEmails: coordinators,
		SMTPHost:          v.GetString("SMTP_HOST"),
		SMTPPort:          v.GetInt("SMTP_PORT"),
		SMTPUser:          v.GetString("SMTP_USER"),
		SMTPPass:          v.GetString("SMTP_PASSWORD"),
		FromEmail:         v.GetString("FROM_EMAIL"),
		UploadDir:         v.GetString("UPLOAD_DIR"),
		MaxImageSize:      v.GetInt64("MAX_IMAGE_SIZE"),
		SwaggerHost:       v.GetString("SWAGGER_HOST"),
	}
}

// IsCoordinator reports whether the given email belongs to a configured coordinator.
func (c *Config) IsCoordinator(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, coord := range c.CoordinatorEmails {
		if coord == email {
			return true
		}
	}
	return false
}
