package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	// AppOrigin is the public origin used to build redirect and reset URLs.
	AppOrigin string

	DBDSN string

	// MaxTransfersPerDay disables the capacity check when <= 0.
	MaxTransfersPerDay int

	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisAddr       string

	StripeSecretKey     string
	StripeWebhookSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	CORSAllowedOrigins []string
}

// App holds the environment loaded at startup. Handlers read it instead of
// touching os.Getenv per request.
var App Env

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	origin := strings.TrimSpace(os.Getenv("APP_ORIGIN"))
	if origin == "" {
		origin = "http://localhost:5173"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/trailporter?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	env := Env{
		AppAddr:             appAddr,
		GinMode:             strings.TrimSpace(os.Getenv("GIN_MODE")),
		AppOrigin:           origin,
		DBDSN:               dsn,
		MaxTransfersPerDay:  envInt("MAX_TRANSFERS_PER_DAY", 0),
		RateLimitMax:        envInt("RATE_LIMIT_MAX", 20),
		RateLimitWindow:     time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		RedisAddr:           strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		StripeSecretKey:     strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		StripeWebhookSecret: strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET")),
		SMTPHost:            strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:            envInt("SMTP_PORT", 587),
		SMTPUser:            strings.TrimSpace(os.Getenv("SMTP_USER")),
		SMTPPass:            os.Getenv("SMTP_PASS"),
		SMTPFrom:            strings.TrimSpace(os.Getenv("SMTP_FROM")),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	}

	App = env
	return env
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
