package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	SiteURL        string
	AllowedOrigins []string
	LogLevel       string
	GinMode        string
	// Contact channels
	ContactEmailTo string
	BrandName      string
	PhoneNumber    string // E.164, used for tel: links
	WhatsAppNumber string // digits only, used for wa.me links
	// Contact form behaviour
	StatusRevertSeconds int // how long the success message stays visible
	MailtoMaxLength     int // longest mailto: link we hand to a mail client
	SessionTTLMinutes   int // idle visitor sessions are torn down after this
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	// Misc
	SwaggerEnabled bool
	ContentPath    string // optional override of the embedded site.yaml
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; missing file is fine in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		SiteURL:        strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", nil),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		GinMode:        getEnv("GIN_MODE", ""),
		// Contact channels
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "balkanspinewellness@gmail.com"),
		BrandName:      getEnv("BRAND_NAME", "Balkan Spine Wellness"),
		PhoneNumber:    getEnv("PHONE_NUMBER", "+37360797998"),
		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "353874898785"),
		// Contact form behaviour
		StatusRevertSeconds: getEnvInt("STATUS_REVERT_SECONDS", 8),
		MailtoMaxLength:     getEnvInt("MAILTO_MAX_LENGTH", 2000),
		SessionTTLMinutes:   getEnvInt("SESSION_TTL_MINUTES", 30),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300),
		// Misc
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", true),
		ContentPath:    getEnv("CONTENT_PATH", ""),
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.StatusRevertSeconds <= 0 {
		cfg.StatusRevertSeconds = 8
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			out = append(out, item)
		}
	}
	return out
}
