package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session store backends.
const (
	StoreCookie = "cookie"
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config holds the portal configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// APIBaseURL is the hospital backend root, e.g. http://localhost:8080/api.
	APIBaseURL     string
	BackendTimeout time.Duration

	SessionStore        string
	SessionSecret       string
	SessionTTL          time.Duration
	SessionCookieSecure bool

	RedisAddr     string
	RedisPassword string
	MongoURI      string
	MongoDatabase string

	CORSAllowedOrigins []string
	// TrustedProxies may set X-Forwarded-For; empty trusts none.
	TrustedProxies []string

	LoginRateLimitPerMinute int
	LoginRateLimitBurst     int

	OTLPEndpoint string
	OTLPInsecure bool
}

// Load reads the process environment. Missing and invalid entries are
// reported together.
func Load() (Config, error) {
	cfg := Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		APIBaseURL:              strings.TrimRight(getEnv("API_BASE_URL", ""), "/"),
		SessionStore:            strings.ToLower(getEnv("SESSION_STORE", StoreCookie)),
		SessionSecret:           getEnv("SESSION_SECRET", ""),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "portal"),
		CORSAllowedOrigins:      getEnvAsList("CORS_ALLOWED_ORIGINS"),
		TrustedProxies:          getEnvAsList("TRUSTED_PROXIES"),
		OTLPEndpoint:            getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		LoginRateLimitPerMinute: 30,
		LoginRateLimitBurst:     10,
		SessionTTL:              24 * time.Hour,
	}

	var missing, invalid []string

	if cfg.APIBaseURL == "" {
		missing = append(missing, "API_BASE_URL")
	} else if u, err := url.Parse(cfg.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		invalid = append(invalid, "API_BASE_URL")
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 {
		invalid = append(invalid, "PORT")
	}

	if d, ok := getEnvAsDuration("BACKEND_TIMEOUT", 0); ok && d >= 0 {
		cfg.BackendTimeout = d
	} else {
		invalid = append(invalid, "BACKEND_TIMEOUT")
	}

	if d, ok := getEnvAsDuration("SESSION_TTL", cfg.SessionTTL); ok && d > 0 {
		cfg.SessionTTL = d
	} else {
		invalid = append(invalid, "SESSION_TTL")
	}

	if v, ok := getEnvAsBool("SESSION_COOKIE_SECURE", false); ok {
		cfg.SessionCookieSecure = v
	} else {
		invalid = append(invalid, "SESSION_COOKIE_SECURE")
	}

	if v, ok := getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", false); ok {
		cfg.OTLPInsecure = v
	} else {
		invalid = append(invalid, "OTEL_EXPORTER_OTLP_INSECURE")
	}

	if n, ok := getEnvAsInt("LOGIN_RATE_LIMIT_PER_MIN", cfg.LoginRateLimitPerMinute); ok && n > 0 {
		cfg.LoginRateLimitPerMinute = n
	} else {
		invalid = append(invalid, "LOGIN_RATE_LIMIT_PER_MIN")
	}

	if n, ok := getEnvAsInt("LOGIN_RATE_LIMIT_BURST", cfg.LoginRateLimitBurst); ok && n > 0 {
		cfg.LoginRateLimitBurst = n
	} else {
		invalid = append(invalid, "LOGIN_RATE_LIMIT_BURST")
	}

	switch cfg.SessionStore {
	case StoreCookie:
		if cfg.SessionSecret == "" {
			missing = append(missing, "SESSION_SECRET")
		}
	case StoreMemory:
	case StoreRedis:
		if cfg.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	case StoreMongo:
		if cfg.MongoURI == "" {
			missing = append(missing, "MONGO_URI")
		}
	default:
		invalid = append(invalid, "SESSION_STORE")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("config: missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("config: invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// IsProduction reports whether the portal runs with ENV=production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, bool) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	return value, err == nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, bool) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.ParseBool(raw)
	return value, err == nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, bool) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, true
	}
	value, err := time.ParseDuration(raw)
	return value, err == nil
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
