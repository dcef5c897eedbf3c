package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port             string
	Timezone         string
	DBPath           string
	StorageDir       string
	FilesPath        string
	PublicBaseURL    string
	AuthJWTSecret    string
	AuthTokenTTL     time.Duration
	WeatherEndpoint  string
	WeatherAPIKey    string
	WeatherLang      string
	WeatherRulesPath string
	MaxUploadMB      int64
}

// Load reads .env (if any) and the process environment.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	cfg := FromEnv(os.Getenv)
	log.Printf("[cfg] %+v", cfg.Redacted())
	return cfg
}

// FromEnv builds the config from a lookup function so tests don't touch the process env.
func FromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return def
	}
	ttl, err := time.ParseDuration(get("AUTH_TOKEN_TTL", "12h"))
	if err != nil || ttl <= 0 {
		ttl = 12 * time.Hour
	}
	maxMB, err := strconv.ParseInt(get("MAX_UPLOAD_MB", "50"), 10, 64)
	if err != nil || maxMB <= 0 {
		maxMB = 50
	}
	return AppConfig{
		Port:             get("PORT", "8080"),
		Timezone:         get("TZ", "America/Sao_Paulo"),
		DBPath:           get("DB_PATH", "agrocrm.db"),
		StorageDir:       get("STORAGE_DIR", "uploads"),
		FilesPath:        filesPath(get("FILES_PATH", "/files")),
		PublicBaseURL:    strings.TrimRight(get("PUBLIC_BASE_URL", ""), "/"),
		AuthJWTSecret:    get("AUTH_JWT_SECRET", ""),
		AuthTokenTTL:     ttl,
		WeatherEndpoint:  get("WEATHER_ENDPOINT", "https://api.openweathermap.org"),
		WeatherAPIKey:    get("WEATHER_API_KEY", ""),
		WeatherLang:      get("WEATHER_LANG", "pt_br"),
		WeatherRulesPath: get("WEATHER_RULES_PATH", ""),
		MaxUploadMB:      maxMB,
	}
}

// Redacted is safe to log.
func (c AppConfig) Redacted() AppConfig {
	if c.AuthJWTSecret != "" {
		c.AuthJWTSecret = "***"
	}
	if c.WeatherAPIKey != "" {
		c.WeatherAPIKey = "***"
	}
	return c
}

func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("[cfg] unknown TZ %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

// FilesURL is the prefix stored in attachment URLs: PUBLIC_BASE_URL (an
// optional absolute origin) joined with the FILES_PATH route.
func (c AppConfig) FilesURL() string {
	return c.PublicBaseURL + c.FilesPath
}

// filesPath forces FILES_PATH to be a rooted route; echo never matches a
// static prefix given as a full URL.
func filesPath(p string) string {
	if i := strings.Index(p, "://"); i >= 0 {
		rest := p[i+3:]
		if j := strings.Index(rest, "/"); j >= 0 {
			p = rest[j:]
		} else {
			p = ""
		}
	}
	p = "/" + strings.Trim(p, "/")
	if p == "/" {
		return "/files"
	}
	return p
}
