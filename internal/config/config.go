package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
)

const (
	SourceStatic = "static"
	SourceMongo  = "mongo"
)

const defaultMongoURI = "mongodb://localhost:27017/folio"

type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	SiteName     string `env:"SITE_NAME" envDefault:"Folio"`
	SiteTagline  string `env:"SITE_TAGLINE" envDefault:"Words that do the work."`
	DefaultYear  string `env:"DEFAULT_YEAR" envDefault:"2025"`
	TimezoneName string `env:"TZ" envDefault:"UTC"`

	// CatalogSource selects where case studies are read from. The static
	// catalog is embedded in the binary and always available.
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"static"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDB       string `env:"MONGO_DB"`

	RedisURL        string `env:"REDIS_URL"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTLSeconds int    `env:"CACHE_TTL_SECONDS" envDefault:"300"`

	FrontendOrigins    []string `env:"FRONTEND_ORIGINS" envSeparator:","`
	RateLimitContact   int      `env:"RATE_LIMIT_CONTACT" envDefault:"5"`
	RateLimitWindowSec int      `env:"RATE_LIMIT_WINDOW_SEC" envDefault:"60"`

	AdminAPIKey       string `env:"ADMIN_API_KEY"`
	AdminUser         string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string `env:"JWT_SECRET"`
	AccessTTLMinutes  int    `env:"ACCESS_TTL_MINUTES" envDefault:"60"`
	CookieSecure      bool   `env:"COOKIE_SECURE" envDefault:"false"`

	BrevoAPIKey      string `env:"BREVO_API_KEY"`
	BrevoSenderEmail string `env:"BREVO_SENDER_EMAIL"`
	BrevoSenderName  string `env:"BREVO_SENDER_NAME" envDefault:"Folio"`
	OwnerEmail       string `env:"OWNER_EMAIL"`

	Timezone *time.Location
}

// Load reads an optional .env file, then the environment. Variables
// already set in the environment win over the file.
func Load() (*Config, error) {
	loadDotEnv(".env")
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	loc, err := time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", cfg.TimezoneName, err)
	}
	cfg.Timezone = loc

	if cfg.CatalogSource == SourceMongo && cfg.MongoURI == "" {
		cfg.MongoURI = defaultMongoURI
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = mongoDBFromURI(cfg.MongoURI)
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "folio"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CatalogSource {
	case SourceStatic, SourceMongo:
	default:
		return fmt.Errorf("config: CATALOG_SOURCE must be %q or %q, got %q", SourceStatic, SourceMongo, c.CatalogSource)
	}
	if c.AdminPasswordHash != "" && c.JWTSecret == "" {
		return errors.New("config: ADMIN_PASSWORD_HASH requires JWT_SECRET")
	}
	if c.IsProduction() && !c.CookieSecure {
		return errors.New("config: COOKIE_SECURE must be true in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSec) * time.Second
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMinutes) * time.Minute
}

// UsesMongo reports whether a database is configured. The contact form
// stores messages whenever one is, even with the static catalog.
func (c *Config) UsesMongo() bool {
	return c.MongoURI != ""
}

func (c *Config) UsesRedis() bool {
	return c.RedisURL != "" || c.RedisAddr != ""
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}

func loadDotEnv(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, val)
	}
}
