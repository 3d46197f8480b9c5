// Package config loads server settings from defaults, an optional dotenv
// file and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/anoveskey1/evbpmusic-backend/internal/model"
)

// Storage backends
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Mail backends
const (
	MailTypeGraph = "graph"
	MailTypeLog   = "log"
)

// DefaultEnvFile is read when present; its absence is not an error
const DefaultEnvFile = ".env"

// Config holds runtime settings for the guestbook server.
type Config struct {
	Host string
	Port int

	StorageType string
	DataDir     string
	RedisURL    string

	MailType          string
	OAuthTenantID     string
	OAuthClientID     string
	OAuthClientSecret string
	// GraphScope is the token scope, read from GRAPH_TOKEN_URL
	GraphScope        string
	GraphAuthorityURL string
	GraphBaseURL      string
	EmailSender       string
	EmailRecipient    string

	AllowedOrigins   []string
	RedemptionPolicy model.RedemptionPolicy
	CodeTTL          time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Host = ""
	c.Port = 3000
	c.StorageType = StorageTypeFile
	c.DataDir = "data"
	c.MailType = MailTypeLog
	c.GraphScope = "https://graph.microsoft.com/.default"
	c.GraphAuthorityURL = "https://login.microsoftonline.com"
	c.GraphBaseURL = "https://graph.microsoft.com/v1.0"
	c.AllowedOrigins = []string{"http://localhost:5173"}
	c.RedemptionPolicy = model.RedemptionNone
	c.CodeTTL = 0
}

// Load builds a Config from defaults, then envFile (skipped when it does not
// exist), then the process environment.
func Load(envFile string) (*Config, error) {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.apply(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	str("HOST", &c.Host)
	str("STORAGE_TYPE", &c.StorageType)
	str("DATA_DIR", &c.DataDir)
	str("REDIS_URL", &c.RedisURL)
	str("MAIL_TYPE", &c.MailType)
	str("OAUTH_TENANT_ID", &c.OAuthTenantID)
	str("OAUTH_CLIENT_ID", &c.OAuthClientID)
	str("OAUTH_CLIENT_SECRET", &c.OAuthClientSecret)
	str("GRAPH_TOKEN_URL", &c.GraphScope)
	str("GRAPH_AUTHORITY_URL", &c.GraphAuthorityURL)
	str("GRAPH_BASE_URL", &c.GraphBaseURL)
	str("EMAIL_SENDER", &c.EmailSender)
	str("EMAIL_RECIPIENT", &c.EmailRecipient)

	if v, ok := lookup("PORT"); ok {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Port = port
	}

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok {
		c.AllowedOrigins = splitList(v)
	}

	if v, ok := lookup("REDEMPTION_POLICY"); ok {
		c.RedemptionPolicy = model.RedemptionPolicy(strings.ToLower(strings.TrimSpace(v)))
	}

	if v, ok := lookup("VALIDATION_CODE_TTL"); ok && strings.TrimSpace(v) != "" {
		ttl, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("VALIDATION_CODE_TTL: %w", err)
		}
		c.CodeTTL = ttl
	}

	return nil
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT: %d out of range", c.Port)
	}

	switch c.StorageType {
	case StorageTypeFile:
		if c.DataDir == "" {
			return errors.New("DATA_DIR required when STORAGE_TYPE=file")
		}
	case StorageTypeMemory:
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("STORAGE_TYPE: invalid value %q: must be 'file', 'memory' or 'redis'", c.StorageType)
	}

	switch c.MailType {
	case MailTypeLog:
	case MailTypeGraph:
		if c.OAuthTenantID == "" || c.OAuthClientID == "" || c.OAuthClientSecret == "" {
			return errors.New("OAUTH_TENANT_ID, OAUTH_CLIENT_ID and OAUTH_CLIENT_SECRET required when MAIL_TYPE=graph")
		}
		if c.EmailSender == "" {
			return errors.New("EMAIL_SENDER required when MAIL_TYPE=graph")
		}
	default:
		return fmt.Errorf("MAIL_TYPE: invalid value %q: must be 'graph' or 'log'", c.MailType)
	}

	if !c.RedemptionPolicy.Valid() {
		return fmt.Errorf("REDEMPTION_POLICY: invalid value %q: must be 'none', 'require' or 'once'", c.RedemptionPolicy)
	}
	if c.CodeTTL < 0 {
		return fmt.Errorf("VALIDATION_CODE_TTL: must not be negative")
	}

	return nil
}

// splitList splits a comma-separated list, dropping blanks
func splitList(list string) []string {
	var items []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
