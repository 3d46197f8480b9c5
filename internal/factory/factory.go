package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/anoveskey1/evbpmusic-backend/internal/config"
	"github.com/anoveskey1/evbpmusic-backend/internal/dependencies/clock"
	"github.com/anoveskey1/evbpmusic-backend/internal/dependencies/random"
	"github.com/anoveskey1/evbpmusic-backend/internal/mail"
	"github.com/anoveskey1/evbpmusic-backend/internal/mail/graph"
	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/guestbook"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/signing"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/validation"
	"github.com/anoveskey1/evbpmusic-backend/internal/services/visitor"
	"github.com/anoveskey1/evbpmusic-backend/internal/storage"
	filestorage "github.com/anoveskey1/evbpmusic-backend/internal/storage/file"
	"github.com/anoveskey1/evbpmusic-backend/internal/storage/memory"
	redisstorage "github.com/anoveskey1/evbpmusic-backend/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.RecordStore
	Locks *storage.DocumentLocks

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Sender mail.Sender

	// Services
	Registry *validation.Registry
	Ledger   *guestbook.Ledger
	Workflow *signing.Workflow
	Counter  *visitor.Counter

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// DataDir is the document directory (required if StorageType is "file")
	DataDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// GraphConfig enables Graph mail delivery; if nil, mail is only logged
	GraphConfig *graph.Config
	// ContactRecipient receives contact form messages
	ContactRecipient string
	Policy           model.RedemptionPolicy
	CodeTTL          time.Duration
}

// FromConfig maps loaded server settings onto a factory Config
func FromConfig(c *config.Config, logger *slog.Logger) Config {
	cfg := Config{
		Logger:           logger,
		StorageType:      c.StorageType,
		DataDir:          c.DataDir,
		ContactRecipient: c.EmailRecipient,
		Policy:           c.RedemptionPolicy,
		CodeTTL:          c.CodeTTL,
	}

	if c.StorageType == config.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	if c.MailType == config.MailTypeGraph {
		graphCfg := graph.DefaultConfig()
		graphCfg.TenantID = c.OAuthTenantID
		graphCfg.ClientID = c.OAuthClientID
		graphCfg.ClientSecret = c.OAuthClientSecret
		graphCfg.Scope = c.GraphScope
		graphCfg.AuthorityURL = c.GraphAuthorityURL
		graphCfg.BaseURL = c.GraphBaseURL
		graphCfg.SenderAddress = c.EmailSender
		cfg.GraphConfig = &graphCfg
	}

	return cfg
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var (
		store   storage.RecordStore
		closers []io.Closer
	)
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeFile:
		if cfg.DataDir == "" {
			return nil, errors.New("DataDir required when StorageType is file")
		}
		fileStore, err := filestorage.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory' or 'redis'")
	}

	// Create mail transport
	var sender mail.Sender = mail.NewLogSender(logger)
	if cfg.GraphConfig != nil {
		graphSender, err := graph.New(*cfg.GraphConfig)
		if err != nil {
			return nil, err
		}
		sender = graphSender
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, clk, rnd, sender, cfg, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.RecordStore,
	clk clock.Clock,
	rnd random.Random,
	sender mail.Sender,
	cfg Config,
	logger *slog.Logger,
) *App {
	locks := storage.NewDocumentLocks()

	// Create services
	registry := validation.New(store, locks, clk, rnd, validation.Config{CodeTTL: cfg.CodeTTL}, logger)
	ledger := guestbook.New(store, locks, logger)
	workflow := signing.New(registry, ledger, sender, signing.Config{
		Policy:           cfg.Policy,
		ContactRecipient: cfg.ContactRecipient,
	}, logger)

	return &App{
		Store:    store,
		Locks:    locks,
		Clock:    clk,
		Random:   rnd,
		Sender:   sender,
		Registry: registry,
		Ledger:   ledger,
		Workflow: workflow,
		Counter:  visitor.NewCounter(),
	}
}

// Close releases connections held by the storage backend
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
