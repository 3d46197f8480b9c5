package factory

import (
	"strings"
	"time"

	"github.com/anoveskey1/evbpmusic-backend/internal/dependencies/mocks"
	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/storage/memory"
	"github.com/anoveskey1/evbpmusic-backend/internal/testutil"
)

// TestContactRecipient receives contact form mail in test apps
const TestContactRecipient = "owner@example.com"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	Storage    *memory.Storage
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockSender *mocks.MockSender
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(Config{Policy: model.RedemptionNone})
}

// NewTestAppWithConfig is NewTestApp with a chosen redemption policy and code TTL.
// Storage settings in cfg are ignored; test apps always use memory storage.
func NewTestAppWithConfig(cfg Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockSender := mocks.NewMockSender()

	if cfg.ContactRecipient == "" {
		cfg.ContactRecipient = TestContactRecipient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = testutil.NopLogger()
	}

	app := newWithDependencies(store, mockClock, mockRandom, mockSender, cfg, logger)

	return &TestApp{
		App:        app,
		Storage:    store,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockSender: mockSender,
	}
}

// LastCode returns the validation code carried by the most recent mail
func (t *TestApp) LastCode() model.ValidationCode {
	sent := t.MockSender.Sent()
	if len(sent) == 0 {
		return ""
	}
	body := sent[len(sent)-1].Body
	const marker = "Your validation code is: "
	i := strings.Index(body, marker)
	if i < 0 || len(body) < i+len(marker)+model.ValidationCodeLength {
		return ""
	}
	start := i + len(marker)
	return model.ValidationCode(body[start : start+model.ValidationCodeLength])
}
