// Package graph sends mail through the Microsoft Graph sendMail endpoint
// using an application (client credentials) token.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/anoveskey1/evbpmusic-backend/internal/mail"
)

// Config holds the Graph application registration and mailbox settings
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// Scope requested for the token, e.g. https://graph.microsoft.com/.default
	Scope string
	// AuthorityURL is the identity platform host; the tenant token path is appended
	AuthorityURL string
	// BaseURL is the Graph API root
	BaseURL string
	// SenderAddress is the mailbox the application sends as
	SenderAddress string
	Timeout       time.Duration
}

// DefaultConfig returns the public-cloud endpoints
func DefaultConfig() Config {
	return Config{
		Scope:        "https://graph.microsoft.com/.default",
		AuthorityURL: "https://login.microsoftonline.com",
		BaseURL:      "https://graph.microsoft.com/v1.0",
		Timeout:      30 * time.Second,
	}
}

// TokenURL returns the tenant's v2 token endpoint
func (c Config) TokenURL() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimSuffix(c.AuthorityURL, "/"), url.PathEscape(c.TenantID))
}

// Sender implements mail.Sender against Graph
type Sender struct {
	httpClient *http.Client
	cfg        Config
}

// Ensure Sender implements the interface
var _ mail.Sender = (*Sender)(nil)

// New creates a Sender whose HTTP client fetches and refreshes tokens on demand
func New(cfg Config) (*Sender, error) {
	if cfg.TenantID == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("graph mail: tenant id, client id and client secret are required")
	}
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("graph mail: sender address is required")
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL(),
		Scopes:       []string{cfg.Scope},
	}

	httpClient := cc.Client(context.Background())
	httpClient.Timeout = cfg.Timeout

	return NewWithClient(httpClient, cfg), nil
}

// NewWithClient creates a Sender with an existing, already-authorized client (for testing)
func NewWithClient(httpClient *http.Client, cfg Config) *Sender {
	return &Sender{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

type emailAddress struct {
	Address string `json:"address"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type message struct {
	Body         itemBody    `json:"body"`
	Subject      string      `json:"subject"`
	ToRecipients []recipient `json:"toRecipients"`
	ReplyTo      []recipient `json:"replyTo,omitempty"`
}

type sendMailRequest struct {
	Message message `json:"message"`
}

func newSendMailRequest(msg mail.Message) sendMailRequest {
	m := message{
		Body:         itemBody{ContentType: "Text", Content: msg.Body},
		Subject:      msg.Subject,
		ToRecipients: []recipient{{EmailAddress: emailAddress{Address: msg.To}}},
	}
	if msg.ReplyTo != "" {
		m.ReplyTo = []recipient{{EmailAddress: emailAddress{Address: msg.ReplyTo}}}
	}
	return sendMailRequest{Message: m}
}

// Send posts msg to /users/{sender}/sendMail
func (s *Sender) Send(ctx context.Context, msg mail.Message) error {
	body, err := json.Marshal(newSendMailRequest(msg))
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s/sendMail", strings.TrimSuffix(s.cfg.BaseURL, "/"), url.PathEscape(s.cfg.SenderAddress))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sendMail returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return nil
}
