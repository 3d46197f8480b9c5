package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anoveskey1/evbpmusic-backend/internal/mail"
)

// fakeGraph serves both the token endpoint and sendMail
type fakeGraph struct {
	server      *httptest.Server
	tokenCalls  int
	authHeaders []string
	paths       []string
	bodies      []sendMailRequest
	status      int
}

func newFakeGraph(t *testing.T) *fakeGraph {
	t.Helper()

	f := &fakeGraph{status: http.StatusAccepted}
	mux := http.NewServeMux()
	mux.HandleFunc("/tenant-1/oauth2/v2.0/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"mock-access-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1.0/users/", func(w http.ResponseWriter, r *http.Request) {
		f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
		f.paths = append(f.paths, r.URL.Path)
		var body sendMailRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.bodies = append(f.bodies, body)
		w.WriteHeader(f.status)
		if f.status >= 300 {
			_, _ = w.Write([]byte(`{"error":{"code":"ErrorAccessDenied"}}`))
		}
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGraph) config() Config {
	cfg := DefaultConfig()
	cfg.TenantID = "tenant-1"
	cfg.ClientID = "client"
	cfg.ClientSecret = "secret"
	cfg.AuthorityURL = f.server.URL
	cfg.BaseURL = f.server.URL + "/v1.0"
	cfg.SenderAddress = "site@example.com"
	return cfg
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(DefaultConfig())
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.TenantID, cfg.ClientID, cfg.ClientSecret = "t", "c", "s"
	_, err = New(cfg)
	assert.Error(t, err, "sender address is required")
}

func TestTokenURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TenantID = "abc"
	assert.Equal(t, "https://login.microsoftonline.com/abc/oauth2/v2.0/token", cfg.TokenURL())
}

func TestSendUsesClientCredentialsToken(t *testing.T) {
	f := newFakeGraph(t)
	sender, err := New(f.config())
	require.NoError(t, err)

	err = sender.Send(context.Background(), mail.Message{
		To:      "johndoe@mocksite.com",
		Subject: "Validation Code for user1",
		Body:    "Your validation code is: abc",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.tokenCalls)
	require.Len(t, f.authHeaders, 1)
	assert.Equal(t, "Bearer mock-access-token", f.authHeaders[0])
	assert.Equal(t, "/v1.0/users/site@example.com/sendMail", f.paths[0])
}

func TestSendBuildsGraphMessage(t *testing.T) {
	f := newFakeGraph(t)
	sender, err := New(f.config())
	require.NoError(t, err)

	err = sender.Send(context.Background(), mail.Message{
		To:      "owner@example.com",
		Subject: "Test",
		Body:    "Hello!",
		ReplyTo: "somedude@awebsite.com",
	})
	require.NoError(t, err)

	require.Len(t, f.bodies, 1)
	msg := f.bodies[0].Message
	assert.Equal(t, "Text", msg.Body.ContentType)
	assert.Equal(t, "Hello!", msg.Body.Content)
	assert.Equal(t, "Test", msg.Subject)
	assert.Equal(t, "owner@example.com", msg.ToRecipients[0].EmailAddress.Address)
	require.Len(t, msg.ReplyTo, 1)
	assert.Equal(t, "somedude@awebsite.com", msg.ReplyTo[0].EmailAddress.Address)
}

func TestSendOmitsEmptyReplyTo(t *testing.T) {
	body, err := json.Marshal(newSendMailRequest(mail.Message{To: "a@x.com", Subject: "s", Body: "b"}))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "replyTo")
}

func TestSendReportsHTTPFailure(t *testing.T) {
	f := newFakeGraph(t)
	f.status = http.StatusForbidden
	sender, err := New(f.config())
	require.NoError(t, err)

	err = sender.Send(context.Background(), mail.Message{To: "a@x.com", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}
