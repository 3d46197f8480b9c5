package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anoveskey1/evbpmusic-backend/internal/api"
	"github.com/anoveskey1/evbpmusic-backend/internal/api/apierr"
	"github.com/anoveskey1/evbpmusic-backend/internal/api/response"
	"github.com/anoveskey1/evbpmusic-backend/internal/factory"
	"github.com/anoveskey1/evbpmusic-backend/internal/model"
	"github.com/anoveskey1/evbpmusic-backend/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithPolicy(t, model.RedemptionNone)
}

func newTestServerWithPolicy(t *testing.T, policy model.RedemptionPolicy) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestAppWithConfig(factory.Config{Policy: policy, Logger: logger})

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Ledger:         app.Ledger,
		Workflow:       app.Workflow,
		Counter:        app.Counter,
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// requestCode runs the email step and returns the mailed code
func (ts *testServer) requestCode(t *testing.T, username, email string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/send-validation-code-to-email", map[string]string{
		"username": username,
		"email":    email,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	return string(ts.app.LastCode())
}

func decodeAPIError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var body apierr.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRoot(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "There is nothing to see here. Perhaps you meant to visit the frontend?", rr.Body.String())
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestVisitorCountIncrements(t *testing.T) {
	ts := newTestServer(t)

	for want := int64(1); want <= 3; want++ {
		rr := ts.request(http.MethodGet, "/api/visitor-count", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp response.VisitorCount
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, want, resp.Count)
	}
}

func TestGuestbookEntriesEmpty(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/guestbook-entries", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	body := decodeAPIError(t, rr)
	assert.Equal(t, "DATA_UNAVAILABLE", body.Code)
	assert.Equal(t, "No guestbook entries found.", body.Message)
}

func TestGuestbookEntriesWhitespaceDocument(t *testing.T) {
	ts := newTestServer(t)
	ts.app.Storage.SetRaw("guestbook_entries", []byte("  \n"))

	rr := ts.request(http.MethodGet, "/api/guestbook-entries", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGuestbookEntriesCorruptDocument(t *testing.T) {
	ts := newTestServer(t)
	ts.app.Storage.SetRaw("guestbook_entries", []byte("{not json"))

	rr := ts.request(http.MethodGet, "/api/guestbook-entries", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeAPIError(t, rr).Code)
}

func TestSignAndListGuestbook(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/sign-guestbook", map[string]string{
		"username": "Test_User",
		"message":  "Hello World",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"message":"Thanks for signing my guestbook. You rock!"}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/sign-guestbook", map[string]string{
		"username": "Second",
		"message":  "Again",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodGet, "/api/guestbook-entries", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []response.GuestbookEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.Equal(t, []response.GuestbookEntry{
		{Username: "Test_User", Message: "Hello World"},
		{Username: "Second", Message: "Again"},
	}, entries)
}

func TestSignInvalidBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sign-guestbook", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeAPIError(t, rr).Code)
}

func TestSendValidationCode(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/send-validation-code-to-email", map[string]string{
		"username": "user1",
		"email":    "johndoe@mocksite.com",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.Message
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, response.MessageCodeSent, resp.Message)

	sent := ts.app.MockSender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "johndoe@mocksite.com", sent[0].To)
	assert.Equal(t, "Validation Code for user1", sent[0].Subject)
	assert.True(t, testutil.IsValidationCode(ts.app.LastCode()))
}

func TestSendValidationCodeMissingFields(t *testing.T) {
	ts := newTestServer(t)

	bodies := []any{
		map[string]string{"username": "user1"},
		map[string]string{"email": "a@x.com"},
		nil,
	}
	for _, body := range bodies {
		rr := ts.request(http.MethodPost, "/api/send-validation-code-to-email", body)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Missing required fields."}`, rr.Body.String())
	}

	_, ok := ts.app.Storage.Raw("guestbook_users")
	assert.False(t, ok)
	assert.Empty(t, ts.app.MockSender.Sent())
}

func TestSendValidationCodeDuplicate(t *testing.T) {
	ts := newTestServer(t)
	ts.requestCode(t, "user1", "johndoe@mocksite.com")

	// Same email, different username
	rr := ts.request(http.MethodPost, "/api/send-validation-code-to-email", map[string]string{
		"username": "user2",
		"email":    "johndoe@mocksite.com",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body := decodeAPIError(t, rr)
	assert.Equal(t, "USER_ALREADY_EXISTS", body.Code)
	assert.Contains(t, body.Message, "Everybody gets one.")
	assert.Len(t, ts.app.MockSender.Sent(), 1)
}

func TestSendValidationCodeDeliveryFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockSender.Err = errors.New("graph down")

	rr := ts.request(http.MethodPost, "/api/send-validation-code-to-email", map[string]string{
		"username": "user1",
		"email":    "johndoe@mocksite.com",
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, rr.Body.String())

	// The code stays issued
	raw, ok := ts.app.Storage.Raw("guestbook_users")
	require.True(t, ok)
	assert.Contains(t, string(raw), "johndoe@mocksite.com")
}

func TestValidateUser(t *testing.T) {
	ts := newTestServer(t)
	code := ts.requestCode(t, "user1", "johndoe@mocksite.com")

	for i := 0; i < 2; i++ {
		rr := ts.request(http.MethodPost, "/api/validate-user", map[string]string{"validationCode": code})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp response.ValidateUserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "User validation successful. You can now sign the guestbook!", resp.Message)
		assert.Equal(t, response.User{Username: "user1", Email: "johndoe@mocksite.com"}, resp.User)
	}
}

func TestValidateUserUnknownCode(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/validate-user", map[string]string{"validationCode": "1234567890abcdef1234567890abcdef1234567890"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	body := decodeAPIError(t, rr)
	assert.Equal(t, "USER_ENTRY_NOT_FOUND", body.Code)
	assert.Equal(t, "User entry not found. Please contact the site admin.", body.Message)
}

func TestSignGuestbookRequirePolicy(t *testing.T) {
	ts := newTestServerWithPolicy(t, model.RedemptionRequire)

	rr := ts.request(http.MethodPost, "/api/sign-guestbook", map[string]string{
		"username": "user1",
		"message":  "Hello",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "USER_ENTRY_NOT_FOUND", decodeAPIError(t, rr).Code)

	code := ts.requestCode(t, "user1", "johndoe@mocksite.com")
	rr = ts.request(http.MethodPost, "/api/sign-guestbook", map[string]string{
		"username":       "user1",
		"message":        "Hello",
		"validationCode": code,
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestSignGuestbookOncePolicy(t *testing.T) {
	ts := newTestServerWithPolicy(t, model.RedemptionOnce)
	code := ts.requestCode(t, "user1", "johndoe@mocksite.com")

	body := map[string]string{
		"username":       "user1",
		"message":        "Hello",
		"validationCode": code,
	}
	rr := ts.request(http.MethodPost, "/api/sign-guestbook", body)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/sign-guestbook", body)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSendEmail(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/send-email", map[string]string{
		"email":   "somedude@awebsite.com",
		"subject": "Test",
		"message": "Hello!",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Email sent successfully"}`, rr.Body.String())

	sent := ts.app.MockSender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, factory.TestContactRecipient, sent[0].To)
	assert.Equal(t, "somedude@awebsite.com", sent[0].ReplyTo)
}

func TestSendEmailMissingFields(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/send-email", map[string]string{
		"email":   "somedude@awebsite.com",
		"message": "Hello!",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Missing required fields."}`, rr.Body.String())
}

func TestSendEmailFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.app.MockSender.Err = errors.New("Failed to send email")

	rr := ts.request(http.MethodPost, "/api/send-email", map[string]string{
		"email":   "somedude@awebsite.com",
		"subject": "Test",
		"message": "Hello!",
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, rr.Body.String())
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/sign-guestbook", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr = httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://elsewhere.example")
	rr = httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
