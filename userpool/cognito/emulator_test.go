package cognito_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/jrsteele09/go-cognito-bridge/keychain"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
	"github.com/jrsteele09/go-cognito-bridge/userpool/cognito"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const (
	testPoolID   = "eu-west-1_AbCdEfGhI"
	testClientID = "4abc5defghij6klmnop7qrstuv"
)

type emulatorRequest struct {
	Operation   string
	ContentType string
	Body        gjson.Result
}

// reply is what a handler answers: a status, optional headers and a body that is
// either a raw string or JSON encoded.
type reply struct {
	status  int
	headers map[string]string
	body    any
}

// emulator is a minimal Cognito Identity Provider endpoint.
type emulator struct {
	server *httptest.Server

	lock     sync.Mutex
	requests []emulatorRequest
	handlers map[string]func(body gjson.Result) reply
}

func newEmulator(t *testing.T) *emulator {
	t.Helper()
	e := &emulator{handlers: map[string]func(gjson.Result) reply{}}
	e.server = httptest.NewServer(http.HandlerFunc(e.serve))
	t.Cleanup(e.server.Close)
	return e
}

func (e *emulator) handle(operation string, h func(body gjson.Result) reply) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.handlers[operation] = h
}

func (e *emulator) requestsFor(operation string) []emulatorRequest {
	e.lock.Lock()
	defer e.lock.Unlock()
	var out []emulatorRequest
	for _, r := range e.requests {
		if r.Operation == operation {
			out = append(out, r)
		}
	}
	return out
}

func (e *emulator) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	operation := strings.TrimPrefix(r.Header.Get("X-Amz-Target"), "AWSCognitoIdentityProviderService.")

	e.lock.Lock()
	e.requests = append(e.requests, emulatorRequest{
		Operation:   operation,
		ContentType: r.Header.Get("Content-Type"),
		Body:        gjson.ParseBytes(raw),
	})
	h, ok := e.handlers[operation]
	e.lock.Unlock()

	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"__type":"UnknownOperationException"}`))
		return
	}

	rep := h(gjson.ParseBytes(raw))
	for k, v := range rep.headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("X-Amzn-Requestid", "req-1")
	if rep.status == 0 {
		rep.status = http.StatusOK
	}
	w.WriteHeader(rep.status)
	switch body := rep.body.(type) {
	case nil:
		_, _ = w.Write([]byte("{}"))
	case string:
		_, _ = w.Write([]byte(body))
	default:
		_ = json.NewEncoder(w).Encode(body)
	}
}

func failWith(errType, message string) func(gjson.Result) reply {
	return func(gjson.Result) reply {
		return reply{status: http.StatusBadRequest, body: map[string]string{"__type": errType, "message": message}}
	}
}

type clock struct {
	lock sync.Mutex
	now  time.Time
}

func (c *clock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
}

type testFixture struct {
	emulator *emulator
	clock    *clock
	keychain *keychain.MemoryStore
	pool     *cognito.Pool
}

func setupTestFixture(t *testing.T, options ...cognito.Option) *testFixture {
	t.Helper()
	f := &testFixture{
		emulator: newEmulator(t),
		clock:    &clock{now: time.Unix(1_800_000_000, 0)},
		keychain: keychain.NewMemoryStore(),
	}

	opts := append([]cognito.Option{
		cognito.WithEndpoint(f.emulator.server.URL),
		cognito.WithKeychain(f.keychain),
		cognito.WithNowTime(f.clock.Now),
		cognito.WithLogger(zerolog.Nop()),
		cognito.WithRetryMaxAttempts(1),
	}, options...)

	pool, err := cognito.New(
		cognito.ServiceConfiguration{Region: identity.RegionEUWest1},
		cognito.PoolConfiguration{ClientID: testClientID, PoolID: testPoolID},
		opts...,
	)
	require.NoError(t, err)
	f.pool = pool
	return f
}

// accessToken returns an HS256 token; the pool reads its claims without verifying.
func accessToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"username":  username,
		"client_id": testClientID,
		"token_use": "access",
		"exp":       exp.Unix(),
	}).SignedString([]byte("emulator"))
	require.NoError(t, err)
	return raw
}

// authResult answers InitiateAuth with tokens valid for ttl.
func (f *testFixture) authResult(t *testing.T, username string, ttl time.Duration, refreshToken string) func(gjson.Result) reply {
	return func(gjson.Result) reply {
		result := map[string]any{
			"AccessToken": accessToken(t, username, f.clock.Now().Add(ttl)),
			"IdToken":     "id-token",
			"TokenType":   "Bearer",
			"ExpiresIn":   int(ttl.Seconds()),
		}
		if refreshToken != "" {
			result["RefreshToken"] = refreshToken
		}
		return reply{body: map[string]any{"AuthenticationResult": result}}
	}
}

func awaitOutcome[T any](t *testing.T, call func(done userpool.Completion[T])) userpool.Outcome[T] {
	t.Helper()
	results := make(chan userpool.Outcome[T], 1)
	call(func(out userpool.Outcome[T]) { results <- out })
	select {
	case out := <-results:
		return out
	case <-time.After(2 * time.Second):
		t.Fatal("completion never called")
		return userpool.Outcome[T]{}
	}
}

func requireFailure[T any](t *testing.T, out userpool.Outcome[T], code, message string) {
	t.Helper()
	payload, failed := out.Failed()
	require.True(t, failed, "expected a failed outcome")
	require.Equal(t, &identity.ErrorObject{Code: code, Message: message}, identity.NewErrorObject(payload))
}
