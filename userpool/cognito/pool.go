// Package cognito is a userpool.UserPool speaking to Amazon Cognito user pools.
//
// Completions are always invoked from a fresh goroutine, never from the caller's.
// Tokens are kept in a keychain.Store so that the current user and session
// survive restarts when the store does.
package cognito

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-cognito-bridge/identity"
	apperrors "github.com/jrsteele09/go-cognito-bridge/internal/errors"
	"github.com/jrsteele09/go-cognito-bridge/keychain"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultHTTPTimeout = 30 * time.Second

	// RefreshThreshold is how long before expiry a session stops counting as
	// valid for the threshold, and gets refreshed by CurrentSession.
	RefreshThreshold = 5 * time.Minute
)

// ServiceConfiguration selects the service region.
type ServiceConfiguration struct {
	Region identity.Region
}

// PoolConfiguration identifies the user pool and app client.
type PoolConfiguration struct {
	ClientID     string
	ClientSecret string
	PoolID       string
}

var _ userpool.UserPool = (*Pool)(nil)

// Pool is a configured Cognito user pool client.
type Pool struct {
	service  ServiceConfiguration
	conf     PoolConfiguration
	client   *cip.Client
	keychain keychain.Store
	verifier *oidc.IDTokenVerifier
	nowTime  func() time.Time
	logger   zerolog.Logger

	httpClient       *http.Client
	endpoint         *string
	retryMaxAttempts int
}

// Option modifies a Pool during New.
type Option func(*Pool)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Pool) {
		p.httpClient = c
	}
}

// WithEndpoint overrides the regional endpoint, e.g. for a local emulator.
func WithEndpoint(endpoint string) Option {
	return func(p *Pool) {
		p.endpoint = aws.String(endpoint)
	}
}

// WithRetryMaxAttempts caps how many times a call is attempted. Zero keeps the
// client default.
func WithRetryMaxAttempts(n int) Option {
	return func(p *Pool) {
		p.retryMaxAttempts = n
	}
}

// WithKeychain sets where tokens are persisted. Defaults to memory.
func WithKeychain(store keychain.Store) Option {
	return func(p *Pool) {
		p.keychain = store
	}
}

// WithIDTokenVerifier verifies every ID token the service issues before a
// session is accepted.
func WithIDTokenVerifier(v *oidc.IDTokenVerifier) Option {
	return func(p *Pool) {
		p.verifier = v
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(p *Pool) {
		p.nowTime = nowFunc
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pool) {
		p.logger = l
	}
}

// New configures a pool client. Client and pool ids are required.
func New(service ServiceConfiguration, conf PoolConfiguration, options ...Option) (*Pool, error) {
	if strings.TrimSpace(conf.ClientID) == "" {
		return nil, apperrors.ErrMissingClientID
	}
	if strings.TrimSpace(conf.PoolID) == "" {
		return nil, apperrors.ErrMissingUserPoolID
	}
	service.Region = service.Region.Resolve()

	p := &Pool{
		service:    service,
		conf:       conf,
		keychain:   keychain.NewMemoryStore(),
		nowTime:    time.Now,
		logger:     log.Logger,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}

	for _, opt := range options {
		opt(p)
	}
	p.client = p.newClient()
	return p, nil
}

// Region returns the resolved service region.
func (p *Pool) Region() identity.Region {
	return p.service.Region
}

// SignUp registers a new user.
func (p *Pool) SignUp(ctx context.Context, username, password string, attributes, validationData []userpool.AttributeType, done userpool.Completion[userpool.SignUpResponse]) {
	go func() {
		out, payload := call(ctx, p, opSignUp, p.client.SignUp, &cip.SignUpInput{
			ClientId:       aws.String(p.conf.ClientID),
			Username:       aws.String(username),
			Password:       aws.String(password),
			SecretHash:     p.secretHash(username),
			UserAttributes: toAttributeTypes(attributes),
			ValidationData: toAttributeTypes(validationData),
		})
		if payload != nil {
			done(userpool.Failure[userpool.SignUpResponse](payload))
			return
		}
		done(userpool.Success(userpool.SignUpResponse{
			User:                p.GetUser(username),
			UserConfirmed:       out.UserConfirmed,
			UserSub:             aws.ToString(out.UserSub),
			CodeDeliveryDetails: toCodeDeliveryDetails(out.CodeDeliveryDetails),
		}))
	}()
}

// GetUser returns a handle for username.
func (p *Pool) GetUser(username string) userpool.User {
	return &user{pool: p, username: username}
}

// CurrentUser returns the user whose session is stored, or an anonymous handle.
func (p *Pool) CurrentUser() userpool.User {
	username, err := p.keychain.Get(context.Background(), p.currentUserKey())
	if err != nil && !apperrors.Is(err, keychain.ErrNotFound) {
		p.logger.Err(err).Msg("reading current user from keychain")
	}
	return &user{pool: p, username: string(username)}
}
