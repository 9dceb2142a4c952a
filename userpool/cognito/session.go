package cognito

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-cognito-bridge/internal/errors"
	"github.com/jrsteele09/go-cognito-bridge/keychain"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
	"github.com/pkg/errors"
)

// storedTokens is the keychain record of one user's session.
type storedTokens struct {
	Username     string    `json:"username"`
	AccessToken  string    `json:"accessToken"`
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken"`
	Expiration   time.Time `json:"expiration"`
}

func (p *Pool) tokensKey(username string) string {
	return p.conf.ClientID + "." + username + ".tokens"
}

func (p *Pool) currentUserKey() string {
	return p.conf.ClientID + ".currentUser"
}

func (p *Pool) loadTokens(ctx context.Context, username string) (*storedTokens, error) {
	raw, err := p.keychain.Get(ctx, p.tokensKey(username))
	if errors.Is(err, keychain.ErrNotFound) {
		return nil, apperrors.ErrNoStoredSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Pool.loadTokens] keychain.Get")
	}
	var t storedTokens
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrCorruptedSession, "[Pool.loadTokens] %v", err)
	}
	return &t, nil
}

// saveTokens stores the session and makes username the current user.
func (p *Pool) saveTokens(ctx context.Context, username string, t *storedTokens) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "[Pool.saveTokens] json.Marshal")
	}
	if err := p.keychain.Set(ctx, p.tokensKey(username), raw); err != nil {
		return errors.Wrap(err, "[Pool.saveTokens] keychain.Set tokens")
	}
	if err := p.keychain.Set(ctx, p.currentUserKey(), []byte(username)); err != nil {
		return errors.Wrap(err, "[Pool.saveTokens] keychain.Set current user")
	}
	return nil
}

// clearTokens forgets username's session, and the current user if it is username.
func (p *Pool) clearTokens(ctx context.Context, username string) error {
	if err := p.keychain.Delete(ctx, p.tokensKey(username)); err != nil {
		return errors.Wrap(err, "[Pool.clearTokens] keychain.Delete tokens")
	}
	current, err := p.keychain.Get(ctx, p.currentUserKey())
	if err != nil && !errors.Is(err, keychain.ErrNotFound) {
		return errors.Wrap(err, "[Pool.clearTokens] keychain.Get current user")
	}
	if string(current) == username {
		if err := p.keychain.Delete(ctx, p.currentUserKey()); err != nil {
			return errors.Wrap(err, "[Pool.clearTokens] keychain.Delete current user")
		}
	}
	return nil
}

// tokensFromResult builds a record from an InitiateAuth result. A refresh response
// carries no refresh token, so the previous one is kept.
func (p *Pool) tokensFromResult(username string, r *types.AuthenticationResultType, previous *storedTokens) (*storedTokens, error) {
	claims, err := accessTokenClaims(aws.ToString(r.AccessToken))
	if err != nil {
		return nil, err
	}

	t := &storedTokens{
		Username:     username,
		AccessToken:  aws.ToString(r.AccessToken),
		IDToken:      aws.ToString(r.IdToken),
		RefreshToken: aws.ToString(r.RefreshToken),
		Expiration:   p.nowTime().Add(time.Duration(r.ExpiresIn) * time.Second),
	}
	if claims.username != "" {
		t.Username = claims.username
	}
	if !claims.expiration.IsZero() {
		t.Expiration = claims.expiration
	}
	if t.RefreshToken == "" && previous != nil {
		t.RefreshToken = previous.RefreshToken
	}
	return t, nil
}

func (p *Pool) newSession(t *storedTokens) *userpool.Session {
	now := p.nowTime()
	return &userpool.Session{
		AccessToken:         userpool.Token{TokenString: t.AccessToken},
		RefreshToken:        userpool.Token{TokenString: t.RefreshToken},
		IDToken:             userpool.Token{TokenString: t.IDToken},
		ExpirationTime:      t.Expiration,
		Username:            t.Username,
		IsValid:             now.Before(t.Expiration),
		IsValidForThreshold: now.Add(RefreshThreshold).Before(t.Expiration),
	}
}

type tokenClaims struct {
	username   string
	expiration time.Time
}

// accessTokenClaims reads claims without verifying the signature; the token came
// straight from the service over TLS.
func accessTokenClaims(raw string) (tokenClaims, error) {
	token, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return tokenClaims{}, apperrors.Wrapf(apperrors.ErrMalformedToken, "[accessTokenClaims] %v", err)
	}
	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return tokenClaims{}, apperrors.ErrMalformedToken
	}

	var out tokenClaims
	out.username, _ = claims["username"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.expiration = exp.Time
	}
	return out, nil
}
