package cognito_test

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
	"github.com/jrsteele09/go-cognito-bridge/userpool/cognito"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestIssuer(t *testing.T) {
	require.Equal(t, "https://cognito-idp.eu-west-1.amazonaws.com/"+testPoolID, cognito.Issuer(identity.RegionEUWest1, testPoolID))
	require.Equal(t, "https://cognito-idp.cn-north-1.amazonaws.com.cn/cn-north-1_x", cognito.Issuer(identity.RegionCNNorth1, "cn-north-1_x"))
}

func TestPool_IDTokenVerification(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	issuer := cognito.Issuer(identity.RegionEUWest1, testPoolID)
	now := time.Unix(1_800_000_000, 0)

	verifier := oidc.NewVerifier(issuer,
		&oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}},
		&oidc.Config{ClientID: testClientID, Now: func() time.Time { return now }})

	idToken := func(t *testing.T, signer *rsa.PrivateKey, audience string) string {
		raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, jwtlib.MapClaims{
			"iss":              issuer,
			"aud":              audience,
			"sub":              "0b6c1e1e",
			"token_use":        "id",
			"cognito:username": "alice",
			"iat":              now.Unix(),
			"exp":              now.Add(time.Hour).Unix(),
		}).SignedString(signer)
		require.NoError(t, err)
		return raw
	}

	login := func(t *testing.T, rawIDToken string) (*testFixture, userpool.Outcome[*userpool.Session]) {
		f := setupTestFixture(t, cognito.WithIDTokenVerifier(verifier))
		f.emulator.handle("InitiateAuth", func(gjson.Result) reply {
			return reply{body: map[string]any{"AuthenticationResult": map[string]any{
				"AccessToken":  accessToken(t, "alice", now.Add(time.Hour)),
				"IdToken":      rawIDToken,
				"RefreshToken": "refresh-1",
				"ExpiresIn":    3600,
			}}}
		})
		out := awaitOutcome(t, func(done userpool.Completion[*userpool.Session]) {
			f.pool.GetUser("alice").GetSession(context.Background(), "alice", "P@ssw0rd", nil, done)
		})
		return f, out
	}

	t.Run("token signed by the pool is accepted", func(t *testing.T) {
		raw := idToken(t, key, testClientID)
		f, out := login(t, raw)
		_, failed := out.Failed()
		require.False(t, failed)
		require.Equal(t, raw, out.Value().IDToken.TokenString)
		require.Equal(t, "alice", f.pool.CurrentUser().Username())
	})

	t.Run("token for another client is rejected", func(t *testing.T) {
		f, out := login(t, idToken(t, key, "some-other-client"))
		payload, failed := out.Failed()
		require.True(t, failed)
		errObj := identity.NewErrorObject(payload)
		require.Equal(t, "NotAuthorizedException", errObj.Code)
		require.Contains(t, errObj.Message, "id token verification failed")
		require.Empty(t, f.pool.CurrentUser().Username())
	})

	t.Run("token signed by another key is rejected", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, out := login(t, idToken(t, other, testClientID))
		payload, failed := out.Failed()
		require.True(t, failed)
		require.Equal(t, "NotAuthorizedException", identity.NewErrorObject(payload).Code)
	})
}
