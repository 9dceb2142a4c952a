package bridge_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-cognito-bridge/bridge"
	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
	"github.com/stretchr/testify/require"
)

func TestUserSessionFrom(t *testing.T) {
	expiry := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("fields are copied verbatim", func(t *testing.T) {
		// an expired session still reports whatever the vendor says
		session := bridge.UserSessionFrom(&userpool.Session{
			AccessToken:         userpool.Token{TokenString: "a"},
			RefreshToken:        userpool.Token{TokenString: "r"},
			IDToken:             userpool.Token{TokenString: "i"},
			ExpirationTime:      expiry,
			Username:            "bob",
			IsValid:             true,
			IsValidForThreshold: false,
		})
		require.Equal(t, "a", session.AccessToken.Token)
		require.Equal(t, "bob", session.AccessToken.Username)
		require.Equal(t, expiry, session.AccessToken.Expiration)
		require.Equal(t, "r", session.RefreshToken.Token)
		require.Equal(t, "i", session.IDToken.Token)
		require.Equal(t, expiry, session.IDToken.Expiration)
		require.True(t, session.IsValid)
		require.False(t, session.IsValidForThreshold)
		require.Equal(t, "bob", session.Username)
	})

	t.Run("nil session", func(t *testing.T) {
		require.Equal(t, identity.UserSession{}, bridge.UserSessionFrom(nil))
	})
}

func TestOAuth2Token(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	token := bridge.OAuth2Token(identity.UserSession{
		AccessToken:  identity.AccessToken{Token: "access", Expiration: expiry},
		RefreshToken: identity.RefreshToken{Token: "refresh"},
		IDToken:      identity.IDToken{Token: "id"},
	})
	require.Equal(t, "access", token.AccessToken)
	require.Equal(t, "Bearer", token.TokenType)
	require.Equal(t, "refresh", token.RefreshToken)
	require.Equal(t, expiry, token.Expiry)
	require.Equal(t, "id", token.Extra("id_token"))
	require.True(t, token.Valid())
}

func TestAdapter_TokenSource(t *testing.T) {
	f := setupTestFixture(t)
	f.pool.SetCurrentUser("alice")
	f.pool.Script.CurrentSession = userpool.Success(&userpool.Session{
		AccessToken:    userpool.Token{TokenString: "access"},
		IDToken:        userpool.Token{TokenString: "id"},
		ExpirationTime: time.Now().Add(time.Hour),
		Username:       "alice",
		IsValid:        true,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ts := f.adapter.TokenSource(ctx)

	token, err := ts.Token()
	require.NoError(t, err)
	require.Equal(t, "access", token.AccessToken)

	// a valid token is reused without asking the pool again
	_, err = ts.Token()
	require.NoError(t, err)
	require.Len(t, f.pool.Calls(), 1)

	t.Run("failure is wrapped", func(t *testing.T) {
		f.pool.Script.CurrentSession = userpool.Failure[*userpool.Session](identity.UserInfo{
			"__type":  "NotAuthorizedException",
			"message": "Refresh Token has expired",
		})
		_, err := f.adapter.TokenSource(ctx).Token()
		require.Error(t, err)
		require.Contains(t, err.Error(), "NotAuthorizedException: Refresh Token has expired")
	})
}
