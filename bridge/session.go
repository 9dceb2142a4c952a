package bridge

import (
	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
	"golang.org/x/oauth2"
)

// UserSessionFrom copies a vendor session into a UserSession verbatim.
func UserSessionFrom(s *userpool.Session) identity.UserSession {
	if s == nil {
		return identity.UserSession{}
	}
	return identity.UserSession{
		AccessToken: identity.AccessToken{
			Token:      s.AccessToken.TokenString,
			Username:   s.Username,
			Expiration: s.ExpirationTime,
		},
		RefreshToken: identity.RefreshToken{
			Token: s.RefreshToken.TokenString,
		},
		IDToken: identity.IDToken{
			Token:      s.IDToken.TokenString,
			Expiration: s.ExpirationTime,
		},
		IsValid:             s.IsValid,
		IsValidForThreshold: s.IsValidForThreshold,
		Username:            s.Username,
	}
}

// OAuth2Token presents a session as a bearer token. The ID token is available
// through Extra("id_token").
func OAuth2Token(s identity.UserSession) *oauth2.Token {
	t := &oauth2.Token{
		AccessToken:  s.AccessToken.Token,
		TokenType:    "Bearer",
		RefreshToken: s.RefreshToken.Token,
		Expiry:       s.AccessToken.Expiration,
	}
	return t.WithExtra(map[string]interface{}{
		"id_token": s.IDToken.Token,
	})
}
