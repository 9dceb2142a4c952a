package bridge

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

type sessionTokenSource struct {
	ctx     context.Context
	adapter *Adapter
}

// Token fetches the current user session. The vendor refreshes it when needed.
func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	session, err := s.adapter.GetCurrentUserSession(s.ctx).Await(s.ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[sessionTokenSource.Token] GetCurrentUserSession")
	}
	return OAuth2Token(session), nil
}

// TokenSource returns an oauth2.TokenSource over the current user's session,
// so authenticated HTTP clients can be built with oauth2.NewClient. The dispatcher
// must be running for Token to return.
func (a *Adapter) TokenSource(ctx context.Context) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &sessionTokenSource{ctx: ctx, adapter: a})
}
