package bridge

import (
	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/jrsteele09/go-cognito-bridge/mainloop"
	"github.com/jrsteele09/go-cognito-bridge/userpool/cognito"
	"github.com/pkg/errors"
)

// Config holds the constructor parameters of a Cognito backed adapter.
// Secret and Region are optional; an empty or unknown Region means
// identity.DefaultRegion.
type Config struct {
	UserPoolID string
	ClientID   string
	Secret     string
	Region     identity.Region
}

// Open configures exactly one Cognito pool client from cfg and wraps it.
func Open(cfg Config, dispatcher mainloop.Dispatcher, poolOptions []cognito.Option, options ...Option) (*Adapter, error) {
	pool, err := cognito.New(
		cognito.ServiceConfiguration{Region: cfg.Region.Resolve()},
		cognito.PoolConfiguration{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.Secret,
			PoolID:       cfg.UserPoolID,
		},
		poolOptions...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "[bridge.Open] cognito.New")
	}
	return New(pool, dispatcher, options...)
}
