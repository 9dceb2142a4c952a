// Package bridge adapts a vendor user pool client to the identity.Bridge contract.
//
// Vendor completions arrive on arbitrary goroutines. The adapter never settles a
// promise from there: the settlement is handed to the Dispatcher supplied at
// construction, which runs it on the primary execution context.
package bridge

import (
	"context"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/jrsteele09/go-cognito-bridge/mainloop"
	"github.com/jrsteele09/go-cognito-bridge/promise"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var _ identity.Bridge = (*Adapter)(nil)

// Adapter is the platform adapter. It holds a single vendor pool handle for its
// lifetime and no other mutable state.
type Adapter struct {
	pool       userpool.UserPool
	dispatcher mainloop.Dispatcher
	logger     zerolog.Logger
}

// Option defines a function type to modify the Adapter instance.
type Option func(*Adapter)

// WithLogger sets the logger operations report to.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Adapter) {
		a.logger = l
	}
}

// New wraps an already configured vendor pool.
func New(pool userpool.UserPool, dispatcher mainloop.Dispatcher, options ...Option) (*Adapter, error) {
	if pool == nil {
		return nil, errors.New("[bridge.New] user pool is required")
	}
	if dispatcher == nil {
		return nil, errors.New("[bridge.New] dispatcher is required")
	}

	a := &Adapter{
		pool:       pool,
		dispatcher: dispatcher,
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(a)
	}
	return a, nil
}

// Pool returns the vendor pool handle.
func (a *Adapter) Pool() userpool.UserPool {
	return a.pool
}

// invoke issues one vendor call and returns a promise settled, on the dispatcher,
// with the mapped success value or the normalized error. Only the first
// completion the vendor reports is honoured.
func invoke[T, R any](a *Adapter, op, username string, call func(done userpool.Completion[T]), mapValue func(T) R) *promise.Promise[R] {
	logger := a.logger.With().
		Str("op", op).
		Str("op_id", uuid.NewString()).
		Str("username", username).
		Logger()
	logger.Debug().Msg("identity operation started")

	return promise.New(func(resolve func(R) bool, reject func(error) bool) {
		call(func(out userpool.Outcome[T]) {
			a.dispatcher.Perform(func() {
				if payload, failed := out.Failed(); failed {
					errObj := identity.NewErrorObject(payload)
					if reject(errObj) {
						logger.Info().Str("code", errObj.Code).Str("message", errObj.Message).Msg("identity operation failed")
					}
					return
				}
				if resolve(mapValue(out.Value())) {
					logger.Debug().Msg("identity operation succeeded")
				}
			})
		})
	})
}

func (a *Adapter) SignUp(ctx context.Context, userID, password string, attributes map[string]string) *promise.Promise[identity.SignUpResult] {
	return invoke(a, "signUp", userID,
		func(done userpool.Completion[userpool.SignUpResponse]) {
			a.pool.SignUp(ctx, userID, password, AttributesFactory(attributes), nil, done)
		},
		func(r userpool.SignUpResponse) identity.SignUpResult {
			return identity.SignUpResult{
				CognitoUser:         r.User,
				UserConfirmed:       r.UserConfirmed,
				CodeDeliveryDetails: r.CodeDeliveryDetails,
			}
		})
}

func (a *Adapter) ConfirmRegistration(ctx context.Context, userID, confirmationCode string, forcedAliasCreation bool) *promise.Promise[string] {
	user := a.pool.GetUser(userID)
	return invoke(a, "confirmRegistration", userID,
		func(done userpool.Completion[userpool.Empty]) {
			user.ConfirmSignUp(ctx, confirmationCode, forcedAliasCreation, done)
		},
		usernameOf[userpool.Empty](user))
}

func (a *Adapter) ResendCode(ctx context.Context, userID string) *promise.Promise[string] {
	user := a.pool.GetUser(userID)
	return invoke(a, "resendCode", userID,
		func(done userpool.Completion[identity.CodeDeliveryDetails]) {
			user.ResendConfirmationCode(ctx, done)
		},
		usernameOf[identity.CodeDeliveryDetails](user))
}

func (a *Adapter) Authenticate(ctx context.Context, userID, password string) *promise.Promise[identity.UserSession] {
	user := a.pool.GetUser(userID)
	return invoke(a, "authenticate", userID,
		func(done userpool.Completion[*userpool.Session]) {
			user.GetSession(ctx, userID, password, nil, done)
		},
		UserSessionFrom)
}

func (a *Adapter) ForgotPassword(ctx context.Context, userID string) *promise.Promise[string] {
	user := a.pool.GetUser(userID)
	return invoke(a, "forgotPassword", userID,
		func(done userpool.Completion[identity.CodeDeliveryDetails]) {
			user.ForgotPassword(ctx, done)
		},
		usernameOf[identity.CodeDeliveryDetails](user))
}

func (a *Adapter) ConfirmForgotPassword(ctx context.Context, userID, code, newPassword string) *promise.Promise[string] {
	user := a.pool.GetUser(userID)
	return invoke(a, "confirmForgotPassword", userID,
		func(done userpool.Completion[userpool.Empty]) {
			user.ConfirmForgotPassword(ctx, code, newPassword, done)
		},
		usernameOf[userpool.Empty](user))
}

func (a *Adapter) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) *promise.Promise[string] {
	user := a.pool.GetUser(userID)
	return invoke(a, "changePassword", userID,
		func(done userpool.Completion[userpool.Empty]) {
			user.ChangePassword(ctx, oldPassword, newPassword, done)
		},
		usernameOf[userpool.Empty](user))
}

// GetCurrentUserSession resolves with the current user's session, refreshed by
// the vendor if necessary.
func (a *Adapter) GetCurrentUserSession(ctx context.Context) *promise.Promise[identity.UserSession] {
	user := a.pool.CurrentUser()
	return invoke(a, "getCurrentUserSession", user.Username(),
		func(done userpool.Completion[*userpool.Session]) {
			user.CurrentSession(ctx, done)
		},
		UserSessionFrom)
}

func (a *Adapter) DeleteUser(ctx context.Context, userID string) *promise.Promise[string] {
	user := a.pool.GetUser(userID)
	return invoke(a, "deleteUser", userID,
		func(done userpool.Completion[userpool.Empty]) {
			user.DeleteUser(ctx, done)
		},
		usernameOf[userpool.Empty](user))
}

// GetUserDetails resolves with the current user's attributes and MFA settings.
func (a *Adapter) GetUserDetails(ctx context.Context) *promise.Promise[identity.UserDetails] {
	user := a.pool.CurrentUser()
	return invoke(a, "getUserDetails", user.Username(),
		func(done userpool.Completion[userpool.DetailsResponse]) {
			user.GetDetails(ctx, done)
		},
		func(r userpool.DetailsResponse) identity.UserDetails {
			return identity.UserDetails{
				Attributes: AttributesMap(r.UserAttributes),
				Settings:   r.UserMFASettingList,
			}
		})
}

// GetCurrentUser returns the vendor's current user handle as is.
func (a *Adapter) GetCurrentUser() identity.UserHandle {
	return a.pool.CurrentUser()
}

// Logout signs the current user out locally.
func (a *Adapter) Logout() {
	user := a.pool.CurrentUser()
	a.logger.Debug().Str("op", "logout").Str("username", user.Username()).Msg("identity operation started")
	user.SignOut()
}

// usernameOf resolves operations whose only result is the user's name.
func usernameOf[T any](user userpool.User) func(T) string {
	return func(T) string {
		return user.Username()
	}
}
