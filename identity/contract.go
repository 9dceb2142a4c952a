package identity

import (
	"context"

	"github.com/jrsteele09/go-cognito-bridge/promise"
)

// Bridge is the contract every platform adapter satisfies. Each asynchronous
// method returns a promise that settles exactly once; failures are *ErrorObject.
type Bridge interface {
	SignUp(ctx context.Context, userID, password string, attributes map[string]string) *promise.Promise[SignUpResult]
	ConfirmRegistration(ctx context.Context, userID, confirmationCode string, forcedAliasCreation bool) *promise.Promise[string]
	ResendCode(ctx context.Context, userID string) *promise.Promise[string]
	Authenticate(ctx context.Context, userID, password string) *promise.Promise[UserSession]
	ForgotPassword(ctx context.Context, userID string) *promise.Promise[string]
	ConfirmForgotPassword(ctx context.Context, userID, code, newPassword string) *promise.Promise[string]
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) *promise.Promise[string]
	GetCurrentUserSession(ctx context.Context) *promise.Promise[UserSession]
	DeleteUser(ctx context.Context, userID string) *promise.Promise[string]
	GetUserDetails(ctx context.Context) *promise.Promise[UserDetails]
	GetCurrentUser() UserHandle
	Logout()
}
