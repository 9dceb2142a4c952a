// Package userpool describes the vendor identity client the bridge drives.
//
// Every asynchronous method takes a Completion that the vendor invokes once with
// the operation's Outcome, from whatever goroutine it finished on.
package userpool

import (
	"context"
	"time"

	"github.com/jrsteele09/go-cognito-bridge/identity"
)

// AttributeType is one named user attribute in the vendor's list form.
type AttributeType struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// Token wraps a raw token string as the vendor session exposes it.
type Token struct {
	TokenString string
}

// Session is the vendor's authenticated session object.
type Session struct {
	AccessToken         Token
	RefreshToken        Token
	IDToken             Token
	ExpirationTime      time.Time
	Username            string
	IsValid             bool
	IsValidForThreshold bool
}

// SignUpResponse is reported by a successful SignUp.
type SignUpResponse struct {
	User                User
	UserConfirmed       bool
	UserSub             string
	CodeDeliveryDetails *identity.CodeDeliveryDetails
}

// DetailsResponse is reported by a successful GetDetails.
type DetailsResponse struct {
	UserAttributes     []AttributeType
	UserMFASettingList []string
}

// UserPool is a configured vendor user pool client.
type UserPool interface {
	SignUp(ctx context.Context, username, password string, attributes, validationData []AttributeType, done Completion[SignUpResponse])

	// GetUser returns a handle for username without contacting the service.
	GetUser(username string) User

	// CurrentUser returns the last signed in user. It never returns nil: with
	// nobody signed in the handle is anonymous and its operations fail.
	CurrentUser() User
}

// User is a vendor handle for one user of the pool.
type User interface {
	identity.UserHandle

	ConfirmSignUp(ctx context.Context, confirmationCode string, forceAliasCreation bool, done Completion[Empty])
	ResendConfirmationCode(ctx context.Context, done Completion[identity.CodeDeliveryDetails])

	// GetSession authenticates with a password and becomes the current user.
	GetSession(ctx context.Context, username, password string, validationData []AttributeType, done Completion[*Session])

	// CurrentSession returns the stored session, refreshing it when needed.
	CurrentSession(ctx context.Context, done Completion[*Session])

	ForgotPassword(ctx context.Context, done Completion[identity.CodeDeliveryDetails])
	ConfirmForgotPassword(ctx context.Context, confirmationCode, newPassword string, done Completion[Empty])
	ChangePassword(ctx context.Context, previousPassword, proposedPassword string, done Completion[Empty])
	DeleteUser(ctx context.Context, done Completion[Empty])
	GetDetails(ctx context.Context, done Completion[DetailsResponse])

	// SignOut forgets the locally stored session.
	SignOut()
}
