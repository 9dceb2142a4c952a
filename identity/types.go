package identity

import "time"

// UserHandle is the opaque vendor user object returned by sign-up and GetCurrentUser.
type UserHandle interface {
	Username() string
}

// AccessToken holds the access token string and the session expiry.
type AccessToken struct {
	Token      string    `json:"token"`
	Username   string    `json:"username"`
	Expiration time.Time `json:"expiration"`
}

// RefreshToken holds the refresh token string.
type RefreshToken struct {
	Token string `json:"token"`
}

// IDToken holds the OIDC ID token string and the session expiry.
type IDToken struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}

// UserSession is the platform independent view of an authenticated vendor session.
// Values are copied from the vendor session as-is and never recomputed.
type UserSession struct {
	AccessToken         AccessToken  `json:"accessToken"`
	RefreshToken        RefreshToken `json:"refreshToken"`
	IDToken             IDToken      `json:"idToken"`
	IsValid             bool         `json:"isValid"`
	IsValidForThreshold bool         `json:"isValidForThreshold"`
	Username            string       `json:"username"`
}

// CodeDeliveryDetails describes where a confirmation or reset code was sent.
type CodeDeliveryDetails struct {
	Destination    string `json:"destination,omitempty"`
	DeliveryMedium string `json:"deliveryMedium,omitempty"`
	AttributeName  string `json:"attributeName,omitempty"`
}

// SignUpResult is the value a successful sign-up resolves with.
type SignUpResult struct {
	CognitoUser         UserHandle           `json:"-"`
	UserConfirmed       bool                 `json:"userConfirmed"`
	CodeDeliveryDetails *CodeDeliveryDetails `json:"codeDeliveryDetails,omitempty"`
}

// UserDetails is the value GetUserDetails resolves with.
type UserDetails struct {
	Attributes map[string]string `json:"attributes"`
	Settings   []string          `json:"settings"`
}
