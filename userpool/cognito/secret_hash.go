package cognito

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/jrsteele09/go-cognito-bridge/internal/utils"
)

// SecretHash computes the SECRET_HASH Cognito requires from app clients that
// have a secret: Base64(HMAC_SHA256(secret, username + clientID)).
func SecretHash(username, clientID, clientSecret string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(username + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// secretHash is nil when the pool has no client secret.
func (p *Pool) secretHash(username string) *string {
	if p.conf.ClientSecret == "" {
		return nil
	}
	return utils.PtrOrNil(SecretHash(username, p.conf.ClientID, p.conf.ClientSecret))
}
