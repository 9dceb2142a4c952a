package cognito

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/pkg/errors"
)

// Issuer returns the OIDC issuer URL of a user pool.
func Issuer(region identity.Region, poolID string) string {
	domain := "amazonaws.com"
	if region.IsChina() {
		domain = "amazonaws.com.cn"
	}
	return fmt.Sprintf("https://cognito-idp.%s.%s/%s", region.Code(), domain, poolID)
}

// NewIDTokenVerifier discovers the pool's signing keys and returns a verifier
// that checks ID tokens were issued by the pool for clientID.
func NewIDTokenVerifier(ctx context.Context, region identity.Region, poolID, clientID string) (*oidc.IDTokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, Issuer(region, poolID))
	if err != nil {
		return nil, errors.Wrap(err, "[cognito.NewIDTokenVerifier] oidc.NewProvider")
	}
	return provider.Verifier(&oidc.Config{ClientID: clientID}), nil
}
