package cognito

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/jrsteele09/go-cognito-bridge/identity"
	apperrors "github.com/jrsteele09/go-cognito-bridge/internal/errors"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
)

const notAuthorizedException = "NotAuthorizedException"

var _ userpool.User = (*user)(nil)

type user struct {
	pool     *Pool
	username string
}

func (u *user) Username() string {
	return u.username
}

func notAuthorized(message string) identity.UserInfo {
	return identity.UserInfo{identity.CodeKey: notAuthorizedException, identity.MessageKey: message}
}

// localFailure reports an error raised on this side of the wire. It has no type.
func localFailure(err error) identity.UserInfo {
	return identity.UserInfo{identity.MessageKey: err.Error()}
}

// complete runs op on a new goroutine and hands its outcome to done.
func complete[T any](done userpool.Completion[T], op func() userpool.Outcome[T]) {
	go func() {
		done(op())
	}()
}

// empty converts the result of a call whose success carries no value.
func empty[Out any](_ *Out, payload identity.ErrorPayload) userpool.Outcome[userpool.Empty] {
	if payload != nil {
		return userpool.Failure[userpool.Empty](payload)
	}
	return userpool.Success(userpool.Empty{})
}

func delivery(details *types.CodeDeliveryDetailsType, payload identity.ErrorPayload) userpool.Outcome[identity.CodeDeliveryDetails] {
	if payload != nil {
		return userpool.Failure[identity.CodeDeliveryDetails](payload)
	}
	if d := toCodeDeliveryDetails(details); d != nil {
		return userpool.Success(*d)
	}
	return userpool.Success(identity.CodeDeliveryDetails{})
}

func (u *user) ConfirmSignUp(ctx context.Context, confirmationCode string, forceAliasCreation bool, done userpool.Completion[userpool.Empty]) {
	p := u.pool
	complete(done, func() userpool.Outcome[userpool.Empty] {
		return empty(call(ctx, p, opConfirmSignUp, p.client.ConfirmSignUp, &cip.ConfirmSignUpInput{
			ClientId:           aws.String(p.conf.ClientID),
			Username:           aws.String(u.username),
			ConfirmationCode:   aws.String(confirmationCode),
			SecretHash:         p.secretHash(u.username),
			ForceAliasCreation: forceAliasCreation,
		}))
	})
}

func (u *user) ResendConfirmationCode(ctx context.Context, done userpool.Completion[identity.CodeDeliveryDetails]) {
	p := u.pool
	complete(done, func() userpool.Outcome[identity.CodeDeliveryDetails] {
		out, payload := call(ctx, p, opResendConfirmation, p.client.ResendConfirmationCode, &cip.ResendConfirmationCodeInput{
			ClientId:   aws.String(p.conf.ClientID),
			Username:   aws.String(u.username),
			SecretHash: p.secretHash(u.username),
		})
		if payload != nil {
			return delivery(nil, payload)
		}
		return delivery(out.CodeDeliveryDetails, nil)
	})
}

func (u *user) GetSession(ctx context.Context, username, password string, validationData []userpool.AttributeType, done userpool.Completion[*userpool.Session]) {
	complete(done, func() userpool.Outcome[*userpool.Session] {
		return u.authenticate(ctx, username, password, validationData)
	})
}

func (u *user) authenticate(ctx context.Context, username, password string, validationData []userpool.AttributeType) userpool.Outcome[*userpool.Session] {
	p := u.pool
	params := map[string]string{
		"USERNAME": username,
		"PASSWORD": password,
	}
	if h := p.secretHash(username); h != nil {
		params["SECRET_HASH"] = *h
	}

	out, payload := call(ctx, p, opInitiateAuth, p.client.InitiateAuth, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(p.conf.ClientID),
		AuthParameters: params,
		ClientMetadata: attributeMap(validationData),
	})
	if payload != nil {
		return userpool.Failure[*userpool.Session](payload)
	}
	tokens, payload := u.establish(ctx, out, nil)
	if payload != nil {
		return userpool.Failure[*userpool.Session](payload)
	}
	return userpool.Success(p.newSession(tokens))
}

// establish verifies and stores the tokens of a successful InitiateAuth.
func (u *user) establish(ctx context.Context, out *cip.InitiateAuthOutput, previous *storedTokens) (*storedTokens, identity.ErrorPayload) {
	p := u.pool
	if out.AuthenticationResult == nil {
		return nil, identity.UserInfo{
			identity.CodeKey:    string(out.ChallengeName),
			identity.MessageKey: fmt.Sprintf("authentication challenge %q is not supported", out.ChallengeName),
		}
	}

	if idToken := aws.ToString(out.AuthenticationResult.IdToken); p.verifier != nil && idToken != "" {
		if _, err := p.verifier.Verify(ctx, idToken); err != nil {
			return nil, notAuthorized("id token verification failed: " + err.Error())
		}
	}

	tokens, err := p.tokensFromResult(u.username, out.AuthenticationResult, previous)
	if err != nil {
		return nil, localFailure(err)
	}
	if err := p.saveTokens(ctx, u.username, tokens); err != nil {
		return nil, localFailure(err)
	}
	return tokens, nil
}

func (u *user) CurrentSession(ctx context.Context, done userpool.Completion[*userpool.Session]) {
	complete(done, func() userpool.Outcome[*userpool.Session] {
		tokens, payload := u.validTokens(ctx)
		if payload != nil {
			return userpool.Failure[*userpool.Session](payload)
		}
		return userpool.Success(u.pool.newSession(tokens))
	})
}

// validTokens returns the stored session, refreshing it when it is within
// RefreshThreshold of expiring.
func (u *user) validTokens(ctx context.Context) (*storedTokens, identity.ErrorPayload) {
	p := u.pool
	if u.username == "" {
		return nil, notAuthorized("no current user")
	}

	tokens, err := p.loadTokens(ctx, u.username)
	if apperrors.Is(err, apperrors.ErrNoStoredSession) {
		return nil, notAuthorized("no session stored for user " + u.username)
	}
	if err != nil {
		return nil, localFailure(err)
	}
	if p.nowTime().Add(RefreshThreshold).Before(tokens.Expiration) {
		return tokens, nil
	}
	if tokens.RefreshToken == "" {
		return nil, notAuthorized("session expired and no refresh token is stored")
	}

	params := map[string]string{"REFRESH_TOKEN": tokens.RefreshToken}
	if h := p.secretHash(tokens.Username); h != nil {
		params["SECRET_HASH"] = *h
	}
	out, payload := call(ctx, p, opInitiateAuth, p.client.InitiateAuth, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		ClientId:       aws.String(p.conf.ClientID),
		AuthParameters: params,
	})
	if payload != nil {
		return nil, payload
	}

	return u.establish(ctx, out, tokens)
}

func (u *user) ForgotPassword(ctx context.Context, done userpool.Completion[identity.CodeDeliveryDetails]) {
	p := u.pool
	complete(done, func() userpool.Outcome[identity.CodeDeliveryDetails] {
		out, payload := call(ctx, p, opForgotPassword, p.client.ForgotPassword, &cip.ForgotPasswordInput{
			ClientId:   aws.String(p.conf.ClientID),
			Username:   aws.String(u.username),
			SecretHash: p.secretHash(u.username),
		})
		if payload != nil {
			return delivery(nil, payload)
		}
		return delivery(out.CodeDeliveryDetails, nil)
	})
}

func (u *user) ConfirmForgotPassword(ctx context.Context, confirmationCode, newPassword string, done userpool.Completion[userpool.Empty]) {
	p := u.pool
	complete(done, func() userpool.Outcome[userpool.Empty] {
		return empty(call(ctx, p, opConfirmForgotPassword, p.client.ConfirmForgotPassword, &cip.ConfirmForgotPasswordInput{
			ClientId:         aws.String(p.conf.ClientID),
			Username:         aws.String(u.username),
			ConfirmationCode: aws.String(confirmationCode),
			Password:         aws.String(newPassword),
			SecretHash:       p.secretHash(u.username),
		}))
	})
}

func (u *user) ChangePassword(ctx context.Context, previousPassword, proposedPassword string, done userpool.Completion[userpool.Empty]) {
	p := u.pool
	complete(done, func() userpool.Outcome[userpool.Empty] {
		tokens, payload := u.validTokens(ctx)
		if payload != nil {
			return userpool.Failure[userpool.Empty](payload)
		}
		return empty(call(ctx, p, opChangePassword, p.client.ChangePassword, &cip.ChangePasswordInput{
			AccessToken:      aws.String(tokens.AccessToken),
			PreviousPassword: aws.String(previousPassword),
			ProposedPassword: aws.String(proposedPassword),
		}))
	})
}

func (u *user) DeleteUser(ctx context.Context, done userpool.Completion[userpool.Empty]) {
	p := u.pool
	complete(done, func() userpool.Outcome[userpool.Empty] {
		tokens, payload := u.validTokens(ctx)
		if payload != nil {
			return userpool.Failure[userpool.Empty](payload)
		}
		if _, payload := call(ctx, p, opDeleteUser, p.client.DeleteUser, &cip.DeleteUserInput{AccessToken: aws.String(tokens.AccessToken)}); payload != nil {
			return userpool.Failure[userpool.Empty](payload)
		}
		if err := p.clearTokens(ctx, u.username); err != nil {
			p.logger.Err(err).Str("username", u.username).Msg("clearing keychain after delete")
		}
		return userpool.Success(userpool.Empty{})
	})
}

func (u *user) GetDetails(ctx context.Context, done userpool.Completion[userpool.DetailsResponse]) {
	p := u.pool
	complete(done, func() userpool.Outcome[userpool.DetailsResponse] {
		tokens, payload := u.validTokens(ctx)
		if payload != nil {
			return userpool.Failure[userpool.DetailsResponse](payload)
		}
		out, payload := call(ctx, p, opGetUser, p.client.GetUser, &cip.GetUserInput{AccessToken: aws.String(tokens.AccessToken)})
		if payload != nil {
			return userpool.Failure[userpool.DetailsResponse](payload)
		}
		return userpool.Success(userpool.DetailsResponse{
			UserAttributes:     fromAttributeTypes(out.UserAttributes),
			UserMFASettingList: out.UserMFASettingList,
		})
	})
}

// SignOut forgets the stored session. It does not revoke tokens server side.
func (u *user) SignOut() {
	if u.username == "" {
		return
	}
	if err := u.pool.clearTokens(context.Background(), u.username); err != nil {
		u.pool.logger.Err(err).Str("username", u.username).Msg("sign out")
	}
}

func attributeMap(attrs []userpool.AttributeType) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name] = a.Value
	}
	return m
}
