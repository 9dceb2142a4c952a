package cognito

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
	"github.com/pkg/errors"
)

// Operation names as they appear in logs.
const (
	opSignUp                = "SignUp"
	opConfirmSignUp         = "ConfirmSignUp"
	opResendConfirmation    = "ResendConfirmationCode"
	opInitiateAuth          = "InitiateAuth"
	opForgotPassword        = "ForgotPassword"
	opConfirmForgotPassword = "ConfirmForgotPassword"
	opChangePassword        = "ChangePassword"
	opDeleteUser            = "DeleteUser"
	opGetUser               = "GetUser"
)

// newClient builds the Cognito Identity Provider client. Only the client-id based
// operations are used, which the service accepts unsigned, so no credentials are
// configured.
func (p *Pool) newClient() *cip.Client {
	return cip.New(cip.Options{
		Region:           p.service.Region.Code(),
		HTTPClient:       p.httpClient,
		BaseEndpoint:     p.endpoint,
		RetryMaxAttempts: p.retryMaxAttempts,
	})
}

// call runs one client operation. It returns the output on success and the
// vendor error payload otherwise.
func call[In, Out any](ctx context.Context, p *Pool, operation string, fn func(context.Context, *In, ...func(*cip.Options)) (*Out, error), in *In) (*Out, identity.ErrorPayload) {
	out, err := fn(ctx, in)
	if err != nil {
		payload := errorPayload(err)
		p.logger.Debug().
			Str("operation", operation).
			Str("request_id", requestID(err)).
			Str("error_type", payload[identity.CodeKey]).
			Msg("cognito call rejected")
		return nil, payload
	}
	p.logger.Debug().Str("operation", operation).Msg("cognito call succeeded")
	return out, nil
}

// errorPayload maps a client error onto the payload handed to completions. A
// service error keeps its code and message. When the body could not be read as
// a service error, the HTTP status text stands in for the message.
func errorPayload(err error) identity.UserInfo {
	status := 0
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status = respErr.HTTPStatusCode()
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		info := identity.UserInfo{
			identity.CodeKey:    apiErr.ErrorCode(),
			identity.MessageKey: apiErr.ErrorMessage(),
		}
		var generic *smithy.GenericAPIError
		if errors.As(err, &generic) && generic.Message == generic.Code && status != 0 {
			info[identity.MessageKey] = http.StatusText(status)
		}
		return info
	}
	if status != 0 {
		return identity.UserInfo{identity.MessageKey: http.StatusText(status)}
	}
	return identity.UserInfo{identity.MessageKey: err.Error()}
}

func requestID(err error) string {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.ServiceRequestID()
	}
	return ""
}

func toAttributeTypes(attrs []userpool.AttributeType) []types.AttributeType {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]types.AttributeType, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, types.AttributeType{Name: aws.String(a.Name), Value: aws.String(a.Value)})
	}
	return out
}

func fromAttributeTypes(attrs []types.AttributeType) []userpool.AttributeType {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]userpool.AttributeType, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, userpool.AttributeType{Name: aws.ToString(a.Name), Value: aws.ToString(a.Value)})
	}
	return out
}

func toCodeDeliveryDetails(d *types.CodeDeliveryDetailsType) *identity.CodeDeliveryDetails {
	if d == nil {
		return nil
	}
	return &identity.CodeDeliveryDetails{
		Destination:    aws.ToString(d.Destination),
		DeliveryMedium: string(d.DeliveryMedium),
		AttributeName:  aws.ToString(d.AttributeName),
	}
}
