package main

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-cognito-bridge/bridge"
)

const commandsUsage = `commands:
  signup <user> <password> [-a name=value ...]
  confirm <user> <code> [--force-alias]
  resend <user>
  login <user> <password>
  forgot <user>
  confirm-forgot <user> <code> <new-password>
  change-password <user> <old-password> <new-password>
  session
  delete <user>
  details
  whoami
  logout

Sessions are kept in the keychain between commands. Without
COGNITO_KEYCHAIN_PASSPHRASE or COGNITO_REDIS_ADDR the keychain lives in
memory, so session, details, whoami and change-password cannot see a
login made by an earlier invocation.`

type commandFunc func(ctx context.Context, a *bridge.Adapter, args []string, f *flags) (any, error)

type command struct {
	args int
	run  commandFunc
}

var commands = map[string]command{
	"signup": {2, func(ctx context.Context, a *bridge.Adapter, args []string, f *flags) (any, error) {
		r, err := a.SignUp(ctx, args[0], args[1], f.attributes).Await(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"username":            r.CognitoUser.Username(),
			"userConfirmed":       r.UserConfirmed,
			"codeDeliveryDetails": r.CodeDeliveryDetails,
		}, nil
	}},
	"confirm": {2, func(ctx context.Context, a *bridge.Adapter, args []string, f *flags) (any, error) {
		return awaitAny(a.ConfirmRegistration(ctx, args[0], args[1], f.forceAlias).Await(ctx))
	}},
	"resend": {1, func(ctx context.Context, a *bridge.Adapter, args []string, _ *flags) (any, error) {
		return awaitAny(a.ResendCode(ctx, args[0]).Await(ctx))
	}},
	"login": {2, func(ctx context.Context, a *bridge.Adapter, args []string, _ *flags) (any, error) {
		return awaitAny(a.Authenticate(ctx, args[0], args[1]).Await(ctx))
	}},
	"forgot": {1, func(ctx context.Context, a *bridge.Adapter, args []string, _ *flags) (any, error) {
		return awaitAny(a.ForgotPassword(ctx, args[0]).Await(ctx))
	}},
	"confirm-forgot": {3, func(ctx context.Context, a *bridge.Adapter, args []string, _ *flags) (any, error) {
		return awaitAny(a.ConfirmForgotPassword(ctx, args[0], args[1], args[2]).Await(ctx))
	}},
	"change-password": {3, func(ctx context.Context, a *bridge.Adapter, args []string, _ *flags) (any, error) {
		return awaitAny(a.ChangePassword(ctx, args[0], args[1], args[2]).Await(ctx))
	}},
	"session": {0, func(ctx context.Context, a *bridge.Adapter, _ []string, _ *flags) (any, error) {
		return awaitAny(a.GetCurrentUserSession(ctx).Await(ctx))
	}},
	"delete": {1, func(ctx context.Context, a *bridge.Adapter, args []string, _ *flags) (any, error) {
		return awaitAny(a.DeleteUser(ctx, args[0]).Await(ctx))
	}},
	"details": {0, func(ctx context.Context, a *bridge.Adapter, _ []string, _ *flags) (any, error) {
		return awaitAny(a.GetUserDetails(ctx).Await(ctx))
	}},
	"whoami": {0, func(_ context.Context, a *bridge.Adapter, _ []string, _ *flags) (any, error) {
		return map[string]string{"username": a.GetCurrentUser().Username()}, nil
	}},
	"logout": {0, func(_ context.Context, a *bridge.Adapter, _ []string, _ *flags) (any, error) {
		a.Logout()
		return nil, nil
	}},
}

func execute(ctx context.Context, a *bridge.Adapter, name string, args []string, f *flags) (any, error) {
	cmd, ok := commands[name]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", name)
	}
	if len(args) != cmd.args {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", name, cmd.args, len(args))
	}
	return cmd.run(ctx, a, args, f)
}

func awaitAny[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
