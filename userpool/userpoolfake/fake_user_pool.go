// Package userpoolfake is a scripted, in-memory userpool.UserPool for tests.
package userpoolfake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/jrsteele09/go-cognito-bridge/userpool"
)

// Script holds the outcome each operation reports. A zero Outcome is a success
// with the zero value.
type Script struct {
	SignUp                userpool.Outcome[userpool.SignUpResponse]
	ConfirmSignUp         userpool.Outcome[userpool.Empty]
	ResendCode            userpool.Outcome[identity.CodeDeliveryDetails]
	GetSession            userpool.Outcome[*userpool.Session]
	CurrentSession        userpool.Outcome[*userpool.Session]
	ForgotPassword        userpool.Outcome[identity.CodeDeliveryDetails]
	ConfirmForgotPassword userpool.Outcome[userpool.Empty]
	ChangePassword        userpool.Outcome[userpool.Empty]
	DeleteUser            userpool.Outcome[userpool.Empty]
	GetDetails            userpool.Outcome[userpool.DetailsResponse]

	// Repeat makes every completion fire this many extra times.
	Repeat int
}

// Call records one operation invoked on the fake.
type Call struct {
	Op       string
	Username string
	Args     []string
	Attrs    []userpool.AttributeType
}

var _ userpool.UserPool = (*FakeUserPool)(nil)

type FakeUserPool struct {
	Script Script

	calls   []Call
	current string
	lock    sync.Mutex
}

func NewFakeUserPool() *FakeUserPool {
	return &FakeUserPool{}
}

// Calls returns a copy of the recorded calls.
func (f *FakeUserPool) Calls() []Call {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]Call(nil), f.calls...)
}

// SetCurrentUser makes username the signed in user.
func (f *FakeUserPool) SetCurrentUser(username string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.current = username
}

func (f *FakeUserPool) record(c Call) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, c)
}

func (f *FakeUserPool) script() Script {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.Script
}

// fire completes asynchronously, like the real vendor, Repeat+1 times.
func fire[T any](f *FakeUserPool, done userpool.Completion[T], out userpool.Outcome[T]) {
	repeat := f.script().Repeat
	go func() {
		for i := 0; i <= repeat; i++ {
			done(out)
		}
	}()
}

func (f *FakeUserPool) SignUp(_ context.Context, username, password string, attributes, _ []userpool.AttributeType, done userpool.Completion[userpool.SignUpResponse]) {
	f.record(Call{Op: "SignUp", Username: username, Args: []string{password}, Attrs: attributes})
	out := f.script().SignUp
	if _, failed := out.Failed(); !failed && out.Value().User == nil {
		v := out.Value()
		v.User = f.GetUser(username)
		out = userpool.Success(v)
	}
	fire(f, done, out)
}

func (f *FakeUserPool) GetUser(username string) userpool.User {
	return &FakeUser{pool: f, username: username}
}

func (f *FakeUserPool) CurrentUser() userpool.User {
	f.lock.Lock()
	defer f.lock.Unlock()
	return &FakeUser{pool: f, username: f.current}
}

var _ userpool.User = (*FakeUser)(nil)

type FakeUser struct {
	pool     *FakeUserPool
	username string
}

func (u *FakeUser) Username() string {
	return u.username
}

func (u *FakeUser) ConfirmSignUp(_ context.Context, confirmationCode string, forceAliasCreation bool, done userpool.Completion[userpool.Empty]) {
	force := "false"
	if forceAliasCreation {
		force = "true"
	}
	u.pool.record(Call{Op: "ConfirmSignUp", Username: u.username, Args: []string{confirmationCode, force}})
	fire(u.pool, done, u.pool.script().ConfirmSignUp)
}

func (u *FakeUser) ResendConfirmationCode(_ context.Context, done userpool.Completion[identity.CodeDeliveryDetails]) {
	u.pool.record(Call{Op: "ResendConfirmationCode", Username: u.username})
	fire(u.pool, done, u.pool.script().ResendCode)
}

// GetSession makes the user current when the scripted outcome succeeds.
func (u *FakeUser) GetSession(_ context.Context, username, password string, _ []userpool.AttributeType, done userpool.Completion[*userpool.Session]) {
	u.pool.record(Call{Op: "GetSession", Username: u.username, Args: []string{username, password}})
	out := u.pool.script().GetSession
	if _, failed := out.Failed(); !failed {
		u.pool.SetCurrentUser(u.username)
	}
	fire(u.pool, done, out)
}

func (u *FakeUser) CurrentSession(_ context.Context, done userpool.Completion[*userpool.Session]) {
	u.pool.record(Call{Op: "CurrentSession", Username: u.username})
	fire(u.pool, done, u.pool.script().CurrentSession)
}

func (u *FakeUser) ForgotPassword(_ context.Context, done userpool.Completion[identity.CodeDeliveryDetails]) {
	u.pool.record(Call{Op: "ForgotPassword", Username: u.username})
	fire(u.pool, done, u.pool.script().ForgotPassword)
}

func (u *FakeUser) ConfirmForgotPassword(_ context.Context, confirmationCode, newPassword string, done userpool.Completion[userpool.Empty]) {
	u.pool.record(Call{Op: "ConfirmForgotPassword", Username: u.username, Args: []string{confirmationCode, newPassword}})
	fire(u.pool, done, u.pool.script().ConfirmForgotPassword)
}

func (u *FakeUser) ChangePassword(_ context.Context, previousPassword, proposedPassword string, done userpool.Completion[userpool.Empty]) {
	u.pool.record(Call{Op: "ChangePassword", Username: u.username, Args: []string{previousPassword, proposedPassword}})
	fire(u.pool, done, u.pool.script().ChangePassword)
}

func (u *FakeUser) DeleteUser(_ context.Context, done userpool.Completion[userpool.Empty]) {
	u.pool.record(Call{Op: "DeleteUser", Username: u.username})
	fire(u.pool, done, u.pool.script().DeleteUser)
}

func (u *FakeUser) GetDetails(_ context.Context, done userpool.Completion[userpool.DetailsResponse]) {
	u.pool.record(Call{Op: "GetDetails", Username: u.username})
	fire(u.pool, done, u.pool.script().GetDetails)
}

func (u *FakeUser) SignOut() {
	u.pool.record(Call{Op: "SignOut", Username: u.username})
	u.pool.lock.Lock()
	defer u.pool.lock.Unlock()
	if u.pool.current == u.username {
		u.pool.current = ""
	}
}
