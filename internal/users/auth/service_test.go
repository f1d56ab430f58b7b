// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndelaeva/kritika/internal/platform/apperr"
	"github.com/ndelaeva/kritika/internal/platform/sec"
	"github.com/ndelaeva/kritika/internal/users/auth"
)

// # Test Doubles

// fakeDirectory implements auth.Directory backed by an in-memory map keyed
// by username.
type fakeDirectory struct {
	users  map[string]*auth.User
	nextID int64
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[string]*auth.User), nextID: 1}
}

func (d *fakeDirectory) UpsertBySignup(_ context.Context, username, email, code string) (*auth.User, error) {
	if existing, ok := d.users[username]; ok {
		if existing.Email != email {
			return nil, apperr.Conflict("Username is already registered with a different email")
		}
		existing.ConfirmationCode = &code
		copied := *existing
		return &copied, nil
	}

	for _, u := range d.users {
		if u.Email == email {
			return nil, apperr.Conflict("Email is already registered with a different username")
		}
	}

	user := &auth.User{
		ID:               d.nextID,
		Username:         username,
		Email:            email,
		Role:             sec.RoleUser,
		ConfirmationCode: &code,
	}
	d.nextID++
	d.users[username] = user

	copied := *user
	return &copied, nil
}

func (d *fakeDirectory) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (d *fakeDirectory) ConsumeCode(_ context.Context, username, code string) (*auth.User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	if user.ConfirmationCode == nil || *user.ConfirmationCode != code {
		return nil, apperr.InvalidCode()
	}

	user.ConfirmationCode = nil
	user.IsActive = true

	copied := *user
	return &copied, nil
}

// fakeCooldowns records Acquire calls and answers from a queue of results.
type fakeCooldowns struct {
	acquired bool
	err      error
	calls    int
}

func (c *fakeCooldowns) Acquire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	c.calls++
	return c.acquired, c.err
}

// fakeNotifier captures every dispatched code.
type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) SendConfirmationCode(_ context.Context, _ string, code string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, code)
	return nil
}

// fakeTokens mints predictable tokens.
type fakeTokens struct {
	lastRole sec.Role
}

func (p *fakeTokens) GenerateAccessToken(_ int64, username string, role sec.Role, _ time.Duration) (string, error) {
	p.lastRole = role
	return "token-for-" + username, nil
}

type serviceFixture struct {
	service   *auth.Service
	directory *fakeDirectory
	cooldowns *fakeCooldowns
	notifier  *fakeNotifier
	tokens    *fakeTokens
}

func newServiceFixture() *serviceFixture {
	fixture := &serviceFixture{
		directory: newFakeDirectory(),
		cooldowns: &fakeCooldowns{acquired: true},
		notifier:  &fakeNotifier{},
		tokens:    &fakeTokens{},
	}

	fixture.service = auth.NewService(
		fixture.directory,
		fixture.cooldowns,
		fixture.notifier,
		fixture.tokens,
		slog.Default(),
	).WithCodeGenerator(staticCodes("111111", "222222", "333333"))

	return fixture
}

// staticCodes yields a fixed sequence of confirmation codes.
func staticCodes(codes ...string) auth.CodeGenerator {
	index := 0
	return func() (string, error) {
		code := codes[index%len(codes)]
		index++
		return code, nil
	}
}

// # SignUp

/*
TestService_SignUp_DispatchesExactlyOneCode verifies the happy path: one
upsert, one dispatch, pending account returned.
*/
func TestService_SignUp_DispatchesExactlyOneCode(t *testing.T) {
	fixture := newServiceFixture()

	user, err := fixture.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "nina",
		Email:    "nina@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "nina", user.Username)
	assert.True(t, user.IsPending())
	assert.Equal(t, []string{"111111"}, fixture.notifier.sent)
	assert.Equal(t, 1, fixture.cooldowns.calls)
}

/*
TestService_SignUp_RepeatIssuesFreshCode verifies that re-signing up with
the identical pair replaces the pending code and dispatches again.
*/
func TestService_SignUp_RepeatIssuesFreshCode(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()
	input := auth.SignUpInput{Username: "nina", Email: "nina@example.com"}

	_, err := fixture.service.SignUp(ctx, input)
	require.NoError(t, err)

	user, err := fixture.service.SignUp(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, []string{"111111", "222222"}, fixture.notifier.sent)
	require.NotNil(t, user.ConfirmationCode)
	assert.Equal(t, "222222", *user.ConfirmationCode)
}

/*
TestService_SignUp_IdentityConflicts verifies both collision directions
yield a conflict and no dispatch.
*/
func TestService_SignUp_IdentityConflicts(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	_, err := fixture.service.SignUp(ctx, auth.SignUpInput{Username: "nina", Email: "nina@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input auth.SignUpInput
	}{
		{"same_username_other_email", auth.SignUpInput{Username: "nina", Email: "other@example.com"}},
		{"same_email_other_username", auth.SignUpInput{Username: "impostor", Email: "nina@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.SignUp(ctx, tt.input)
			assert.True(t, apperr.IsConflict(err))
		})
	}

	// Only the initial dispatch happened.
	assert.Len(t, fixture.notifier.sent, 1)
}

/*
TestService_SignUp_Validation rejects malformed identities before storage.
*/
func TestService_SignUp_Validation(t *testing.T) {
	fixture := newServiceFixture()

	tests := []struct {
		name  string
		input auth.SignUpInput
	}{
		{"reserved_username", auth.SignUpInput{Username: "me", Email: "a@example.com"}},
		{"forbidden_chars", auth.SignUpInput{Username: "user!!", Email: "a@example.com"}},
		{"bad_email", auth.SignUpInput{Username: "nina", Email: "not-an-email"}},
		{"empty_username", auth.SignUpInput{Username: "", Email: "a@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.SignUp(context.Background(), tt.input)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}

	assert.Empty(t, fixture.notifier.sent)
}

/*
TestService_SignUp_CooldownThrottles verifies the per-email cooldown leaves
no state change behind.
*/
func TestService_SignUp_CooldownThrottles(t *testing.T) {
	fixture := newServiceFixture()
	fixture.cooldowns.acquired = false

	_, err := fixture.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "nina",
		Email:    "nina@example.com",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RATE_LIMITED", ae.Code)
	assert.Empty(t, fixture.notifier.sent)
	assert.Empty(t, fixture.directory.users)
}

/*
TestService_SignUp_CooldownOutageDegradesOpen verifies a cooldown storage
failure logs and proceeds rather than blocking signups.
*/
func TestService_SignUp_CooldownOutageDegradesOpen(t *testing.T) {
	fixture := newServiceFixture()
	fixture.cooldowns.err = errors.New("redis down")

	_, err := fixture.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "nina",
		Email:    "nina@example.com",
	})

	require.NoError(t, err)
	assert.Len(t, fixture.notifier.sent, 1)
}

/*
TestService_SignUp_DeliveryFailureKeepsCode verifies a notifier failure is
surfaced while the persisted code remains valid for a later exchange.
*/
func TestService_SignUp_DeliveryFailureKeepsCode(t *testing.T) {
	fixture := newServiceFixture()
	fixture.notifier.err = errors.New("smtp timeout")

	user, err := fixture.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "nina",
		Email:    "nina@example.com",
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "DELIVERY_FAILED", ae.Code)
	require.NotNil(t, user)

	// The committed code still works.
	token, err := fixture.service.IssueToken(context.Background(), "nina", "111111")
	require.NoError(t, err)
	assert.Equal(t, "token-for-nina", token)
}

// # IssueToken

/*
TestService_IssueToken_HappyPath verifies exchange activates the account
and consumes the code.
*/
func TestService_IssueToken_HappyPath(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	_, err := fixture.service.SignUp(ctx, auth.SignUpInput{Username: "nina", Email: "nina@example.com"})
	require.NoError(t, err)

	token, err := fixture.service.IssueToken(ctx, "nina", "111111")
	require.NoError(t, err)
	assert.Equal(t, "token-for-nina", token)

	stored := fixture.directory.users["nina"]
	assert.True(t, stored.IsActive)
	assert.Nil(t, stored.ConfirmationCode)
}

/*
TestService_IssueToken_CodeIsSingleUse verifies the second exchange of the
same code fails with the generic invalid-code error.
*/
func TestService_IssueToken_CodeIsSingleUse(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	_, err := fixture.service.SignUp(ctx, auth.SignUpInput{Username: "nina", Email: "nina@example.com"})
	require.NoError(t, err)

	_, err = fixture.service.IssueToken(ctx, "nina", "111111")
	require.NoError(t, err)

	_, err = fixture.service.IssueToken(ctx, "nina", "111111")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CODE", ae.Code)
}

/*
TestService_IssueToken_UnknownUsername distinguishes unknown accounts (404)
from wrong codes (400).
*/
func TestService_IssueToken_UnknownUsername(t *testing.T) {
	fixture := newServiceFixture()

	_, err := fixture.service.IssueToken(context.Background(), "ghost", "111111")
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_IssueToken_WrongCode verifies a mismatched code keeps the
stored one intact.
*/
func TestService_IssueToken_WrongCode(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	_, err := fixture.service.SignUp(ctx, auth.SignUpInput{Username: "nina", Email: "nina@example.com"})
	require.NoError(t, err)

	_, err = fixture.service.IssueToken(ctx, "nina", "999999")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_CODE", ae.Code)

	// A later attempt with the right code still succeeds.
	_, err = fixture.service.IssueToken(ctx, "nina", "111111")
	assert.NoError(t, err)
}

/*
TestService_IssueToken_SuperuserGetsAdminRole verifies the superuser flag
is folded into the minted token's role.
*/
func TestService_IssueToken_SuperuserGetsAdminRole(t *testing.T) {
	fixture := newServiceFixture()
	ctx := context.Background()

	_, err := fixture.service.SignUp(ctx, auth.SignUpInput{Username: "root", Email: "root@example.com"})
	require.NoError(t, err)
	fixture.directory.users["root"].IsSuperuser = true

	_, err = fixture.service.IssueToken(ctx, "root", "111111")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, fixture.tokens.lastRole)
}
