// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ndelaeva/kritika/internal/platform/apperr"
	"github.com/ndelaeva/kritika/internal/platform/constants"
	"github.com/ndelaeva/kritika/internal/platform/sec"
	"github.com/ndelaeva/kritika/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider defines the contract for minting signed access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT bound to the account identity.
	// The role must already be normalized (superuser folded into admin).
	GenerateAccessToken(userID int64, username string, role sec.Role, timeToLive time.Duration) (string, error)
}

// CodeGenerator produces confirmation codes. It exists as a function type so
// tests can pin deterministic codes; production wiring uses
// [sec.GenerateConfirmationCode].
type CodeGenerator func() (string, error)

// Service implements the signup and token-exchange use cases.
//
// # Review Process
//
// This service is the security core of the platform. Any change to code
// issuance, consumption, or conflict handling needs a second pair of eyes.
type Service struct {
	directory     Directory
	cooldowns     CooldownRepository
	notifier      Notifier
	tokenProvider TokenProvider
	generateCode  CodeGenerator
	logger        *slog.Logger
}

// NewService constructs the auth [Service] with its dependencies.
func NewService(
	directory Directory,
	cooldowns CooldownRepository,
	notifier Notifier,
	tokenProvider TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		directory:     directory,
		cooldowns:     cooldowns,
		notifier:      notifier,
		tokenProvider: tokenProvider,
		generateCode:  sec.GenerateConfirmationCode,
		logger:        logger,
	}
}

// WithCodeGenerator overrides the confirmation-code source. Test hook.
func (service *Service) WithCodeGenerator(generator CodeGenerator) *Service {
	service.generateCode = generator
	return service
}

// # Signup Flow

// SignUpInput holds the identity pair for a signup or re-signup request.
type SignUpInput struct {
	Username string
	Email    string
}

/*
SignUp registers a new account or refreshes the code of an existing one.

Description: Validates the identity pair, claims the per-email dispatch
cooldown, then performs the atomic create-or-update and hands the fresh code
to the notifier. Exactly one dispatch happens per successful upsert; a
delivery failure is surfaced but the persisted code stays valid.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *User: Pending account carrying the fresh code
  - error: Validation, conflict, rate-limit, or delivery errors
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*User, error) {

	// Reject malformed identities before touching any storage.
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, constants.MaxUsernameLength).
		Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, constants.MaxEmailLength).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Claim the dispatch cooldown before mutating anything, so a throttled
	// request leaves both the account and its pending code untouched.
	if service.cooldowns != nil {
		acquired, err := service.cooldowns.Acquire(context, input.Email, constants.SignupCooldown)
		if err != nil {
			// Cooldown storage is best-effort: an outage must not block signups.
			service.logger.WarnContext(context, "signup_cooldown_unavailable", slog.Any("error", err))
		} else if !acquired {
			return nil, apperr.RateLimited(int(constants.SignupCooldown.Seconds()))
		}
	}

	code, err := service.generateCode()
	if err != nil {
		return nil, fmt.Errorf("auth_service_generate_code_failed: %w", err)
	}

	// Single atomic create-or-update; identity collisions surface as Conflict
	// with no state change.
	user, err := service.directory.UpsertBySignup(context, input.Username, input.Email, code)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "signup_code_issued",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	// The code is already committed; a failed dispatch is reported but the
	// caller may retry signup for a fresh code and dispatch.
	if err := service.notifier.SendConfirmationCode(context, user.Email, code); err != nil {
		service.logger.ErrorContext(context, "confirmation_code_delivery_failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
		return user, apperr.DeliveryFailed(err)
	}

	return user, nil
}

// # Token Exchange

/*
IssueToken exchanges a pending confirmation code for a bearer access token.

Description: The directory performs the atomic compare-and-clear; on success
the account is active, the code is gone, and a signed JWT is minted with the
account's effective role.

Parameters:
  - context: context.Context
  - username: string
  - suppliedCode: string

Returns:
  - string: Signed access token
  - error: apperr.NotFound (unknown username), apperr.InvalidCode, or
    signing failures
*/
func (service *Service) IssueToken(context context.Context, username, suppliedCode string) (string, error) {

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		Required(FieldConfirmationCode, suppliedCode)

	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.directory.ConsumeCode(context, username, suppliedCode)
	if err != nil {
		return "", err
	}

	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID,
		user.Username,
		user.EffectiveRole(),
		constants.AccessTokenTTL,
	)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(context, "access_token_issued",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.EffectiveRole())),
	)

	return token, nil
}
