// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
)

// # Delivery Contract

// Notifier delivers a confirmation code to an email address.
//
// The actual transport (SMTP relay, transactional email API) is an external
// collaborator wired in at startup; this package only depends on the contract.
// Delivery failures are surfaced to the signup caller but never roll back the
// persisted code.
type Notifier interface {

	/*
		SendConfirmationCode dispatches a single code to a single address.

		Parameters:
		  - context: context.Context
		  - email: string (destination address)
		  - code: string (the freshly issued confirmation code)

		Returns:
		  - error: delivery failures
	*/
	SendConfirmationCode(context context.Context, email, code string) error
}

// # Development Transport

// LogNotifier writes codes to the structured log instead of sending email.
//
// It is the development and test stand-in, analogous to a console mail
// backend. Never wire it in production: codes end up in log storage.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed [Notifier].
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendConfirmationCode implements [Notifier] by logging the dispatch.
func (notifier *LogNotifier) SendConfirmationCode(context context.Context, email, code string) error {
	notifier.logger.InfoContext(context, "confirmation_code_dispatched",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}
