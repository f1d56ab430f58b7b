// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ndelaeva/kritika/internal/platform/request"
	"github.com/ndelaeva/kritika/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signup : Creates or refreshes an account and emails a code.
//   - POST /token  : Exchanges a confirmation code for a bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Both endpoints are public by definition.
	router.Post("/signup", handler.signUp)
	router.Post("/token", handler.issueToken)

	return router
}

// # Request / Response Payloads

type signUpRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type signUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

/*
POST /api/v1/auth/signup

Description: Registers an account (or re-requests a code for the identical
identity pair) and dispatches the confirmation code by email.

Response:
  - 200: signUpResponse: Echo of the accepted identity (200, not 201 — the
    operation is an idempotent re-request for an existing pair)
  - 400: Validation failure (charset, reserved name, malformed email)
  - 409: Identity collision (username or email taken by a different pair)
  - 429: Dispatch cooldown still active for this email
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, signUpResponse{
		Email:    user.Email,
		Username: user.Username,
	})
}

/*
POST /api/v1/auth/token

Description: Exchanges a pending confirmation code for a signed bearer token,
activating the account and invalidating the code in the same operation.

Response:
  - 200: tokenResponse: Signed JWT access token
  - 400: Invalid or already-consumed code (non_field_errors detail)
  - 404: Unknown username
*/
func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.IssueToken(request.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{AccessToken: token})
}
