// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndelaeva/kritika/internal/platform/ctxutil"
	"github.com/ndelaeva/kritika/internal/platform/middleware"
	"github.com/ndelaeva/kritika/internal/platform/sec"
)

// stubVerifier returns fixed claims for the token "good" and fails otherwise.
type stubVerifier struct {
	claims *sec.AuthClaims
}

func (v *stubVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if tokenStr == "good" {
		return v.claims, nil
	}
	return nil, errors.New("bad signature")
}

func okHandler() (http.Handler, *bool) {
	reached := false
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		reached = true
		writer.WriteHeader(http.StatusOK)
	}), &reached
}

/*
TestAuthenticate covers anonymous passthrough, format rejection, bad tokens
and claim injection.
*/
func TestAuthenticate(t *testing.T) {
	verifier := &stubVerifier{claims: &sec.AuthClaims{UserID: 9, Username: "nina", Role: sec.RoleUser}}

	t.Run("no_header_passes_as_anonymous", func(t *testing.T) {
		next, reached := okHandler()
		recorder := httptest.NewRecorder()

		middleware.Authenticate(verifier)(next).
			ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, *reached)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("malformed_header_rejected", func(t *testing.T) {
		next, reached := okHandler()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Token abc")

		middleware.Authenticate(verifier)(next).ServeHTTP(recorder, request)

		assert.False(t, *reached)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("invalid_token_rejected", func(t *testing.T) {
		next, reached := okHandler()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer forged")

		middleware.Authenticate(verifier)(next).ServeHTTP(recorder, request)

		assert.False(t, *reached)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("valid_token_injects_claims", func(t *testing.T) {
		var injected *sec.AuthClaims
		next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			injected = ctxutil.GetAuthUser(request.Context())
		})
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer good")

		middleware.Authenticate(verifier)(next).ServeHTTP(httptest.NewRecorder(), request)

		assert.NotNil(t, injected)
		assert.Equal(t, int64(9), injected.UserID)
	})
}

// authedRequest builds a request whose context already carries claims, as
// Authenticate would have left it.
func authedRequest(role sec.Role) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: 1, Role: role})
	return request.WithContext(ctx)
}

/*
TestRequireAuth verifies the authenticated-only gate.
*/
func TestRequireAuth(t *testing.T) {
	t.Run("anonymous_rejected", func(t *testing.T) {
		next, reached := okHandler()
		recorder := httptest.NewRecorder()

		middleware.RequireAuth(next).
			ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, *reached)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated_passes", func(t *testing.T) {
		next, reached := okHandler()

		middleware.RequireAuth(next).ServeHTTP(httptest.NewRecorder(), authedRequest(sec.RoleUser))

		assert.True(t, *reached)
	})
}

/*
TestRequireAction verifies the 401-versus-403 split on matrix denials.
*/
func TestRequireAction(t *testing.T) {
	tests := []struct {
		name       string
		request    *http.Request
		action     sec.Action
		wantStatus int
	}{
		{"anonymous_read_allowed", httptest.NewRequest(http.MethodGet, "/", nil), sec.ActionCatalogRead, http.StatusOK},
		{"anonymous_write_unauthorized", httptest.NewRequest(http.MethodGet, "/", nil), sec.ActionCatalogWrite, http.StatusUnauthorized},
		{"user_write_forbidden", authedRequest(sec.RoleUser), sec.ActionCatalogWrite, http.StatusForbidden},
		{"admin_write_allowed", authedRequest(sec.RoleAdmin), sec.ActionCatalogWrite, http.StatusOK},
		{"moderator_moderate_allowed", authedRequest(sec.RoleModerator), sec.ActionContributionModerate, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := okHandler()
			recorder := httptest.NewRecorder()

			middleware.RequireAction(tt.action)(next).ServeHTTP(recorder, tt.request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

/*
TestRequireRole verifies the hierarchical role gate.
*/
func TestRequireRole(t *testing.T) {
	t.Run("anonymous_rejected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		next, _ := okHandler()

		middleware.RequireRole(sec.RoleAdmin)(next).
			ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("lower_role_forbidden", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		next, _ := okHandler()

		middleware.RequireRole(sec.RoleAdmin)(next).ServeHTTP(recorder, authedRequest(sec.RoleModerator))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("higher_role_passes", func(t *testing.T) {
		next, reached := okHandler()

		middleware.RequireRole(sec.RoleModerator)(next).ServeHTTP(httptest.NewRecorder(), authedRequest(sec.RoleAdmin))

		assert.True(t, *reached)
	})
}
