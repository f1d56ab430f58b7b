// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndelaeva/kritika/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return sec.NewTokenServiceFromKeys(key, "kritika.test")
}

/*
TestTokenService_RoundTrip signs a token and verifies every claim survives.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken(42, "nina", sec.RoleModerator, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "nina", claims.Username)
	assert.Equal(t, sec.RoleModerator, claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "kritika.test", claims.Issuer)
}

/*
TestTokenService_Expired ensures verification rejects a token past its TTL.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken(1, "nina", sec.RoleUser, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongKey ensures a token signed by another key fails.
*/
func TestTokenService_WrongKey(t *testing.T) {
	signer := newTestTokenService(t)
	verifier := newTestTokenService(t)

	token, err := signer.GenerateAccessToken(1, "nina", sec.RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_Garbage ensures malformed input is rejected.
*/
func TestTokenService_Garbage(t *testing.T) {
	service := newTestTokenService(t)

	_, err := service.VerifyToken("not.a.token")
	assert.Error(t, err)
}
