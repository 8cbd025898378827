package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "refdata/pkg/domain-errors"
)

var tokenService = NewService("test-signing-key", "test-issuer")
var expiresIn = time.Hour

func Test_GenerateToken(t *testing.T) {
	token, err := tokenService.GenerateToken("ops@example.com", expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(expiresIn), claims.ExpiresAt.Time, time.Minute)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := tokenService.ValidateToken("invalid-token-string")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.ErrorContains(t, err, "invalid token")
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, err := tokenService.GenerateToken("ops@example.com", -time.Hour)
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.ErrorContains(t, err, "token has expired")
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	other := NewService("different-signing-key", "test-issuer")
	token, err := other.GenerateToken("ops@example.com", expiresIn)
	require.NoError(t, err)

	_, err = tokenService.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_MiddlewareAdapter(t *testing.T) {
	token, err := tokenService.GenerateToken("ops@example.com", expiresIn)
	require.NoError(t, err)

	adapter := &MiddlewareAdapter{Service: tokenService}
	claims, err := adapter.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
}
