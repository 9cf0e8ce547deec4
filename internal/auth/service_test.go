package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAccessWhenNoKeyConfigured(t *testing.T) {
	svc, err := NewService("test-secret", "")
	require.NoError(t, err)

	assert.False(t, svc.Required())

	// Any key, including none, is accepted.
	res, err := svc.CreateSession("")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.True(t, strings.HasPrefix(res.SessionID, "sess_"))
}

func TestCreateSessionChecksAccessKey(t *testing.T) {
	svc, err := NewService("test-secret", "hunter2")
	require.NoError(t, err)

	assert.True(t, svc.Required())

	_, err = svc.CreateSession("wrong")
	assert.ErrorIs(t, err, ErrInvalidKey)

	res, err := svc.CreateSession("hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewService("test-secret", "")
	require.NoError(t, err)

	res, err := svc.CreateSession("")
	require.NoError(t, err)

	sessionID, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, sessionID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer, err := NewService("secret-a", "")
	require.NoError(t, err)
	verifier, err := NewService("secret-b", "")
	require.NoError(t, err)

	res, err := issuer.CreateSession("")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(res.Token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, err := NewService("test-secret", "")
	require.NoError(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
