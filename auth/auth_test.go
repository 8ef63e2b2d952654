package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opts = TokenOptions{Secret: "s3cret", Issuer: "revisa-api", Audience: "revisa"}

func TestCreateAndVerifyToken(t *testing.T) {
	token, err := CreateToken(opts, "local|ana", "ana")
	require.NoError(t, err)

	sub, err := VerifyToken(opts, token)
	require.NoError(t, err)
	assert.Equal(t, "local|ana", sub)
}

func TestVerifyTokenRejects(t *testing.T) {
	token, err := CreateToken(opts, "local|ana", "")
	require.NoError(t, err)

	wrongSecret := opts
	wrongSecret.Secret = "other"
	_, err = VerifyToken(wrongSecret, token)
	assert.Error(t, err)

	wrongAudience := opts
	wrongAudience.Audience = "someone-else"
	_, err = VerifyToken(wrongAudience, token)
	assert.Error(t, err)

	expired := opts
	expired.TTL = -time.Minute
	old, err := CreateToken(expired, "local|ana", "")
	require.NoError(t, err)
	_, err = VerifyToken(opts, old)
	assert.Error(t, err)
}

func TestCreateTokenRequiresSecretAndSubject(t *testing.T) {
	_, err := CreateToken(TokenOptions{}, "local|ana", "")
	assert.Error(t, err)
	_, err = CreateToken(opts, "", "")
	assert.Error(t, err)
}
