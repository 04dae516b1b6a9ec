package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()

	raw, expiresAt, err := GenerateToken("secret", userID, "ADMIN", "a@b.c", "Ann", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseToken("secret", raw)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "Ann", claims.Name)
	assert.NotNil(t, claims.IssuedAt)
}

func TestParseToken_Rejects(t *testing.T) {
	userID := uuid.New()
	valid, _, err := GenerateToken("secret", userID, "USER", "u@x.io", "U", time.Hour)
	require.NoError(t, err)

	expired, _, err := GenerateToken("secret", userID, "USER", "u@x.io", "U", -time.Minute)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{"wrong secret", "other", valid},
		{"expired", "secret", expired},
		{"none algorithm", "secret", noneAlg},
		{"bad subject", "secret", badSubject},
		{"garbage", "secret", "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.secret, tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
