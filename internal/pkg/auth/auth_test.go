package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/alumnihub/internal/app/models"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "alumnihub"})

	token, expiresIn, err := svc.GenerateToken(models.User{ID: "u1", Email: "a@b.c", RoleType: models.RoleAlumni})
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ALUMNI", claims.RoleType)
}

func TestJWT_Expired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Minute})
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := svc.GenerateToken(models.User{ID: "u1", Email: "a@b.c", RoleType: models.RoleStudent})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAndExtractClaims(token)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func TestJWT_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService(JWTConfig{SecretKey: "one"}).GenerateToken(models.User{ID: "u1", Email: "a@b.c", RoleType: models.RoleAdmin})
	require.NoError(t, err)

	_, err = NewJWTService(JWTConfig{SecretKey: "two"}).ValidateAndExtractClaims(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	tok, err = ExtractBearerToken(`"a.b.c"`)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	_, err = ExtractBearerToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPassword(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))

	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
}
