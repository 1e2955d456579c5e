package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/studyhub/internal/app/models"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

func newTestService(now time.Time) *JWTService {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", SessionTTL: 24 * time.Hour, TokenIssuer: "studyhub"})
	svc.now = func() time.Time { return now }
	return svc
}

func TestIssueAndValidateSessionToken(t *testing.T) {
	now := time.Now()
	svc := newTestService(now)

	issued, err := svc.IssueSessionToken(&models.User{ID: 7, Username: "ada"})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.SessionID)
	assert.WithinDuration(t, now.Add(24*time.Hour), issued.ExpiresAt, time.Second)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, issued.SessionID, claims.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-48 * time.Hour)
	issued, err := newTestService(issuedAt).IssueSessionToken(&models.User{ID: 1, Username: "ada"})
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issued, err := newTestService(time.Now()).IssueSessionToken(&models.User{ID: 1, Username: "ada"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", SessionTTL: time.Hour, TokenIssuer: "studyhub"})
	_, err = other.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateToken_Empty(t *testing.T) {
	_, err := newTestService(time.Now()).ValidateToken("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("   ")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
}
