package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestSignParseRoundTrip(t *testing.T) {
	raw, err := Sign(42, "alice", "admin", secret)
	require.NoError(t, err)

	claims, err := Parse(raw, secret)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID())
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "admin", claims.Role)
	require.WithinDuration(t, time.Now().Add(AccessTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, err := Sign(1, "alice", "user", secret)
	require.NoError(t, err)

	_, err = Parse(raw, []byte("other-secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	claims := AccessClaims{
		Username: "alice",
		Role:     "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = Parse(raw, secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not.a.token", secret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromBearer(t *testing.T) {
	raw, ok := FromBearer("Bearer abc.def.ghi")
	require.True(t, ok)
	require.Equal(t, "abc.def.ghi", raw)

	_, ok = FromBearer("")
	require.False(t, ok)

	_, ok = FromBearer("Basic abc")
	require.False(t, ok)

	_, ok = FromBearer("Bearer ")
	require.False(t, ok)
}
