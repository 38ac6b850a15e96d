package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = 7 * 24 * time.Hour

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("super-secret", "shiptrack", testTTL)
	subject := uuid.New()

	tok, err := iss.Issue(context.Background(), subject)
	require.NoError(t, err)

	got, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, subject, got)
}

func TestIssue_SetsSevenDayExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	iss := NewIssuer("secret", "shiptrack", testTTL, WithClock(func() time.Time { return now }))

	tok, err := iss.Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.True(t, now.Equal(claims.IssuedAt.Time))
	assert.True(t, now.Add(testTTL).Equal(claims.ExpiresAt.Time))
	assert.Equal(t, "shiptrack", claims.Issuer)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-8 * 24 * time.Hour)
	old := NewIssuer("secret", "shiptrack", testTTL, WithClock(func() time.Time { return past }))
	tok, err := old.Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = NewIssuer("secret", "shiptrack", testTTL).Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_ExpiredWithForeignSecret(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-8 * 24 * time.Hour)
	old := NewIssuer("other-secret", "shiptrack", testTTL, WithClock(func() time.Time { return past }))
	tok, err := old.Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = NewIssuer("secret", "shiptrack", testTTL).Verify(tok)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer("right-secret", "shiptrack", testTTL).Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = NewIssuer("wrong-secret", "shiptrack", testTTL).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("k", "shiptrack", testTTL)
	for _, tok := range []string{"", "garbage", "not.a.jwt"} {
		_, err := iss.Verify(tok)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", tok)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Issuer:    "shiptrack",
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewIssuer("k", "shiptrack", testTTL).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{Issuer: "shiptrack", Subject: uuid.NewString()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewIssuer("k", "shiptrack", testTTL).Verify(tok)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerify_WrongIssuer(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer("k", "someone-else", testTTL).Issue(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = NewIssuer("k", "shiptrack", testTTL).Verify(tok)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerify_NonUUIDSubject(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Issuer:    "shiptrack",
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewIssuer("k", "shiptrack", testTTL).Verify(tok)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
