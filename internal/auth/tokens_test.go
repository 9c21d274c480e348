package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/istl-web/auth-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

const testKey = "test-signing-key-at-least-32-chars!!"

func newTestTokens() *Tokens {
	return NewTokens([]byte(testKey), time.Hour, time.Hour)
}

func TestIssueSession_VerifyRoundTrip(t *testing.T) {
	tk := newTestTokens()

	raw, err := tk.IssueSession(42, domain.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	userID, role, err := tk.VerifySession(raw)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestVerifySession_ExpiredToken(t *testing.T) {
	tk := NewTokens([]byte(testKey), -time.Minute, time.Hour)

	raw, err := tk.IssueSession(1, domain.RoleUser)
	assert.NoError(t, err)

	_, _, err = tk.VerifySession(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifySession_WrongKey(t *testing.T) {
	raw, err := newTestTokens().IssueSession(1, domain.RoleUser)
	assert.NoError(t, err)

	other := NewTokens([]byte("another-signing-key-32-chars-long!!!"), time.Hour, time.Hour)
	_, _, err = other.VerifySession(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifySession_Malformed(t *testing.T) {
	_, _, err := newTestTokens().VerifySession("not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifySession_TamperedSignature(t *testing.T) {
	tk := newTestTokens()

	raw, err := tk.IssueSession(7, domain.RoleUser)
	assert.NoError(t, err)

	tampered := raw[:len(raw)-2] + "xx"
	_, _, err = tk.VerifySession(tampered)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifySession_RejectsNonHMACAlg(t *testing.T) {
	// alg "none" must never pass key-based verification.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1, "purpose": "session",
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, _, err = newTestTokens().VerifySession(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestIssueReset_VerifyRoundTrip(t *testing.T) {
	tk := newTestTokens()

	raw, err := tk.IssueReset(9)
	assert.NoError(t, err)

	userID, err := tk.VerifyReset(raw)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), userID)
}

func TestPurposes_DoNotCross(t *testing.T) {
	tk := newTestTokens()

	session, err := tk.IssueSession(3, domain.RoleUser)
	assert.NoError(t, err)
	reset, err := tk.IssueReset(3)
	assert.NoError(t, err)

	// A reset link must not double as a login, and a stolen session must not
	// allow a password overwrite.
	_, _, err = tk.VerifySession(reset)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = tk.VerifyReset(session)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
