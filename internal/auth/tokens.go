package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/istl-web/auth-service/internal/domain"
)

// Token purposes. A reset token must never be accepted as a session
// credential (or vice versa), so every token carries its purpose and each
// verifier checks it.
const (
	purposeSession = "session"
	purposeReset   = "reset"
)

type sessionClaims struct {
	UserID  int64       `json:"user_id"`
	Role    domain.Role `json:"role,omitempty"`
	Purpose string      `json:"purpose"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies the compact, time-bound credentials used for
// sessions and password resets. The signing key is injected at construction
// so it can be rotated without touching source.
type Tokens struct {
	key        []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewTokens(key []byte, sessionTTL, resetTTL time.Duration) *Tokens {
	return &Tokens{key: key, sessionTTL: sessionTTL, resetTTL: resetTTL}
}

func (t *Tokens) IssueSession(userID int64, role domain.Role) (string, error) {
	return t.issue(userID, role, purposeSession, t.sessionTTL)
}

func (t *Tokens) IssueReset(userID int64) (string, error) {
	return t.issue(userID, "", purposeReset, t.resetTTL)
}

func (t *Tokens) issue(userID int64, role domain.Role, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// VerifySession returns the identity carried by a valid, unexpired session
// token. Bad signature, malformed payload, expiry, and wrong purpose all
// surface as domain.ErrTokenInvalid.
func (t *Tokens) VerifySession(raw string) (int64, domain.Role, error) {
	claims, err := t.verify(raw, purposeSession)
	if err != nil {
		return 0, "", err
	}
	return claims.UserID, claims.Role, nil
}

// VerifyReset returns the subject of a valid, unexpired reset token.
func (t *Tokens) VerifyReset(raw string) (int64, error) {
	claims, err := t.verify(raw, purposeReset)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func (t *Tokens) verify(raw, purpose string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return t.key, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.Purpose != purpose || claims.UserID == 0 {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
