package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionIssuer is stamped into every session token and required on the way back in
const SessionIssuer = "founderhub"

var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims carries the account behind a session. The user id travels as the subject.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// UserID is the id of the account the session belongs to
func (sc *SessionClaims) UserID() string {
	return sc.Subject
}

// SessionTokens signs and verifies HS256 session tokens with a shared secret
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	return &SessionTokens{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(SessionIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// Issue returns a signed token for userID that expires after the configured ttl
func (st *SessionTokens) Issue(userID, role string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("issue session: empty user id")
	}
	now := time.Now()
	claims := &SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    SessionIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(st.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(st.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer and expiry. Every failure wraps ErrInvalidSession.
func (st *SessionTokens) Verify(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := st.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return st.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidSession)
	}
	return claims, nil
}
