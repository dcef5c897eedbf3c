package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"agrocrm/pkg/apperr"
)

const issuer = "agrocrm"

type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Tokens issues and checks HS256 bearer tokens whose subject is the user id.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Enabled() bool { return t != nil && len(t.secret) > 0 }

func (t *Tokens) Issue(uid string) (string, time.Time, error) {
	if !t.Enabled() {
		return "", time.Time{}, errors.New("auth: no signing secret configured")
	}
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return "", time.Time{}, apperr.Invalid("uid is required")
	}
	now := t.now()
	exp := now.Add(t.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return signed, exp, nil
}

// Parse validates the token and returns its subject. Every failure is an
// apperr.ErrUnauthorized.
func (t *Tokens) Parse(token string) (string, error) {
	if token == "" {
		return "", errors.Wrap(apperr.ErrUnauthorized, "empty token")
	}
	if !t.Enabled() {
		return "", errors.Wrap(apperr.ErrUnauthorized, "no signing secret configured")
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	claims := &Claims{}
	tok, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return "", errors.Wrapf(apperr.ErrUnauthorized, "invalid token: %v", err)
	}
	if !tok.Valid || claims.Subject == "" {
		return "", errors.Wrap(apperr.ErrUnauthorized, "token has no subject")
	}
	return claims.Subject, nil
}
