package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenLifetime = 24 * time.Hour

// Claims is the payload carried inside an identity token. It is rebuilt from
// the token string on every request and never persisted.
type Claims struct {
	ProfileID   uint   `json:"profileId"`
	DisplayName string `json:"displayName"`
	jwt.RegisteredClaims
}

// AccountID returns the numeric account id encoded in the subject claim.
func (c *Claims) AccountID() uint {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// Authority issues and validates HMAC-signed identity tokens. Validation is
// pure and performs no I/O, so a single Authority is safe for concurrent use.
type Authority struct {
	secret []byte
}

// NewAuthority creates an Authority signing with the given symmetric secret.
func NewAuthority(secret string) *Authority {
	return &Authority{secret: []byte(secret)}
}

// Issue creates a signed token for the given identity, valid for 24 hours.
func (a *Authority) Issue(accountID, profileID uint, displayName string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ProfileID:   profileID,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(accountID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Validate parses and verifies a token string. On failure it returns an
// *AuthError tagged Malformed, BadSignature, or Expired; a corrupted
// signature never yields partially trusted claims.
func (a *Authority) Validate(tokenString string) (*Claims, *AuthError) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrMalformed
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return nil, ErrExpired
			case ve.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
				return nil, ErrBadSignature
			}
		}
		return nil, ErrMalformed
	}
	if !token.Valid {
		return nil, ErrBadSignature
	}
	return claims, nil
}

// ExtractBearer strips the "Bearer " prefix from an Authorization header
// value. The prefix match is case-sensitive; anything else means no
// credential was presented.
func ExtractBearer(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
