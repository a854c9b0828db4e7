package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Bearer tokens are a reversible encoding of "userID:email:issuedAtMillis".
// They carry no signature and no expiry: any decodable token naming an
// existing user id is accepted by the auth middleware. This is a stopgap for
// clients that cannot deliver the session cookie (cross-context requests),
// not a secure token scheme.

var ErrMalformedToken = errors.New("malformed bearer token")

// TokenClaims is what a decoded bearer token carries.
type TokenClaims struct {
	UserID   string
	Email    string
	IssuedAt time.Time
}

// GenerateToken builds a bearer token for the given user.
func GenerateToken(userID, email string) string {
	raw := fmt.Sprintf("%s:%s:%d", userID, email, time.Now().UnixMilli())
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// ParseToken decodes a bearer token. It performs no lookup and no
// expiry check; callers must verify the user id against the store.
func ParseToken(token string) (*TokenClaims, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Older clients sent padded base64.
		decoded, err = base64.URLEncoding.DecodeString(token)
		if err != nil {
			return nil, ErrMalformedToken
		}
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) < 3 {
		return nil, ErrMalformedToken
	}

	userID := parts[0]
	issuedStr := parts[len(parts)-1]
	email := strings.Join(parts[1:len(parts)-1], ":")

	if userID == "" || email == "" {
		return nil, ErrMalformedToken
	}

	millis, err := strconv.ParseInt(issuedStr, 10, 64)
	if err != nil {
		return nil, ErrMalformedToken
	}

	return &TokenClaims{
		UserID:   userID,
		Email:    email,
		IssuedAt: time.UnixMilli(millis),
	}, nil
}
