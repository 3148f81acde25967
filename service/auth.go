package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/corebit/img2dataurl/logger"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid is returned when a bearer token is missing, expired
	// or fails verification.
	ErrTokenInvalid = errors.New("invalid api token")
)

// APIClaims are the verified claims carried by a client bearer token.
type APIClaims struct {
	// Subject identifies the caller; recorded as the job requester.
	Subject string
	// MaxPixels caps the requested target area (width x height). Zero
	// means unlimited.
	MaxPixels int64
}

// ParseAPIToken verifies an HS256 bearer token against the shared secret
// and extracts the claims the resize API cares about. Expiry is honored by
// the parser.
func ParseAPIToken(tokenStr, secret string) (*APIClaims, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		logger.Debug().Err(err).Msg("auth: token verification failed")
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrTokenInvalid)
	}

	out := &APIClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if v, ok := claims["max_pixels"]; ok {
		if f, ok := v.(float64); ok && f > 0 {
			out.MaxPixels = int64(f)
		}
	}

	logger.Debug().Str("subject", out.Subject).Int64("max_pixels", out.MaxPixels).Msg("auth: token verified")
	return out, nil
}

// NewAPIToken mints a signed HS256 token. Used by operators to issue client
// credentials and by tests.
func NewAPIToken(secret, subject string, maxPixels int64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	if maxPixels > 0 {
		claims["max_pixels"] = maxPixels
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign api token: %w", err)
	}
	return signed, nil
}
