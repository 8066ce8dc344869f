// Package token mints App Store Connect API JSON Web Tokens.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msalah0e/fastkey/internal/apikey"
	"github.com/msalah0e/fastkey/internal/p8"
)

const (
	Audience           = "appstoreconnect-v1"
	EnterpriseAudience = "apple-developer-enterprise-v1"

	// MaxTTL is the longest lifetime App Store Connect accepts.
	MaxTTL     = 20 * time.Minute
	DefaultTTL = MaxTTL
)

var ErrTTL = errors.New("token lifetime must be between 1s and 20m")

// Options controls token issuance. Zero values use defaults.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}

// Sign builds and signs an ES256 token for the given record.
func Sign(r apikey.Record, opts Options) (string, time.Time, error) {
	if err := r.Validate(); err != nil {
		return "", time.Time{}, err
	}

	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if ttl < time.Second || ttl > MaxTTL {
		return "", time.Time{}, fmt.Errorf("%w (got %s)", ErrTTL, ttl)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	key, err := p8.Parse([]byte(r.Key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("key %s: %w", r.KeyID, err)
	}

	issued := now().UTC().Truncate(time.Second)
	expires := issued.Add(ttl)

	aud := Audience
	if r.InHouse {
		aud = EnterpriseAudience
	}

	t := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": r.IssuerID,
		"iat": issued.Unix(),
		"exp": expires.Unix(),
		"aud": aud,
	})
	t.Header["kid"] = r.KeyID

	signed, err := t.SignedString(key.Private)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}
