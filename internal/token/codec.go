package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/osokin/authgate/internal/apperrors"
	"github.com/osokin/authgate/internal/models"
)

const (
	// Prefix prepended to every issued token. Must be stripped before parsing.
	Prefix = "Bearer "

	// Header carrying the access token in both directions
	Header = "Authorization"

	signingAlg = "HS256"
	rolesClaim = "roles"
)

// Claims embedded in every issued token
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// Codec signs and parses the compact token form. The same symmetric key
// signs and validates; access and refresh tokens differ only by TTL.
type Codec struct {
	key []byte
	alg jwt.SigningMethod
}

// New builds a codec from a base64-encoded symmetric secret.
func New(secretKey string) (*Codec, error) {
	if secretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	key, err := base64.StdEncoding.DecodeString(secretKey)
	if err != nil {
		return nil, fmt.Errorf("secret key is not valid base64: %w", err)
	}

	return &Codec{
		key: key,
		alg: jwt.GetSigningMethod(signingAlg),
	}, nil
}

// Issue signs a token for the identity expiring at now + ttl.
// The returned string carries the "Bearer " prefix, the form the token
// travels in headers and the refresh store.
func (c *Codec) Issue(identity models.Identity, ttl time.Duration) (models.IssuedToken, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(ttl)

	t := jwt.NewWithClaims(c.alg, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.Nickname,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Roles: identity.Roles,
	})

	signed, err := t.SignedString(c.key)
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing token. Err: %w", err)
	}

	return models.IssuedToken{Value: Prefix + signed, ExpiresAt: expiresAt}, nil
}

// Validate checks signature and expiry of a bare (prefix-stripped) token.
// Failures classify into exactly four kinds, each with its own status:
// bad signature, unsupported token, malformed token, expired token.
func (c *Codec) Validate(raw string) error {
	_, err := c.parse(raw)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", apperrors.ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", apperrors.ErrUnsupportedToken, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", apperrors.ErrExpiredToken, err)
	default:
		return fmt.Errorf("%w: %w", apperrors.ErrMalformedToken, err)
	}
}

// Identity reconstructs the principal from a validated token.
// Call only after Validate succeeded.
func (c *Codec) Identity(raw string) (models.Identity, error) {
	claims, err := c.parse(raw)
	if err != nil {
		return models.Identity{}, fmt.Errorf("error while parsing token. Err: %w", err)
	}

	return identityFromClaims(claims)
}

// UnverifiedIdentity decodes claims without signature or expiry checks.
// Used by the refresh flow, where the token was already authenticated by
// exact-match presence in the store.
func (c *Codec) UnverifiedIdentity(raw string) (models.Identity, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		return models.Identity{}, fmt.Errorf("error while decoding token claims. Err: %w", err)
	}

	return identityFromClaims(claims)
}

func (c *Codec) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(t *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{c.alg.Alg()}),
	)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// identityFromClaims fails loudly on a missing subject or roles claim
// instead of defaulting: a token without them is not a usable principal.
func identityFromClaims(claims *Claims) (models.Identity, error) {
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: subject claim is empty", apperrors.ErrMalformedToken)
	}
	if len(claims.Roles) == 0 {
		return models.Identity{}, fmt.Errorf("%w: %q claim is missing or empty", apperrors.ErrMalformedToken, rolesClaim)
	}

	return models.Identity{Nickname: claims.Subject, Roles: claims.Roles}, nil
}

// StripPrefix removes the "Bearer " prefix from a transmitted token value.
func StripPrefix(value string) string {
	return strings.TrimPrefix(value, Prefix)
}
