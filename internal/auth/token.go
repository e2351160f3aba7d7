package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = 10 * time.Hour

const redacted = "[REDACTED]"

// SigningKey is the HMAC secret used to sign tokens. It never prints.
type SigningKey []byte

func (SigningKey) String() string   { return redacted }
func (SigningKey) GoString() string { return redacted }

// MarshalJSON keeps the key out of serialized config dumps.
func (SigningKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// Token is an issued bearer token.
type Token struct {
	Value     string    `json:"token"`
	Subject   string    `json:"subject"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	ID        string    `json:"id"`
}

// TokenClaims are the verified claims of a parsed token.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
	Issuer    string
}

// TokenOption configures a TokenCodec.
type TokenOption func(*TokenCodec)

// WithTTL sets the token lifetime.
func WithTTL(ttl time.Duration) TokenOption {
	return func(c *TokenCodec) { c.ttl = ttl }
}

// WithIssuer sets the iss claim written on issue and required on parse.
func WithIssuer(issuer string) TokenOption {
	return func(c *TokenCodec) { c.issuer = issuer }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCodec) { c.now = now }
}

// TokenCodec issues and parses HS256 JWTs.
type TokenCodec struct {
	key    SigningKey
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenCodec creates a TokenCodec. The key must not be empty.
func NewTokenCodec(key SigningKey, opts ...TokenOption) (*TokenCodec, error) {
	if len(key) == 0 {
		return nil, errors.New("signing key is required")
	}

	c := &TokenCodec{
		key: append(SigningKey(nil), key...),
		ttl: DefaultTokenTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", c.ttl)
	}
	return c, nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the principal.
func (c *TokenCodec) Issue(p *Principal) (*Token, error) {
	if p == nil || p.Email == "" {
		return nil, errors.New("principal email is required")
	}

	// NumericDate has second precision.
	now := c.now().Truncate(time.Second)
	expiresAt := now.Add(c.ttl)
	id := uuid.NewString()

	claims := jwt.RegisteredClaims{
		Subject:   p.Email,
		Issuer:    c.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        id,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.key))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		Value:     signed,
		Subject:   p.Email,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
		ID:        id,
	}, nil
}

// Parse verifies tokenString and returns its claims.
//
// A bad signature, a non-HS256 algorithm or missing claims return
// ErrMalformedToken. A token whose exp is at or before now returns
// ErrTokenExpired. The signature is checked before any claim.
func (c *TokenCodec) Parse(tokenString string) (*TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
		// Reject non-canonical base64 so a signature has exactly one encoding.
		jwt.WithStrictDecoding(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.key), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if !token.Valid {
		return nil, ErrMalformedToken
	}

	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing required claim", ErrMalformedToken)
	}

	return &TokenClaims{
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
		Issuer:    claims.Issuer,
	}, nil
}
