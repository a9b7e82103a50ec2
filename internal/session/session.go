// Package session issues and verifies the signed, time-limited tokens that
// carry a user's id and role in the "token" cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vaughan-dsouza/betasks/internal/models"
)

const (
	CookieName = "token"
	// TTL is the lifetime of every token and of its cookie.
	TTL = time.Hour
)

var (
	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the token payload. ID and Role mirror the subject so clients
// decoding the token see {id, role} directly.
type Claims struct {
	ID   int64       `json:"id"`
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type Options struct {
	Secret       string
	SecureCookie bool
	Denylist     Denylist
	// Now overrides the clock; used by tests.
	Now func() time.Time
}

type Manager struct {
	secret   []byte
	secure   bool
	denylist Denylist
	now      func() time.Time
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Secret == "" {
		return nil, errors.New("session: secret not configured")
	}
	m := &Manager{
		secret:   []byte(opts.Secret),
		secure:   opts.SecureCookie,
		denylist: opts.Denylist,
		now:      opts.Now,
	}
	if m.denylist == nil {
		m.denylist = NewMemoryDenylist()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m, nil
}

// Issue signs a token for u that expires TTL after now.
func (m *Manager) Issue(u models.User) (string, time.Time, error) {
	now := m.now()
	expTime := now.Add(TTL)

	claims := Claims{
		ID:   u.ID,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(u.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("session: sign: %w", err)
	}
	return signed, expTime, nil
}

// Verify checks signature, expiry, role and the denylist. Every failure
// with a token present is reported as ErrInvalidToken.
func (m *Manager) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !claims.Role.Valid() || claims.Subject != strconv.FormatInt(claims.ID, 10) {
		return nil, fmt.Errorf("%w: malformed claims", ErrInvalidToken)
	}

	if claims.RegisteredClaims.ID != "" {
		revoked, err := m.denylist.Revoked(ctx, claims.RegisteredClaims.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: denylist: %v", ErrInvalidToken, err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
		}
	}

	return &claims, nil
}

// Revoke denylists the token until its natural expiry.
func (m *Manager) Revoke(ctx context.Context, c *Claims) error {
	if c == nil || c.RegisteredClaims.ID == "" || c.ExpiresAt == nil {
		return nil
	}
	if !c.ExpiresAt.Time.After(m.now()) {
		return nil
	}
	return m.denylist.Revoke(ctx, c.RegisteredClaims.ID, c.ExpiresAt.Time)
}

// Cookie wraps a token. Secure is off unless configured; production
// deployments behind TLS must turn it on.
func (m *Manager) Cookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// FromRequest returns the token cookie value, or "" when absent.
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
