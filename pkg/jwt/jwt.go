package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kvnochieng52/flight-distance/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const issuer = "flight-distance"

// Claims identifies the personal access token a bearer string was issued for.
// The token ID (jti) is the primary key of the stored token row, so deleting
// the row revokes the bearer string.
type Claims struct {
	DeviceName string `json:"device_name"`
	jwtv5.RegisteredClaims
}

// UserID returns the subject as a numeric user id.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return uint(id), nil
}

// Issued is a freshly signed token.
type Issued struct {
	ID        string
	Token     string
	ExpiresAt *time.Time
}

// Manager signs and verifies bearer tokens.
type Manager struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewManager creates a Manager. A zero auth.token_ttl issues tokens without expiry.
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
		now:      time.Now,
	}
}

// Issue signs a token for userID on deviceName.
func (m *Manager) Issue(userID uint, deviceName string) (*Issued, error) {
	now := m.now()
	id := uuid.New().String()
	claims := Claims{
		DeviceName: deviceName,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:       id,
			Subject:  strconv.FormatUint(uint64(userID), 10),
			IssuedAt: jwtv5.NewNumericDate(now),
			Issuer:   issuer,
		},
	}

	var expiresAt *time.Time
	if m.tokenTTL > 0 {
		exp := now.Add(m.tokenTTL)
		expiresAt = &exp
		claims.ExpiresAt = jwtv5.NewNumericDate(exp)
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, err
	}
	return &Issued{ID: id, Token: signed, ExpiresAt: expiresAt}, nil
}

// Parse verifies the signature and expiry of tokenString.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer), jwtv5.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
