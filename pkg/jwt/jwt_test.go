package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/kvnochieng52/flight-distance/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-for-unit-testing-2026",
		TokenTTL:  ttl,
	})
}

func TestIssueAndParse(t *testing.T) {
	m := newTestManager(time.Hour)

	issued, err := m.Issue(42, "pixel-7")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if issued.ID == "" || issued.Token == "" {
		t.Fatal("expected token id and token string")
	}
	if issued.ExpiresAt == nil {
		t.Fatal("expected expiry with positive ttl")
	}

	claims, err := m.Parse(issued.Token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	uid, err := claims.UserID()
	if err != nil || uid != 42 {
		t.Errorf("expected user 42, got %d (%v)", uid, err)
	}
	if claims.DeviceName != "pixel-7" {
		t.Errorf("expected device pixel-7, got %s", claims.DeviceName)
	}
	if claims.ID != issued.ID {
		t.Errorf("expected jti %s, got %s", issued.ID, claims.ID)
	}
}

func TestIssue_NoExpiry(t *testing.T) {
	m := newTestManager(0)

	issued, err := m.Issue(1, "web")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if issued.ExpiresAt != nil {
		t.Error("zero ttl should issue tokens without expiry")
	}
	if _, err := m.Parse(issued.Token); err != nil {
		t.Errorf("Parse failed: %v", err)
	}
}

func TestParse_Expired(t *testing.T) {
	m := newTestManager(time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	issued, err := m.Issue(1, "web")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	m.now = time.Now
	if _, err := m.Parse(issued.Token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	issued, err := newTestManager(time.Hour).Issue(1, "web")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other := NewManager(&config.AuthConfig{JWTSecret: "another-secret-key-0000000000", TokenTTL: time.Hour})
	if _, err := other.Parse(issued.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	m := newTestManager(time.Hour)
	if _, err := m.Parse("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
