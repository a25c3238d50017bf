package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kvnochieng52/flight-distance/config"
	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/model"
	apperrors "github.com/kvnochieng52/flight-distance/pkg/errors"
	"github.com/kvnochieng52/flight-distance/pkg/jwt"
	"github.com/kvnochieng52/flight-distance/pkg/metrics"
)

func newTestAuthService(ttl time.Duration) (*authService, *mockRepos) {
	repo, mocks := newMockRepository()
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret: "test-secret-key-0123456789",
		TokenTTL:  ttl,
	})
	svc := NewAuthService(repo, jwtMgr, nil, nil, zap.NewNop()).(*authService)
	return svc, mocks
}

func seedUser(t *testing.T, mocks *mockRepos, email, password string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		Name:         "Test Pilot",
		Email:        email,
		Telephone:    "0712345678",
		PasswordHash: string(hash),
		IsActive:     active,
	}
	if err := mocks.user.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:                 "Test Pilot",
		Email:                email,
		Telephone:            "0712345678",
		Password:             "password123",
		PasswordConfirmation: "password123",
		DeviceName:           "pixel",
	}
}

// ── Register ──

func TestRegister_CreatesInactiveUser(t *testing.T) {
	svc, mocks := newTestAuthService(0)
	m := metrics.New()
	svc.metrics = m
	notifier := newMockNotifier()
	svc.notifier = notifier

	user, err := svc.Register(context.Background(), registerRequest("Pilot@Example.com"), dto.RequestMeta{IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.IsActive {
		t.Error("registered user must start inactive")
	}
	if user.Email != "pilot@example.com" {
		t.Errorf("expected normalized email, got %s", user.Email)
	}

	stored := mocks.user.users[user.ID]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")) != nil {
		t.Error("stored password hash does not match")
	}
	if len(mocks.token.tokens) != 0 {
		t.Error("registration must not issue a token")
	}

	select {
	case reg := <-notifier.sent:
		if reg.UserID != user.ID || reg.IP != "10.0.0.1" {
			t.Errorf("unexpected registration notice: %+v", reg)
		}
	case <-time.After(time.Second):
		t.Error("expected an administrator notice")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, mocks := newTestAuthService(0)
	seedUser(t, mocks, "pilot@example.com", "password123", false)

	_, err := svc.Register(context.Background(), registerRequest("PILOT@example.com"), dto.RequestMeta{})
	ve, ok := apperrors.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields["email"]) == 0 {
		t.Errorf("expected an email field error, got %v", ve.Fields)
	}
	if n, _ := mocks.user.Count(context.Background()); n != 1 {
		t.Errorf("user count changed: %d", n)
	}
}

func TestEmailTaken_IgnoresCase(t *testing.T) {
	svc, mocks := newTestAuthService(0)
	seedUser(t, mocks, "pilot@example.com", "password123", false)

	taken, err := svc.EmailTaken(context.Background(), " Pilot@Example.com ")
	if err != nil || !taken {
		t.Errorf("expected address to be taken, got %v %v", taken, err)
	}
	if taken, _ := svc.EmailTaken(context.Background(), "other@example.com"); taken {
		t.Error("unused address reported as taken")
	}
}

func TestRegister_PasswordConfirmationMismatch(t *testing.T) {
	svc, _ := newTestAuthService(0)
	req := registerRequest("pilot@example.com")
	req.PasswordConfirmation = "different1"

	_, err := svc.Register(context.Background(), req, dto.RequestMeta{})
	ve, ok := apperrors.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Fields["password"][0] != msgPasswordMismatch {
		t.Errorf("unexpected password errors: %v", ve.Fields["password"])
	}
}

// ── Login ──

func TestLogin_WrongPasswordThenInactive(t *testing.T) {
	svc, mocks := newTestAuthService(0)
	seedUser(t, mocks, "pilot@example.com", "password123", false)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Email: "pilot@example.com", Password: "wrong-pass", DeviceName: "pixel"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123", DeviceName: "pixel"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "pilot@example.com", Password: "password123", DeviceName: "pixel"})
	if !errors.Is(err, ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}
	if len(mocks.token.tokens) != 0 {
		t.Error("no token may be issued to an inactive account")
	}
}

func TestLogin_Success(t *testing.T) {
	svc, mocks := newTestAuthService(time.Hour)
	user := seedUser(t, mocks, "pilot@example.com", "password123", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "pilot@example.com", Password: "password123", DeviceName: "pixel"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.Token == "" {
		t.Errorf("unexpected token response: %+v", resp)
	}
	if resp.User.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, resp.User.ID)
	}
	if resp.ExpiresAt == nil {
		t.Error("expected expires_at with a configured ttl")
	}
	if len(mocks.token.tokens) != 1 {
		t.Errorf("expected 1 stored token, got %d", len(mocks.token.tokens))
	}
}

func TestLogin_SameDeviceInvalidatesPreviousToken(t *testing.T) {
	svc, mocks := newTestAuthService(0)
	seedUser(t, mocks, "pilot@example.com", "password123", true)
	ctx := context.Background()
	req := &dto.LoginRequest{Email: "pilot@example.com", Password: "password123", DeviceName: "pixel"}

	first, err := svc.Login(ctx, req)
	if err != nil {
		t.Fatalf("first Login failed: %v", err)
	}
	second, err := svc.Login(ctx, req)
	if err != nil {
		t.Fatalf("second Login failed: %v", err)
	}

	if _, err := svc.Authenticate(ctx, first.Token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("first token should be revoked, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, second.Token); err != nil {
		t.Errorf("second token should be valid: %v", err)
	}

	// a different device keeps its own token
	other, err := svc.Login(ctx, &dto.LoginRequest{Email: "pilot@example.com", Password: "password123", DeviceName: "tablet"})
	if err != nil {
		t.Fatalf("tablet Login failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, second.Token); err != nil {
		t.Errorf("pixel token should survive a tablet login: %v", err)
	}
	if _, err := svc.Authenticate(ctx, other.Token); err != nil {
		t.Errorf("tablet token should be valid: %v", err)
	}
}

// ── Authenticate ──

func TestAuthenticate_RejectsGarbageAndTouches(t *testing.T) {
	svc, mocks := newTestAuthService(0)
	seedUser(t, mocks, "pilot@example.com", "password123", true)
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, "not-a-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	resp, _ := svc.Login(ctx, &dto.LoginRequest{Email: "pilot@example.com", Password: "password123", DeviceName: "pixel"})
	session, err := svc.Authenticate(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if session.Token.LastUsedAt == nil {
		t.Error("expected last_used_at to be recorded")
	}
	if session.Token.DeviceName != "pixel" {
		t.Errorf("expected device pixel, got %s", session.Token.DeviceName)
	}
}

func TestAuthenticate_DeactivatedUser(t *testing.T) {
	svc, mocks := newTestAuthService(0)
	user := seedUser(t, mocks, "pilot@example.com", "password123", true)
	ctx := context.Background()

	resp, _ := svc.Login(ctx, &dto.LoginRequest{Email: "pilot@example.com", Password: "password123", DeviceName: "pixel"})
	user.IsActive = false

	if _, err := svc.Authenticate(ctx, resp.Token); !errors.Is(err, ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAuthenticate_ExpiredTokenAndPrune(t *testing.T) {
	svc, mocks := newTestAuthService(time.Minute)
	seedUser(t, mocks, "pilot@example.com", "password123", true)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "pilot@example.com", Password: "password123", DeviceName: "pixel"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	for _, tok := range mocks.token.tokens {
		if !tok.Expired(svc.now()) {
			t.Fatal("stored token should be expired at the shifted clock")
		}
	}

	n, err := svc.PruneExpired(ctx)
	if err != nil {
		t.Fatalf("PruneExpired failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned token, got %d", n)
	}
	if _, err := svc.Authenticate(ctx, resp.Token); err == nil {
		t.Error("pruned token must be rejected")
	}
}

// ── Revoke ──

func TestRevokeCurrentAndAll(t *testing.T) {
	svc, mocks := newTestAuthService(0)
	seedUser(t, mocks, "pilot@example.com", "password123", true)
	ctx := context.Background()

	login := func(device string) string {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "pilot@example.com", Password: "password123", DeviceName: device})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		return resp.Token
	}
	pixel, tablet, laptop := login("pixel"), login("tablet"), login("laptop")

	session, err := svc.Authenticate(ctx, pixel)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if err := svc.RevokeCurrent(ctx, session); err != nil {
		t.Fatalf("RevokeCurrent failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, pixel); err == nil {
		t.Error("revoked token must be rejected")
	}
	if _, err := svc.Authenticate(ctx, tablet); err != nil {
		t.Errorf("other tokens must survive RevokeCurrent: %v", err)
	}

	session, _ = svc.Authenticate(ctx, laptop)
	n, err := svc.RevokeAll(ctx, session)
	if err != nil {
		t.Fatalf("RevokeAll failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 tokens revoked, got %d", n)
	}
	if len(mocks.token.tokens) != 0 {
		t.Errorf("expected no tokens left, got %d", len(mocks.token.tokens))
	}
}
