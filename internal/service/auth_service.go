package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/dto"
	"github.com/kvnochieng52/flight-distance/internal/model"
	"github.com/kvnochieng52/flight-distance/internal/repository"
	apperrors "github.com/kvnochieng52/flight-distance/pkg/errors"
	"github.com/kvnochieng52/flight-distance/pkg/jwt"
	"github.com/kvnochieng52/flight-distance/pkg/mailer"
	"github.com/kvnochieng52/flight-distance/pkg/metrics"
)

var (
	ErrInvalidCredentials = errors.New("the provided credentials are incorrect")
	ErrAccountInactive    = errors.New("account pending approval")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrTokenExpired       = errors.New("token expired")
)

// MsgEmailTaken is the field message for an address already registered.
const MsgEmailTaken = "The email has already been taken."

const (
	msgPasswordMismatch = "The password field confirmation does not match."
)

// Session is the authenticated caller of a request, resolved from its bearer token.
type Session struct {
	User  *model.User
	Token *model.PersonalAccessToken
}

// AuthService account and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, meta dto.RequestMeta) (*dto.UserResponse, error)
	// EmailTaken reports whether an account already uses email.
	EmailTaken(ctx context.Context, email string) (bool, error)
	// Login replaces the caller's token for req.DeviceName with a new one.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Authenticate(ctx context.Context, bearer string) (*Session, error)
	RevokeCurrent(ctx context.Context, session *Session) error
	RevokeAll(ctx context.Context, session *Session) (int64, error)
	PruneExpired(ctx context.Context) (int64, error)
}

type authService struct {
	repo     *repository.Repository
	jwtMgr   *jwt.Manager
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService. notifier and m may be nil.
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		jwtMgr:   jwtMgr,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest, meta dto.RequestMeta) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)

	ve := &apperrors.ValidationError{}
	if req.Password != req.PasswordConfirmation {
		ve.Add("password", msgPasswordMismatch)
	}
	exists, err := s.repo.User.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("check email failed", zap.Error(err))
		return nil, err
	}
	if exists {
		ve.Add("email", MsgEmailTaken)
	}
	if !ve.Empty() {
		s.logger.Warn("user registration rejected",
			zap.String("email", email),
			zap.Any("errors", ve.Fields),
			zap.String("ip", meta.IP),
			zap.String("user_agent", meta.UserAgent),
		)
		return nil, ve
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Telephone:    strings.TrimSpace(req.Telephone),
		PasswordHash: string(hash),
		IsActive:     false,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewValidationError("email", MsgEmailTaken)
		}
		s.logger.Error("create user failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("ip", meta.IP),
		zap.String("user_agent", meta.UserAgent),
	)
	if s.metrics != nil {
		s.metrics.Registrations.Inc()
	}
	if s.notifier != nil {
		reg := mailer.Registration{
			UserID:    user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Telephone: user.Telephone,
			IP:        meta.IP,
			At:        s.now(),
		}
		go func() {
			if err := s.notifier.NotifyRegistration(reg); err != nil {
				s.logger.Warn("registration notice not sent", zap.Uint("user_id", reg.UserID), zap.Error(err))
			}
		}()
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) EmailTaken(ctx context.Context, email string) (bool, error) {
	exists, err := s.repo.User.ExistsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.logger.Error("check email failed", zap.Error(err))
		return false, err
	}
	return exists, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.countLogin("invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("query user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.countLogin("invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.countLogin("inactive")
		return nil, ErrAccountInactive
	}

	// at most one live token per device
	if err := s.repo.Token.DeleteByDevice(ctx, user.ID, req.DeviceName); err != nil {
		s.logger.Error("revoke device tokens failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	issued, err := s.jwtMgr.Issue(user.ID, req.DeviceName)
	if err != nil {
		s.logger.Error("sign token failed", zap.Error(err))
		return nil, err
	}

	token := &model.PersonalAccessToken{
		ID:         issued.ID,
		UserID:     user.ID,
		DeviceName: req.DeviceName,
		ExpiresAt:  issued.ExpiresAt,
	}
	if err := s.repo.Token.Create(ctx, token); err != nil {
		s.logger.Error("store token failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	s.countLogin("success")
	s.logger.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("device_name", req.DeviceName))

	resp := &dto.LoginResponse{
		User:      toUserResponse(user),
		Token:     issued.Token,
		TokenType: "Bearer",
	}
	if issued.ExpiresAt != nil {
		exp := formatTime(*issued.ExpiresAt)
		resp.ExpiresAt = &exp
	}
	return resp, nil
}

// ────────────────────── Authenticate ──────────────────────

func (s *authService) Authenticate(ctx context.Context, bearer string) (*Session, error) {
	claims, err := s.jwtMgr.Parse(bearer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrUnauthenticated
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrUnauthenticated
	}

	token, err := s.repo.Token.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// revoked
			return nil, ErrUnauthenticated
		}
		s.logger.Error("query token failed", zap.Error(err))
		return nil, err
	}
	if token.UserID != userID {
		return nil, ErrUnauthenticated
	}
	now := s.now()
	if token.Expired(now) {
		return nil, ErrTokenExpired
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		s.logger.Error("query user failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if err := s.repo.Token.Touch(ctx, token.ID, now); err != nil {
		s.logger.Warn("update token last_used_at failed", zap.String("token_id", token.ID), zap.Error(err))
	} else {
		token.LastUsedAt = &now
	}

	return &Session{User: user, Token: token}, nil
}

// ────────────────────── Revoke ──────────────────────

func (s *authService) RevokeCurrent(ctx context.Context, session *Session) error {
	err := s.repo.Token.DeleteByID(ctx, session.Token.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("revoke token failed", zap.String("token_id", session.Token.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) RevokeAll(ctx context.Context, session *Session) (int64, error) {
	n, err := s.repo.Token.DeleteByUser(ctx, session.User.ID)
	if err != nil {
		s.logger.Error("revoke all tokens failed", zap.Uint("user_id", session.User.ID), zap.Error(err))
		return 0, err
	}
	return n, nil
}

// ────────────────────── PruneExpired ──────────────────────

func (s *authService) PruneExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.Token.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("prune expired tokens failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired tokens pruned", zap.Int64("count", n))
	}
	return n, nil
}

// ── helpers ──

func (s *authService) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Telephone: u.Telephone,
		IsActive:  u.IsActive,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}
