package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/logging"
	"github.com/phonomarket/phono/internal/server/auth"
	"github.com/phonomarket/phono/internal/server/config"
	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/repomanager"
)

// pendingRegistration is the payload parked in the OTP store between the
// register call and the code confirmation.
type pendingRegistration struct {
	Phone        string
	PasswordHash string
	Name         string
	Surname      string
}

// RegistrationChallenge is handed back to the client so it can confirm the
// one-time code.
type RegistrationChallenge struct {
	UUID   string
	Phone  string
	Expire time.Time
}

// TokenPair bundles a short-lived access token with the refresh token that
// renews it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	otp         *auth.OTPStore
	logger      logging.Logger
	jwtSecret   []byte
	tokenTTL    time.Duration
	refreshTTL  time.Duration
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, otp *auth.OTPStore, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		otp:         otp,
		logger:      logger,
		jwtSecret:   []byte(cfg.SecretKey),
		tokenTTL:    cfg.AccessTokenValidityDuration,
		refreshTTL:  cfg.RefreshTokenValidityDuration,
	}
}

// Register checks that the phone is free, parks the hashed credentials in the
// OTP store and issues a confirmation code. No account exists until the code
// is confirmed.
func (s *AuthService) Register(ctx context.Context, phone, password, name, surname string) (*RegistrationChallenge, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByPhone(ctx, phone); err == nil {
		return nil, common.ErrorPhoneTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	id, code, expiresAt, err := s.otp.Issue(pendingRegistration{
		Phone:        phone,
		PasswordHash: string(hash),
		Name:         name,
		Surname:      surname,
	})
	if err != nil {
		return nil, err
	}

	// There is no SMS gateway wired in; the code lands in the server log.
	s.logger.Info(ctx, "otp issued", "phone", phone, "code", code)

	return &RegistrationChallenge{UUID: id, Phone: phone, Expire: expiresAt}, nil
}

// VerifyOTP consumes the code, creates the account and returns a token pair.
func (s *AuthService) VerifyOTP(ctx context.Context, challengeID, code string) (*TokenPair, error) {
	payload, err := s.otp.Verify(challengeID, code)
	if err != nil {
		return nil, err
	}

	pending, ok := payload.(pendingRegistration)
	if !ok {
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Phone:        pending.Phone,
		PasswordHash: pending.PasswordHash,
		Name:         pending.Name,
		Surname:      pending.Surname,
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user.ID)
}

// Login verifies the credentials and returns a token pair. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorWrongLogin
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorWrongLogin
	}

	return s.issueTokens(ctx, user.ID)
}

// Refresh exchanges a valid refresh token for a new pair. Tokens rotate on
// every use: the presented token is invalidated even when the renewal itself
// fails later.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	stored, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}

	if err := repo.Delete(ctx, refreshToken); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if time.Now().After(stored.ExpiresAt) {
		return nil, common.ErrInvalidToken
	}

	return s.issueTokens(ctx, stored.UserID)
}

// issueTokens mints an access token and stores a fresh refresh token.
func (s *AuthService) issueTokens(ctx context.Context, userID int64) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	expiresAt := time.Now().Add(s.refreshTTL)
	if err := s.repomanager.RefreshTokens(s.db).Create(ctx, userID, refresh, expiresAt); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// UserIDFromToken validates an access token and extracts the user id.
func (s *AuthService) UserIDFromToken(token string) (int64, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
