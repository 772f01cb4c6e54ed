package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/logging"
	"github.com/phonomarket/phono/internal/server/auth"
	"github.com/phonomarket/phono/internal/server/config"
)

// captureLogger records Info calls so tests can fish out the issued OTP code.
type captureLogger struct {
	infos [][]any
}

func (l *captureLogger) Debug(context.Context, string, ...any) {}
func (l *captureLogger) Info(_ context.Context, _ string, args ...any) {
	l.infos = append(l.infos, args)
}
func (l *captureLogger) Warn(context.Context, string, ...any)  {}
func (l *captureLogger) Error(context.Context, string, ...any) {}
func (l *captureLogger) With(...any) logging.Logger            { return l }

func (l *captureLogger) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, l.infos)
	args := l.infos[len(l.infos)-1]
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == "code" {
			return args[i+1].(string)
		}
	}
	t.Fatal("no code was logged")
	return ""
}

func newAuthService(m *fakeManager, log *captureLogger) *AuthService {
	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}
	return NewAuthService(nil, m, auth.NewOTPStore(time.Minute), log, cfg)
}

func TestAuthService_RegisterVerifyLogin(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	log := &captureLogger{}
	s := newAuthService(m, log)

	challenge, err := s.Register(ctx, "901234567", "secret", "Olim", "Karimov")
	require.NoError(t, err)
	require.NotEmpty(t, challenge.UUID)
	require.Equal(t, "901234567", challenge.Phone)
	require.True(t, challenge.Expire.After(time.Now()))

	// no account yet
	require.Empty(t, m.users.rows)

	pair, err := s.VerifyOTP(ctx, challenge.UUID, log.lastCode(t))
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	id, err := s.UserIDFromToken(pair.AccessToken)
	require.NoError(t, err)

	user, err := m.users.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "901234567", user.Phone)
	require.Equal(t, "Olim", user.Name)
	require.NotEqual(t, "secret", user.PasswordHash)

	pair, err = s.Login(ctx, "901234567", "secret")
	require.NoError(t, err)
	got, err := s.UserIDFromToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestAuthService_RefreshRotates(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	log := &captureLogger{}
	s := newAuthService(m, log)

	challenge, err := s.Register(ctx, "901234567", "secret", "Olim", "Karimov")
	require.NoError(t, err)
	first, err := s.VerifyOTP(ctx, challenge.UUID, log.lastCode(t))
	require.NoError(t, err)

	second, err := s.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, second.AccessToken)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	id, err := s.UserIDFromToken(second.AccessToken)
	require.NoError(t, err)
	user, err := m.users.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "901234567", user.Phone)

	// rotated out: the first token is spent
	_, err = s.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = s.Refresh(ctx, "never-issued")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAuthService_RefreshExpired(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	log := &captureLogger{}
	s := newAuthService(m, log)

	challenge, err := s.Register(ctx, "901234567", "secret", "Olim", "Karimov")
	require.NoError(t, err)
	pair, err := s.VerifyOTP(ctx, challenge.UUID, log.lastCode(t))
	require.NoError(t, err)

	stale := m.refreshTokens.rows[pair.RefreshToken]
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	m.refreshTokens.rows[pair.RefreshToken] = stale

	_, err = s.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	// expiry consumes the row as well
	require.NotContains(t, m.refreshTokens.rows, pair.RefreshToken)
}

func TestAuthService_RegisterTakenPhone(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	log := &captureLogger{}
	s := newAuthService(m, log)

	challenge, err := s.Register(ctx, "901234567", "secret", "Olim", "Karimov")
	require.NoError(t, err)
	_, err = s.VerifyOTP(ctx, challenge.UUID, log.lastCode(t))
	require.NoError(t, err)

	_, err = s.Register(ctx, "901234567", "other", "Aziz", "Toshev")
	require.ErrorIs(t, err, common.ErrorPhoneTaken)
}

func TestAuthService_VerifyOTPWrongCode(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	log := &captureLogger{}
	s := newAuthService(m, log)

	challenge, err := s.Register(ctx, "901234567", "secret", "Olim", "Karimov")
	require.NoError(t, err)

	code := log.lastCode(t)
	wrong := "0000"
	if wrong == code {
		wrong = "1111"
	}
	_, err = s.VerifyOTP(ctx, challenge.UUID, wrong)
	require.ErrorIs(t, err, common.ErrOTPMismatch)

	// a wrong code does not burn the challenge
	_, err = s.VerifyOTP(ctx, challenge.UUID, code)
	require.NoError(t, err)
}

func TestAuthService_LoginWrongCredentials(t *testing.T) {
	ctx := context.Background()
	m := newFakeManager()
	log := &captureLogger{}
	s := newAuthService(m, log)

	challenge, err := s.Register(ctx, "901234567", "secret", "Olim", "Karimov")
	require.NoError(t, err)
	_, err = s.VerifyOTP(ctx, challenge.UUID, log.lastCode(t))
	require.NoError(t, err)

	_, err = s.Login(ctx, "901234567", "wrong")
	require.ErrorIs(t, err, common.ErrorWrongLogin)

	_, err = s.Login(ctx, "999999999", "secret")
	require.ErrorIs(t, err, common.ErrorWrongLogin)
}
