package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonomarket/phono/internal/common"
)

func stubCode(t *testing.T, code string) {
	t.Helper()
	orig := generateCode
	generateCode = func() (string, error) { return code, nil }
	t.Cleanup(func() { generateCode = orig })
}

func TestOTP_IssueAndVerify(t *testing.T) {
	stubCode(t, "1234")
	s := NewOTPStore(time.Minute)

	id, code, expiresAt, err := s.Issue("payload")
	require.NoError(t, err)
	assert.Equal(t, "1234", code)
	assert.True(t, expiresAt.After(time.Now()))

	payload, err := s.Verify(id, "1234")
	require.NoError(t, err)
	assert.Equal(t, "payload", payload)

	// A code is consumed on success.
	_, err = s.Verify(id, "1234")
	assert.ErrorIs(t, err, common.ErrOTPExpired)
}

func TestOTP_WrongCodeAllowsRetry(t *testing.T) {
	stubCode(t, "1234")
	s := NewOTPStore(time.Minute)

	id, _, _, err := s.Issue(nil)
	require.NoError(t, err)

	_, err = s.Verify(id, "9999")
	assert.ErrorIs(t, err, common.ErrOTPMismatch)

	_, err = s.Verify(id, "1234")
	assert.NoError(t, err)
}

func TestOTP_Expired(t *testing.T) {
	stubCode(t, "1234")
	s := NewOTPStore(-time.Second)

	id, _, _, err := s.Issue(nil)
	require.NoError(t, err)

	_, err = s.Verify(id, "1234")
	assert.ErrorIs(t, err, common.ErrOTPExpired)
}

func TestOTP_UnknownID(t *testing.T) {
	s := NewOTPStore(time.Minute)
	_, err := s.Verify("missing", "1234")
	assert.ErrorIs(t, err, common.ErrOTPExpired)
}
