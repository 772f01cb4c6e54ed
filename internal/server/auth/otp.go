package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phonomarket/phono/internal/common"
)

// generateCode is a seam so tests can fix the issued code.
var generateCode = func() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

type pendingOTP struct {
	code      string
	payload   any
	expiresAt time.Time
}

// OTPStore keeps pending one-time codes in memory. Each code carries an
// opaque payload (the pending registration) that is released exactly once,
// on successful verification.
type OTPStore struct {
	ttl time.Duration

	mu      sync.Mutex
	pending map[string]pendingOTP
}

func NewOTPStore(ttl time.Duration) *OTPStore {
	return &OTPStore{ttl: ttl, pending: make(map[string]pendingOTP)}
}

// Issue creates a code bound to payload and returns the confirmation id, the
// code itself and the expiry time.
func (s *OTPStore) Issue(payload any) (id string, code string, expiresAt time.Time, err error) {
	code, err = generateCode()
	if err != nil {
		return "", "", time.Time{}, err
	}

	id = uuid.NewString()
	expiresAt = time.Now().Add(s.ttl)

	s.mu.Lock()
	s.pending[id] = pendingOTP{code: code, payload: payload, expiresAt: expiresAt}
	s.mu.Unlock()

	return id, code, expiresAt, nil
}

// Verify checks the code for the given id. On success the pending entry is
// consumed and its payload returned. Expired or unknown ids report
// ErrOTPExpired; a wrong code reports ErrOTPMismatch and the entry stays so
// the user may retry.
func (s *OTPStore) Verify(id, code string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[id]
	if !ok {
		return nil, common.ErrOTPExpired
	}
	if time.Now().After(p.expiresAt) {
		delete(s.pending, id)
		return nil, common.ErrOTPExpired
	}
	if p.code != code {
		return nil, common.ErrOTPMismatch
	}

	delete(s.pending, id)
	return p.payload, nil
}
