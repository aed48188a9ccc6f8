package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 5 * time.Minute

const keyPrefix = "otp:"

// consumeLua deletes the pending code only on an exact match. A mismatch
// leaves the code in place for further attempts until expiry; expiry itself
// is redis TTL, so an expired code reads as absent.
const consumeLua = `
local code = redis.call("GET", KEYS[1])
if not code then
  return 0
end
if code == ARGV[1] then
  redis.call("DEL", KEYS[1])
  return 1
end
return 0
`

// Store is the OTP ledger. Codes live in redis keyed by lower-cased email,
// so any number of processes share one ledger and per-key atomicity comes
// from the single-threaded script execution.
type Store struct {
	rdb     *redis.Client
	ttl     time.Duration
	consume *redis.Script
}

// NewStore creates an OTP store with the given TTL (DefaultTTL when zero).
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		rdb:     rdb,
		ttl:     ttl,
		consume: redis.NewScript(consumeLua),
	}
}

// Issue generates a 6-digit code for the email and stores it with the
// configured TTL, overwriting any prior pending code for the same email.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, key(email), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Consume validates a submitted code. It returns true exactly once per
// issued code: the matching attempt deletes the record, so the code is
// single-use. Absent or expired records and mismatches return false.
func (s *Store) Consume(ctx context.Context, email, submitted string) (bool, error) {
	res, err := s.consume.Run(ctx, s.rdb, []string{key(email)}, submitted).Int()
	if err != nil {
		return false, fmt.Errorf("consume otp: %w", err)
	}
	return res == 1, nil
}

// Revoke drops any pending code for the email. The auth flow calls it when
// delivery fails, so the ledger never holds a code the user was never told.
func (s *Store) Revoke(ctx context.Context, email string) error {
	if err := s.rdb.Del(ctx, key(email)).Err(); err != nil {
		return fmt.Errorf("revoke otp: %w", err)
	}
	return nil
}

// generateCode uniformly samples a numeric code over 100000-999999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func key(email string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(email))
}
