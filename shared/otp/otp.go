package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	Min = 100000
	Max = 999999
)

// Generate returns a uniformly random six digit code in [Min, Max].
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(Max-Min+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	return fmt.Sprintf("%d", n.Int64()+Min), nil
}

// Expired reports whether a code issued at issuedAt is stale at now.
// A missing issue time counts as expired.
func Expired(issuedAt *time.Time, now time.Time, ttl time.Duration) bool {
	if issuedAt == nil {
		return true
	}

	return now.After(issuedAt.Add(ttl))
}
