// Package id generates the identifiers the relay hands out: order ids that
// travel through the PSP back to the CRM, and request ids used to correlate
// log lines of one HTTP exchange.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	PrefixRequest = "req"
)

// Generate creates a cryptographically random Base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// NewRequestID returns an id such as "req_xK9mP2vL3nQa". If the random source
// fails the id degrades to a UUID rather than an empty string.
func NewRequestID() string {
	short, err := Generate(DefaultLength)
	if err != nil {
		short = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return PrefixRequest + "_" + short
}

// IsRequestID reports whether s has the shape produced by NewRequestID.
func IsRequestID(s string) bool {
	prefix, short, ok := strings.Cut(s, "_")
	if !ok || prefix != PrefixRequest || short == "" {
		return false
	}
	for i := 0; i < len(short); i++ {
		if !strings.ContainsRune(alphabet, rune(short[i])) {
			return false
		}
	}
	return true
}

// NewOrderID returns a fresh random (version 4) UUID. Order ids are minted by
// the relay only, never accepted from callers.
func NewOrderID() string {
	return uuid.NewString()
}
