// Package id generates opaque reference codes for subscriptions.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	// alphabet covers uppercase letters and digits, matching the
	// ATT-[A-Z0-9]{16} reference format.
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// ReferencePrefix is the fixed prefix of subscription references.
	ReferencePrefix = "ATT"

	// ReferenceLength is the length of the random suffix.
	ReferenceLength = 16
)

var referencePattern = regexp.MustCompile(`^ATT-[A-Z0-9]{16}$`)

// Generate creates a cryptographically random string of the given length
// over the uppercase alphanumeric alphabet.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = ReferenceLength
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

// NewReference creates a subscription reference in the format
// ATT-XXXXXXXXXXXXXXXX. Uniqueness is the caller's responsibility; the
// create use case retries against storage until an unused value is found.
func NewReference() (string, error) {
	suffix, err := Generate(ReferenceLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", ReferencePrefix, suffix), nil
}

// MustNewReference creates a reference and panics on entropy failure.
func MustNewReference() string {
	ref, err := NewReference()
	if err != nil {
		panic(err)
	}
	return ref
}

// ValidReference reports whether s matches the reference format.
func ValidReference(s string) bool {
	return referencePattern.MatchString(s)
}

// NormalizeReference upper-cases and trims a user-supplied reference.
func NormalizeReference(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
