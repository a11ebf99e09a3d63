package common

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// MakeRandHexString generates a random hexadecimal string from size random
// bytes. The resulting string is twice as long as size. Used for share-link
// tokens and scheduler lease owner ids.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IdempotencyKey derives the guard value for a mutating invoice call from
// the invoice id and the target status. A retried call carries the same key,
// letting the server echo an already-applied transition instead of failing.
func IdempotencyKey(invoiceID, targetStatus string) string {
	return invoiceID + ":" + targetStatus
}

var pinPattern = regexp.MustCompile(`^[0-9]{4,6}$`)

// ValidPinFormat reports whether pin is a numeric string of 4 to 6 digits,
// the only PIN shape the portal accepts.
func ValidPinFormat(pin string) bool {
	return pinPattern.MatchString(pin)
}
