// Package auth covers the two narrow credentials the portal knows about:
// share-link PINs (bcrypt-hashed, verified on the canonical endpoint) and
// short-lived admin bearer tokens for the recurring surface.
package auth

import (
	"errors"

	"github.com/dmitrijs2005/billgate/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPin validates the PIN format (numeric, 4-6 digits) and returns its
// bcrypt hash for storage on the share link.
func HashPin(pin string) ([]byte, error) {
	if !common.ValidPinFormat(pin) {
		return nil, common.ErrInvalidPinFormat
	}
	return bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
}

// CheckPin compares a candidate PIN against a stored hash. Returns
// common.ErrInvalidPin on mismatch.
func CheckPin(hash []byte, pin string) error {
	err := bcrypt.CompareHashAndPassword(hash, []byte(pin))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return common.ErrInvalidPin
		}
		return err
	}
	return nil
}
