package id

import "github.com/google/uuid"

// New returns a random (v4) UUID in canonical lowercase form.
func New() string { return uuid.NewString() }

// Valid reports whether s is a canonical 36-char UUID.
func Valid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
