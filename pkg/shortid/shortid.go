// Package shortid generates compact random identifiers used to scope
// attachment folders to a single entity.
package shortid

import (
	"crypto/rand"
)

const alphabet = "1234567890abcdefghijklmnopqrstuvwxyz"

// DefaultLength matches the identifier format already present in stored
// attachment folder paths.
const DefaultLength = 5

// New returns a random identifier of DefaultLength.
func New() string {
	return NewWithLength(DefaultLength)
}

// NewWithLength returns a random identifier drawn from the lowercase
// alphanumeric alphabet.
func NewWithLength(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; if it does the
		// process has bigger problems than id generation.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
