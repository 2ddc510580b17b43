package common

import "crypto/rand"

// GenerateRandByteArray returns a slice of n cryptographically random bytes.
// It panics if the system random source fails, which is not recoverable.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
