package common

import "crypto/rand"

// urlSafeAlphabet contains 64 URL-safe symbols, so a single random byte
// masked to 6 bits maps to exactly one symbol without modulo bias.
const urlSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// MakeRandURLSafeString returns a random string of length n drawn from a
// URL-safe alphabet. Used for one-time reset tokens.
func MakeRandURLSafeString(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = urlSafeAlphabet[int(b)&63]
	}
	return string(buf), nil
}
