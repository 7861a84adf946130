// Package cryptox implements the cryptographic primitives of the vault:
// one-way credential hashing and authenticated symmetric encryption of
// stored secrets.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passvault/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost keeps a single verification under ~100ms on commodity hardware
// while remaining expensive to brute-force.
const bcryptCost = 12

// DecryptionFailedSentinel replaces the secret of a record whose envelope
// cannot be opened, so one corrupt row never fails a whole listing.
const DecryptionFailedSentinel = "[DECRYPTION_FAILED]"

// gcmTagSize is the length in bytes of the GCM authentication tag.
const gcmTagSize = 16

// HashCredential produces a salted one-way hash of plaintext.
func HashCredential(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: hashing failed: %v", common.ErrCrypto, err)
	}
	return string(hash), nil
}

// VerifyCredential reports whether plaintext matches hash. Internal errors
// are treated as a failed verification, not propagated.
func VerifyCredential(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Cipher performs AES-256-GCM encryption of secret fields. The key is loaded
// once at startup and read-only afterwards, so a Cipher is safe for
// concurrent use.
type Cipher struct {
	key []byte
}

// NewCipher builds a Cipher from a hex-encoded 32-byte key. A missing or
// wrongly sized key is a configuration error; callers should abort startup.
func NewCipher(hexKey string) (*Cipher, error) {
	if hexKey == "" {
		return nil, fmt.Errorf("%w: encryption key is not configured", common.ErrCrypto)
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key is not valid hex", common.ErrCrypto)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: encryption key must be 32 bytes, got %d", common.ErrCrypto, len(key))
	}
	return &Cipher{key: key}, nil
}

func (c *Cipher) newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCrypto, err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCrypto, err)
	}
	return aesgcm, nil
}

// Encrypt seals plaintext with a fresh random nonce and returns the envelope
// "nonce:tag:ciphertext", each segment hex-encoded.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	aesgcm, err := c.newGCM()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCrypto, err)
	}

	// Seal appends the auth tag to the ciphertext; the envelope carries
	// the two parts as separate segments.
	sealed := aesgcm.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-gcmTagSize]
	tag := sealed[len(sealed)-gcmTagSize:]

	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt opens an envelope produced by Encrypt. Malformed envelopes and
// authentication failures both surface as common.ErrCrypto.
func (c *Cipher) Decrypt(envelope string) (string, error) {
	parts := strings.Split(envelope, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: invalid envelope format", common.ErrCrypto)
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: invalid nonce encoding", common.ErrCrypto)
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: invalid tag encoding", common.ErrCrypto)
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: invalid ciphertext encoding", common.ErrCrypto)
	}

	aesgcm, err := c.newGCM()
	if err != nil {
		return "", err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return "", fmt.Errorf("%w: invalid nonce size", common.ErrCrypto)
	}

	plaintext, err := aesgcm.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("%w: decryption failed", common.ErrCrypto)
	}
	return string(plaintext), nil
}

// SecretResult is the outcome of a tolerant decryption attempt.
type SecretResult struct {
	Value string
	OK    bool
}

// Open decrypts envelope without failing: the error path of Decrypt is
// folded into OK so bulk listings can keep going past corrupt records.
// An empty envelope opens to an empty value.
func (c *Cipher) Open(envelope string) SecretResult {
	if envelope == "" {
		return SecretResult{OK: true}
	}
	plaintext, err := c.Decrypt(envelope)
	if err != nil {
		return SecretResult{}
	}
	return SecretResult{Value: plaintext, OK: true}
}
