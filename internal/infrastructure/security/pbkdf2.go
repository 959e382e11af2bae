package security

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/inkpress/identity-service/internal/domain"
)

// Stored credential format: hex(salt) + ":" + hex(derivedKey).
// The key is derived from the hex *string* of the salt, not the raw bytes;
// hashes written by earlier deployments depend on this and must stay
// verifiable.
const (
	saltBytes  = 16
	iterations = 100_000
	keyBytes   = 64
)

// PBKDF2Hasher derives storable credentials with PBKDF2-SHA512. The salt is
// re-randomised on every call, so hashing the same password twice never yields
// the same output.
type PBKDF2Hasher struct{}

func NewPBKDF2Hasher() *PBKDF2Hasher {
	return &PBKDF2Hasher{}
}

func (h *PBKDF2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", domain.ErrRandomFailed(err)
	}

	hexSalt := hex.EncodeToString(salt)
	key := pbkdf2.Key([]byte(password), []byte(hexSalt), iterations, keyBytes, sha512.New)
	return hexSalt + ":" + hex.EncodeToString(key), nil
}

// Verify recomputes the derivation with the stored salt and compares in
// constant time. Malformed stored values are treated exactly like a wrong
// password: callers must not be able to tell the two apart.
func (h *PBKDF2Hasher) Verify(password, stored string) bool {
	hexSalt, hexKey, ok := strings.Cut(stored, ":")
	if !ok || hexSalt == "" || hexKey == "" {
		return false
	}

	want, err := hex.DecodeString(hexKey)
	if err != nil || len(want) != keyBytes {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(hexSalt), iterations, keyBytes, sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
