// Package auth implements the two credential mechanisms of the service:
// salted HMAC password digests and signed JWT access tokens.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

const saltSize = 16

// HashPassword derives an opaque digest of password: a fresh random salt is
// used as the HMAC-SHA256 key and the result is encoded as
// "base64(salt):base64(mac)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(password))
	sum := mac.Sum(nil)

	return base64.StdEncoding.EncodeToString(salt) + ":" + base64.StdEncoding.EncodeToString(sum), nil
}

// VerifyPassword reports whether password matches the stored digest.
// A malformed digest (wrong part count, bad base64) fails closed.
func VerifyPassword(password, digest string) bool {
	parts := strings.Split(digest, ":")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, salt)
	mac.Write([]byte(password))

	return subtle.ConstantTimeCompare(mac.Sum(nil), want) == 1
}
