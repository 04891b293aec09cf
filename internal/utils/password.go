package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex SHA-256 digest of a password.
//
// The digest is deliberately unsalted to stay byte-compatible with
// credential entries written by earlier versions of this system. A salted,
// adaptive hash (bcrypt/argon2) is the right choice for anything that does
// not need that compatibility; switching requires re-hashing every stored
// credential on next login.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares a stored digest with the digest of a candidate
// password in constant time.
func VerifyPassword(digest, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(HashPassword(plain))) == 1
}
