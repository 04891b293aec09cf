package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	// The digest is plain hex SHA-256; entries hashed by earlier versions of
	// the system must keep verifying.
	assert.Equal(t,
		"2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b",
		HashPassword("secret"))
	assert.Equal(t, HashPassword("secret"), HashPassword("secret"))
	assert.NotEqual(t, HashPassword("secret"), HashPassword("Secret"))
}

func TestVerifyPassword(t *testing.T) {
	digest := HashPassword("secret")
	assert.True(t, VerifyPassword(digest, "secret"))
	assert.False(t, VerifyPassword(digest, "wrong"))
	assert.False(t, VerifyPassword("", "secret"))
}
