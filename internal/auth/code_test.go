package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyCode(t *testing.T) {
	hash, err := HashCode("some-confirmation-code")

	assert.NoError(t, err)
	assert.NotEqual(t, "some-confirmation-code", hash)
	assert.NoError(t, VerifyCode(hash, "some-confirmation-code"))
	assert.Error(t, VerifyCode(hash, "wrong-code"))
}

func TestHashCode_UniquePerCall(t *testing.T) {
	first, err := HashCode("same-code")
	assert.NoError(t, err)
	second, err := HashCode("same-code")
	assert.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, first, second)
}

func TestDummyCompareHash_NeverMatches(t *testing.T) {
	assert.Error(t, VerifyCode(DummyCompareHash, "anything"))
	assert.Error(t, VerifyCode(DummyCompareHash, ""))
}
