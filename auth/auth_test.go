package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("correct-horse-battery")
	req.NoError(err)
	req.Contains(hash, "$argon2id$")

	ok, err := ComparePassword("correct-horse-battery", hash)
	req.NoError(err)
	req.True(ok)

	ok, err = ComparePassword("wrong-password-entirely", hash)
	req.NoError(err)
	req.False(ok)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	req := require.New(t)

	_, err := ComparePassword("whatever", "not-a-hash")
	req.Error(err)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("unit-test-secret-key", time.Hour)

	token, err := manager.Generate("ops")
	req.NoError(err)

	claims, err := manager.Validate(token)
	req.NoError(err)
	req.Equal("ops", claims.Operator)
	req.Equal("scam-radar", claims.Issuer)
}

func TestTokenManager_Validate_Failures(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("unit-test-secret-key", time.Hour)

	t.Run("Garbage token", func(t *testing.T) {
		_, err := manager.Validate("garbage.token.value")
		req.Error(err)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("a-different-secret", time.Hour)
		token, err := other.Generate("ops")
		req.NoError(err)

		_, err = manager.Validate(token)
		req.Error(err)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := NewTokenManager("unit-test-secret-key", -time.Minute)
		token, err := expired.Generate("ops")
		req.NoError(err)

		_, err = manager.Validate(token)
		req.Error(err)
	})
}

func TestValidateLogin(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateLogin(LoginRequest{Operator: "ops", Password: "long-enough-password"}))
	req.Error(ValidateLogin(LoginRequest{Operator: "", Password: "long-enough-password"}))
	req.Error(ValidateLogin(LoginRequest{Operator: "ops", Password: "short"}))
}
