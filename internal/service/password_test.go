package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restorePassword() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restorePassword)
	pwd := "Secret123"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))
	require.Error(t, ComparePassword(hash, "wrong"))

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err = HashPassword(pwd)
	require.Error(t, err)
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("Secret123"))
	require.ErrorContains(t, ValidatePassword("Sh0rt"), "at least 8 characters")
	require.ErrorContains(t, ValidatePassword("secret123"), "uppercase")
	require.ErrorContains(t, ValidatePassword("SECRET123"), "lowercase")
	require.ErrorContains(t, ValidatePassword("SecretPwd"), "digit")
}
