package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secure123!")
	require.NoError(t, err)
	require.NotEqual(t, "Secure123!", hash)

	assert.True(t, CheckPassword(hash, "Secure123!"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Secure123", true},
		{"abcdefg1", true},
		{"short1", false},
		{"onlyletters", false},
		{"12345678", false},
		{"", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.ok {
			assert.NoError(t, err, "password %q", tt.password)
		} else {
			assert.ErrorIs(t, err, ErrWeakPassword, "password %q", tt.password)
		}
	}
}
