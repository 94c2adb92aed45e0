package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_UsesConfiguredCost(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("pw123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, Cost, cost)
	assert.True(t, CheckPassword(h, "pw123"))
}

func TestBcrypt_SaltedHashesAllVerify(t *testing.T) {
	t.Parallel()

	b := Bcrypt{Cost: bcrypt.MinCost}
	first, err := b.HashPassword("Secret123")
	require.NoError(t, err)
	second, err := b.HashPassword("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, b.CheckPassword(first, "Secret123"))
	assert.True(t, b.CheckPassword(second, "Secret123"))
}

func TestBcrypt_CheckPassword(t *testing.T) {
	t.Parallel()

	b := Bcrypt{Cost: bcrypt.MinCost}
	stored, err := b.HashPassword("correct")
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{name: "match", hash: stored, password: "correct", want: true},
		{name: "wrong password", hash: stored, password: "incorrect", want: false},
		{name: "empty password", hash: stored, password: "", want: false},
		{name: "malformed hash", hash: "not-a-bcrypt-hash", password: "correct", want: false},
		{name: "empty hash", hash: "", password: "correct", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, b.CheckPassword(tt.hash, tt.password))
		})
	}
}

func TestBcrypt_PasswordTooLong(t *testing.T) {
	t.Parallel()

	b := Bcrypt{Cost: bcrypt.MinCost}
	_, err := b.HashPassword(strings.Repeat("a", 73))
	require.Error(t, err)
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}
