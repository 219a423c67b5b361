package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "regular password", password: "motdepasse123"},
		{name: "special chars", password: "p@ssw0rd!é#$%"},
		{name: "short password", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := GetHash(tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NoError(t, CompareHash(hash, tt.password))
		})
	}
}

func TestCompareHash(t *testing.T) {
	hash, err := GetHash("correct_password")
	require.NoError(t, err)

	assert.NoError(t, CompareHash(hash, "correct_password"))
	assert.ErrorIs(t, CompareHash(hash, "wrong_password"), ErrMismatch)
	assert.ErrorIs(t, CompareHash(hash, ""), ErrMismatch)

	err = CompareHash("not-a-bcrypt-hash", "correct_password")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}
