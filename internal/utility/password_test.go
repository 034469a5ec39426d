package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("matkhau123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Hash không được chứa plaintext
	assert.NotContains(t, hash, "matkhau123")

	assert.True(t, VerifyPassword("matkhau123", hash))
	assert.False(t, VerifyPassword("saimatkhau", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPasswordProducesDifferentHashes(t *testing.T) {
	// bcrypt có salt ngẫu nhiên, hai lần băm cùng mật khẩu phải khác nhau
	first, err := HashPassword("matkhau123")
	require.NoError(t, err)
	second, err := HashPassword("matkhau123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("matkhau123", first))
	assert.True(t, VerifyPassword("matkhau123", second))
}
