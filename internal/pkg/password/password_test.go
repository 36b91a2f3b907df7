package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	assert.True(t, Verify("password123", hash))
	assert.False(t, Verify("wrong", hash))
	assert.False(t, Verify("password123", "not-a-hash"))
}
