package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken_FixedLengthAndUnique(t *testing.T) {
	t.Parallel()

	a, err := NewResetToken()
	require.NoError(t, err)
	b, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, a, ResetTokenLength)
	assert.Len(t, b, ResetTokenLength)
	assert.NotEqual(t, a, b)
}

func TestCheckResetToken_ShapeOnly(t *testing.T) {
	t.Parallel()

	tok, err := NewResetToken()
	require.NoError(t, err)
	assert.True(t, CheckResetToken(tok))

	assert.False(t, CheckResetToken(""))
	assert.False(t, CheckResetToken(tok[:ResetTokenLength-1]))
	assert.False(t, CheckResetToken(tok+"0"))

	// The check is shape-only: any string of the right length passes,
	// issued or not.
	fabricated := make([]byte, ResetTokenLength)
	for i := range fabricated {
		fabricated[i] = 'a'
	}
	assert.True(t, CheckResetToken(string(fabricated)))
}
