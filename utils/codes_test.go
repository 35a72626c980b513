package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingCode(t *testing.T) {
	now := time.Date(2025, 6, 7, 15, 30, 0, 0, time.UTC)

	code, err := GenerateBookingCode(now)
	require.NoError(t, err)
	assert.Len(t, code, 16)
	assert.Equal(t, "BK20250607", code[:10])
	assert.True(t, IsValidBookingCodeFormat(code))

	other, err := GenerateBookingCode(now)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestIsValidBookingCodeFormat(t *testing.T) {
	assert.True(t, IsValidBookingCodeFormat("BK20250607X4K9QZ"))
	assert.True(t, IsValidBookingCodeFormat("  BK20250607X4K9QZ  "))
	assert.False(t, IsValidBookingCodeFormat("BK2025067X4K9QZ"))
	assert.False(t, IsValidBookingCodeFormat("XX20250607X4K9QZ"))
	assert.False(t, IsValidBookingCodeFormat("BK20250607x4k9qz"))
	assert.False(t, IsValidBookingCodeFormat(""))
}
