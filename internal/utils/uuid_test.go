package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUUID(t *testing.T) {
	a := GenerateUUID()
	b := GenerateUUID()

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
	assert.True(t, IsValidUUID(a))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0b4f3c1e-9d8a-4a57-8a39-7d0f9e1f2a11"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}
