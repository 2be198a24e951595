package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBase62Encode(t *testing.T) {
	assert.Equal(t, "0000", base62Encode(0, 4))
	assert.Equal(t, "000z", base62Encode(61, 4))
	assert.Equal(t, "0010", base62Encode(62, 4))
	assert.Len(t, base62Encode(^uint64(0), InstanceIDLength), InstanceIDLength)
}

func TestInstanceID(t *testing.T) {
	id := InstanceID()
	assert.True(t, ValidateInstanceID(id), id)
	assert.Equal(t, id, InstanceID())

	assert.True(t, ValidateInstanceID(NewInstanceID()))
	assert.False(t, ValidateInstanceID("short"))
	assert.False(t, ValidateInstanceID("0123456789abcde-"))
}
