package ptrutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPtr(t *testing.T) {
	value := 5
	ptr := ToPtr(value)

	assert.Equal(t, 5, *ptr)
	assert.NotSame(t, &value, ptr)
}
