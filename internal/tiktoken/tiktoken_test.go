package tiktoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterLen(t *testing.T) {
	c, err := NewCounter(DefaultEncoding)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len(""))
	assert.Greater(t, c.Len("hello world"), 0)
}

func TestPackageLen(t *testing.T) {
	assert.Greater(t, Len("The quick brown fox jumps over the lazy dog."), 5)
}
