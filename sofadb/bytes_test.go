package sofadb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	var b Bytes
	require.NoError(t, b.Set("500MB"))
	assert.EqualValues(t, 500000000, b.Int64())
	assert.EqualValues(t, "500 MB", b.String())
	assert.EqualValues(t, "bytes", b.Type())

	require.NoError(t, b.Set("1KiB"))
	assert.EqualValues(t, 1024, b.Int64())

	assert.Error(t, b.Set("lots"))
}
