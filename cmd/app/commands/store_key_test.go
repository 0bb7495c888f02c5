package commands

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGenerateStoreKey(t *testing.T) {
	var output bytes.Buffer
	io := IOTuple{Reader: strings.NewReader(""), Writer: &output}

	require.NoError(t, RunGenerateStoreKey(io))

	line := strings.TrimSpace(output.String())
	require.True(t, strings.HasPrefix(line, `STORE_KEY="`))
	require.True(t, strings.HasSuffix(line, `"`))

	encoded := strings.TrimSuffix(strings.TrimPrefix(line, `STORE_KEY="`), `"`)
	key, err := hex.DecodeString(encoded)
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestRunGenerateStoreKeyUnique(t *testing.T) {
	var first, second bytes.Buffer

	require.NoError(t, RunGenerateStoreKey(IOTuple{Writer: &first}))
	require.NoError(t, RunGenerateStoreKey(IOTuple{Writer: &second}))

	assert.NotEqual(t, first.String(), second.String())
}
