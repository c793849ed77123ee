package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgvSubstitutesPortAndHost(t *testing.T) {
	argv, err := Argv([]string{"uvicorn", "app.main:app", "--host", "{host}", "--port", "{port}"}, "9000")
	require.NoError(t, err)
	assert.Equal(t, []string{"uvicorn", "app.main:app", "--host", "0.0.0.0", "--port", "9000"}, argv)
}

func TestArgvLeavesPlainArgsAlone(t *testing.T) {
	argv, err := Argv([]string{"./server"}, "8080")
	require.NoError(t, err)
	assert.Equal(t, []string{"./server"}, argv)
}

func TestArgvPassesInvalidPortThrough(t *testing.T) {
	// Port values are opaque here; the server reports unbindable ones.
	argv, err := Argv([]string{"./server", "--port", "{port}"}, "not-a-port")
	require.NoError(t, err)
	assert.Equal(t, "not-a-port", argv[2])
}

func TestArgvEmptyCommand(t *testing.T) {
	_, err := Argv(nil, "8080")
	assert.ErrorIs(t, err, ErrNoCommand)
}
