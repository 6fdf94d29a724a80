package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poihub/poi-manager/internal/config"
)

func TestImportCommand_ParseFlags(t *testing.T) {
	cmd := NewImportCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", "./custom.db", "-verbose", "pois.csv", "pois.json"}))

	assert.Equal(t, "./custom.db", cmd.DatabasePath)
	assert.True(t, cmd.Verbose)
	assert.False(t, cmd.Async)
	assert.Equal(t, []string{"pois.csv", "pois.json"}, cmd.Paths)
}

func TestImportCommand_ParseFlagsDefaults(t *testing.T) {
	cmd := NewImportCommand()
	require.NoError(t, cmd.ParseFlags([]string{"pois.csv"}))

	assert.Equal(t, config.DefaultDatabasePath, cmd.DatabasePath)
	assert.False(t, cmd.Verbose)
}

func TestImportCommand_ParseFlagsRequiresPaths(t *testing.T) {
	cmd := NewImportCommand()
	assert.Error(t, cmd.ParseFlags([]string{"-verbose"}))
}
