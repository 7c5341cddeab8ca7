package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)

	http := mcpServeCmd.Flags().Lookup("http")
	require.NotNil(t, http)
	assert.Equal(t, "false", http.DefValue)
}

func TestMCPServeCmd_RequiresSearch(t *testing.T) {
	restore := setupTestServices()
	defer restore()
	searchService = nil

	_, err := execute(t, "mcp", "serve")

	assert.ErrorIs(t, err, mcp.ErrMissingSearchService)
}
