package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCategoriesResource(t *testing.T) {
	server, err := NewServer(validPorts())
	require.NoError(t, err)

	result, err := server.handleCategoriesResource(context.Background(), makeReadResourceRequest("lookup://categories"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	content := result.Contents[0]
	assert.Equal(t, "lookup://categories", content.URI)
	assert.Equal(t, "application/json", content.MIMEType)

	var catalog domain.Catalog
	require.NoError(t, json.Unmarshal([]byte(content.Text), &catalog))
	assert.Equal(t, "cc", catalog.DefaultID)
	require.Len(t, catalog.Categories, 2)
	assert.Equal(t, "Cost Centers", catalog.Categories[0].Name)
}
