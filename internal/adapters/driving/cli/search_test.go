package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query...]", searchCmd.Use)
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	_, err := executeCommand(t, newTestRuntime(t), "search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestSearchCmd_HasFlags(t *testing.T) {
	limit := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "n", limit.Shorthand)
	assert.Equal(t, "10", limit.DefValue)

	category := searchCmd.Flags().Lookup("category")
	require.NotNil(t, category)
	assert.Equal(t, "c", category.Shorthand)

	assert.NotNil(t, searchCmd.Flags().Lookup("json"))
}

func TestSearchCmd_Table(t *testing.T) {
	out, err := executeCommand(t, newTestRuntime(t), "search", "1000")

	require.NoError(t, err)
	assert.Contains(t, out, "QUERY")
	assert.Contains(t, out, "1000 - IT Department")
	assert.NotContains(t, out, "Finance")
}

func TestSearchCmd_Category(t *testing.T) {
	out, err := executeCommand(t, newTestRuntime(t), "search", "--category", "wbs", "alpha")

	require.NoError(t, err)
	assert.Contains(t, out, "WBS001 - Project Alpha")
}

func TestSearchCmd_NoResults(t *testing.T) {
	out, err := executeCommand(t, newTestRuntime(t), "search", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSONWithLimit(t *testing.T) {
	out, err := executeCommand(t, newTestRuntime(t), "search", "--json", "-n", "2", "000", "2000")
	require.NoError(t, err)

	var results []searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "000", results[0].Query)
	assert.Len(t, results[0].Items, 2)
	assert.Equal(t, "2000", results[1].Query)
	assert.Equal(t, []domain.ResultItem{{Value: "2000", Label: "2000 - Finance Department"}}, results[1].Items)
}

func TestSearchCmd_UnknownCategory(t *testing.T) {
	_, err := executeCommand(t, newTestRuntime(t), "search", "-c", "nope", "1000")

	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestSearchCmd_BlankQuery(t *testing.T) {
	_, err := executeCommand(t, newTestRuntime(t), "search", "  ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchCmd_SourceFailure(t *testing.T) {
	_, err := executeCommand(t, newTestRuntimeWith(t, unavailableSource{}), "search", "1000")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}
