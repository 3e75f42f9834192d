package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

// maxQueriesPerCall bounds the batch size accepted by the search tool.
const maxQueriesPerCall = 20

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Category string   `json:"category,omitempty" jsonschema:"category id such as cc or wbs (default: the catalog default)"`
	Query    string   `json:"query,omitempty" jsonschema:"text to look up"`
	Queries  []string `json:"queries,omitempty" jsonschema:"several texts to look up in one call"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of items per query (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Category string        `json:"category"`
	Results  []QueryResult `json:"results"`
}

// QueryResult holds the items found for one query.
type QueryResult struct {
	Query string              `json:"query"`
	Items []domain.ResultItem `json:"items"`
	Count int                 `json:"count"`
}

// CategoriesInput is the (empty) input schema for the categories tool.
type CategoriesInput struct{}

// CategoriesOutput is the output schema for the categories tool.
type CategoriesOutput struct {
	Categories []domain.Category `json:"categories"`
	Default    string            `json:"default"`
	Fallback   bool              `json:"fallback"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Look up values (cost centers, WBS elements, ...) by code or label within a category",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "categories",
		Description: "List the searchable categories and the default one",
	}, s.handleCategories)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	queries := collectQueries(input)
	if len(queries) == 0 {
		return nil, SearchOutput{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if len(queries) > maxQueriesPerCall {
		return nil, SearchOutput{}, fmt.Errorf("%w: at most %d queries per call", domain.ErrInvalidInput, maxQueriesPerCall)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = s.ports.Categories.Load(ctx).Default()
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	lists, err := s.ports.Lookup.SearchMany(ctx, category, queries)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Category: category,
		Results:  make([]QueryResult, len(queries)),
	}
	for i, q := range queries {
		items := lists[i]
		if len(items) > limit {
			items = items[:limit]
		}
		if items == nil {
			items = []domain.ResultItem{}
		}
		output.Results[i] = QueryResult{Query: q, Items: items, Count: len(items)}
	}

	return nil, output, nil
}

// handleCategories handles the categories tool invocation.
func (s *Server) handleCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ CategoriesInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	catalog := s.ports.Categories.Load(ctx)
	categories := catalog.Categories
	if categories == nil {
		categories = []domain.Category{}
	}
	return nil, CategoriesOutput{
		Categories: categories,
		Default:    catalog.Default(),
		Fallback:   catalog.Fallback,
	}, nil
}

// collectQueries merges Query and Queries, dropping blanks.
func collectQueries(input SearchInput) []string {
	var out []string
	if q := strings.TrimSpace(input.Query); q != "" {
		out = append(out, q)
	}
	for _, q := range input.Queries {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}
