package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

var (
	searchCategory string
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search a category",
	Long: `Searches a category for each query and prints the matching values.
Several queries are resolved concurrently and share the result cache.

Examples:
  lookup search 1000
  lookup search --category wbs alpha beta`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "category to search (default from settings)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results per query")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

type searchOutput struct {
	Query string              `json:"query"`
	Items []domain.ResultItem `json:"items"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	category, err := resolveCategory(ctx, searchCategory)
	if err != nil {
		return err
	}

	queries := make([]string, 0, len(args))
	for _, a := range args {
		if q := strings.TrimSpace(a); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	results, err := deps.Lookup.SearchMany(ctx, category, queries)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := make([]searchOutput, len(queries))
	for i, q := range queries {
		items := results[i]
		if searchLimit > 0 && len(items) > searchLimit {
			items = items[:searchLimit]
		}
		out[i] = searchOutput{Query: q, Items: items}
	}

	if searchJSON {
		return outputSearchJSON(cmd, out)
	}
	outputSearchTable(cmd, out)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, results []searchOutput) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []searchOutput) {
	var rows [][]string
	for _, r := range results {
		for _, item := range r.Items {
			rows = append(rows, []string{r.Query, item.Value, item.Label})
		}
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"QUERY", "VALUE", "LABEL"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(rows)
	table.Render()
}
