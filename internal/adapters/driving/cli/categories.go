package cli

import (
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List searchable categories",
	Long: `Lists the categories offered by the search backend. When the backend
cannot be reached the built-in cost center and WBS categories are shown.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "output categories as JSON")
	rootCmd.AddCommand(categoriesCmd)
}

type categoriesOutput struct {
	Categories []domain.Category `json:"categories"`
	Default    string            `json:"default"`
	Fallback   bool              `json:"fallback"`
}

func runCategories(cmd *cobra.Command, _ []string) error {
	catalog := deps.Categories.Load(cmd.Context())

	if categoriesJSON {
		data, err := json.MarshalIndent(categoriesOutput{
			Categories: catalog.Categories,
			Default:    catalog.Default(),
			Fallback:   catalog.Fallback,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal categories: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := cmd.OutOrStdout()
	if catalog.Fallback {
		fmt.Fprintln(w, "Backend unavailable, showing built-in categories.")
		fmt.Fprintln(w)
	}

	def := catalog.Default()
	rows := make([][]string, 0, len(catalog.Categories))
	for _, c := range catalog.Categories {
		marker := ""
		if c.ID == def {
			marker = "*"
		}
		rows = append(rows, []string{c.ID, c.Icon + " " + c.Name, c.Description, marker})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "NAME", "DESCRIPTION", "DEFAULT"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(rows)
	table.Render()
	return nil
}
