package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/img2color/internal/naming"
)

func newTaxonomiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "taxonomies",
		Aliases: []string{"tax"},
		Short:   "List the available colour naming systems",
		Long: `List every registered colour naming system with its shape, size and
categories. Naming systems that fail to load are listed with the reason.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.registry()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTaxonomies(registry))
			return nil
		},
	}
}

func renderTaxonomies(registry *naming.Registry) string {
	table := NewTable([]string{"ID", "Name", "Shape", "Entries", "Categories"})
	table.SetColumnMaxWidth(4, 60)

	for _, id := range registry.IDs() {
		tax, err := registry.Taxonomy(id)
		if err != nil {
			table.AddRow([]string{string(id), "", "unavailable", "", err.Error()})
			continue
		}
		table.AddRow([]string{
			string(tax.ID),
			tax.Name,
			tax.Shape.String(),
			strconv.Itoa(tax.Len()),
			strings.Join(tax.Categories(), ", "),
		})
	}
	return table.Render()
}
