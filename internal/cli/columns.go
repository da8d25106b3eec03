package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterspec/pkg/plotspec"
)

// columnDescriptions documents each required specification column.
var columnDescriptions = map[string]string{
	plotspec.ColumnKey:           "entity key, matched against the first column of fileA and fileB",
	plotspec.ColumnPlot:          "1 to draw the entity, anything else hides it",
	plotspec.ColumnColor:         "color name, hex code, tab:<name>, C<n> or a gray level in [0, 1]",
	plotspec.ColumnMarker:        "marker code such as o, s, ^, D or . (0 means .)",
	plotspec.ColumnSize:          "marker area in points squared",
	plotspec.ColumnAlpha:         "opacity in [0, 1]",
	plotspec.ColumnLayer:         "integer drawing layer, higher is on top; blank means bottom",
	plotspec.ColumnLabel:         "1 to draw the entity key next to the point",
	plotspec.ColumnLabelFontSize: "label text size in points",
	plotspec.ColumnLegendGroup:   "legend entry name; blank keeps the entity out of the legend",
}

// columnsCommand creates the command that documents the specification format.
func (c *CLI) columnsCommand() *cobra.Command {
	var header bool

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "List the columns a specification file must have",
		Long: `List the columns a specification file must have.

With --header, print a tab separated header line that can start a new
specification file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if header {
				_, err := fmt.Fprintln(w, strings.Join(plotspec.Columns, "\t"))
				return err
			}
			fmt.Fprintln(w, StyleTitle.Render("Specification columns"))
			for _, name := range plotspec.Columns {
				fmt.Fprintln(w, formatKeyValue(name, columnDescriptions[name]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&header, "header", false, "print a tab separated header line")
	return cmd
}
