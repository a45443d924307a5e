package main

import (
	"fmt"
	"io"

	"github.com/joshuapare/memlab/internal/sizefmt"
	"github.com/joshuapare/memlab/lab/catalog"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCatalogCmd())
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the allocations the catalog offers",
		Long: `The catalog command prints every allocation entry with its 1-based index,
strategy and size. The same indices are accepted by the run and tui commands.

Example:
  memlab catalog
  memlab catalog --json
  memlab catalog --config table.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}
			return runCatalog(cmd.OutOrStdout(), c)
		},
	}
	return cmd
}

func runCatalog(out io.Writer, c *catalog.Catalog) error {
	if jsonOut {
		w := jwriter.NewWriter()
		c.BuildJSON(&w)
		if err := w.Error(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "%s\n", w.Bytes())
		return err
	}

	if quiet {
		return nil
	}
	for _, l := range c.List() {
		d, err := c.Get(l.Index)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %2d. %-32s %-13s %s\n",
			l.Index, d.Name, d.Strategy.String(), sizefmt.Grouped(d.Size))
	}
	fmt.Fprintf(out, "\nSentinel: 0x%02x\n", c.Sentinel())
	if dir := c.TempDir(); dir != "" {
		fmt.Fprintf(out, "Temp dir: %s\n", dir)
	}
	return nil
}
