package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/joshuapare/memlab/cmd/memlab/tui"
	"github.com/joshuapare/memlab/internal/logger"
	"github.com/joshuapare/memlab/lab"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newTUICmd())
}

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the full-screen allocation browser",
		Long: `The tui command shows the catalog and the live allocations side by side.

  enter   create the selected catalog entry
  x       remove the selected live allocation
  :       type a selection as in the run command (n or -n)
  y       copy the process ID for an external monitor
  ?       key help
  q       quit and release every allocation

Example:
  memlab tui
  memlab tui --preload "Anonymous mapped touched 100M"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}
			s := lab.NewSession(c)
			defer func() {
				if err := s.Close(); err != nil {
					printError("teardown: %v\n", err)
				}
			}()

			if err := preloadSession(s, preload); err != nil {
				return err
			}

			final, err := tea.NewProgram(tui.NewModel(s), tea.WithAltScreen()).Run()
			if err != nil {
				return errors.Wrap(err, "tui")
			}
			if m, ok := final.(tui.Model); ok && m.Err() != nil {
				logger.Error("release failed, stopping", "error", m.Err())
				return m.Err()
			}
			return nil
		},
	}
	cmd.Flags().
		StringArrayVar(&preload, "preload", nil, "Create the named catalog entry before the browser starts (repeatable)")
	return cmd
}
