package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joshuapare/memlab/internal/logger"
	"github.com/joshuapare/memlab/lab"
	"github.com/joshuapare/memlab/lab/selection"
	"github.com/spf13/cobra"
)

// clearScreen is the ANSI erase-display sequence.
const clearScreen = "\x1b[2J\x1b[H"

var (
	noClear bool
	preload []string
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the line-based allocation menu",
		Long: `The run command shows the catalog and the live allocations, then reads one
selection per line:

  n     create catalog entry n
  -n    remove live allocation n (higher indices shift down by one)
  quit  exit (end of input also exits; a blank line is an invalid number)

Example:
  memlab run
  memlab run --preload "Heap non-zero 100M" --preload "Stack allocation 10M"`,
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
			return runLoop(cmd.InOrStdin(), cmd.OutOrStdout(), s, !noClear)
		},
	}
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Do not clear the screen between menus")
	cmd.Flags().
		StringArrayVar(&preload, "preload", nil, "Create the named catalog entry before the menu starts (repeatable)")
	return cmd
}

// preloadSession creates catalog entries by display name.
func preloadSession(s *lab.Session, names []string) error {
	for _, name := range names {
		idx, ok := s.Catalog().Lookup(name)
		if !ok {
			return errors.Newf("--preload: no catalog entry named %q", name)
		}
		if _, err := s.Create(idx); err != nil {
			return errors.Wrapf(err, "--preload %q", name)
		}
		printVerbose("Preloaded %s\n", name)
	}
	return nil
}

// runLoop renders the menu and applies one selection per input line until
// quit or end of input. Only release failures end it early.
func runLoop(in io.Reader, out io.Writer, s *lab.Session, clearEach bool) error {
	r := bufio.NewReader(in)
	var lastErr error

	for {
		renderMenu(out, s, clearEach, lastErr)
		lastErr = nil

		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return errors.Wrap(readErr, "read selection")
		}
		if readErr != nil && line == "" {
			fmt.Fprintln(out)
			return nil
		}

		choice, err := s.Apply(line)
		switch {
		case lab.IsFatal(err):
			logger.Error("release failed, stopping", "error", err)
			return err
		case err != nil:
			lastErr = err
		case choice.Action == selection.Quit:
			return nil
		}
	}
}

func renderMenu(out io.Writer, s *lab.Session, clearEach bool, lastErr error) {
	var b strings.Builder
	if clearEach {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "memlab pid %d\n", os.Getpid())

	if allocs := s.Allocations(); len(allocs) > 0 {
		b.WriteString("\nCurrent allocations (removing one shifts later indices down):\n")
		for _, a := range allocs {
			fmt.Fprintf(&b, "  %2d. %s\n", a.Index, a.Name)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Create new allocation (1-%d) or remove current (-idx):\n\n", s.Catalog().Len())
	for _, l := range s.Catalog().List() {
		fmt.Fprintf(&b, "   %2d. %s\n", l.Index, l.Name)
	}
	b.WriteString("\n")

	if lastErr != nil {
		fmt.Fprintf(&b, "  %s\n", selection.Message(lastErr))
	}
	b.WriteString("Choose allocator: ")
	io.WriteString(out, b.String())
}
