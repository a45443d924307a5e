package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joshuapare/memlab/internal/logger"
	"github.com/joshuapare/memlab/lab/catalog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	debugLog   bool
	logDir     string
	configPath string
	tempDir    string
	sentinel   int
)

var rootCmd = &cobra.Command{
	Use:   "memlab",
	Short: "Create and destroy allocations for external memory monitors",
	Long: `memlab is an interactive memory-allocation laboratory. Each catalog entry
provisions memory a different way (stack-resident, heap zeroed, heap filled,
heap uninitialized, file-backed mapped, anonymous mapped, anonymous mapped and
touched) so tools such as top, smem or /proc/<pid>/smaps can observe how the
process footprint responds. memlab does not measure memory itself.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := logger.Init(logger.Options{
			Enabled: debugLog,
			LogDir:  logDir,
			Level:   slog.LevelDebug,
			Command: cmd.CommandPath(),
		})
		if err != nil {
			printError("failed to init logging: %v\n", err)
			return nil
		}
		if path != "" {
			printVerbose("Logging to %s\n", path)
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&debugLog, "debug", "d", false, "Write a JSON debug log")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Debug log directory (default ~/.memlab/logs)")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "YAML catalog table (default: every strategy at 1M, 10M, 100M)")
	rootCmd.PersistentFlags().StringVar(&tempDir, "temp-dir", "", "Directory for file-mapped backing files")
	rootCmd.PersistentFlags().IntVar(&sentinel, "sentinel", 0, "Nonzero fill byte (1-255) used to commit pages")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadCatalog builds the catalog from the default table or --config, then
// applies --temp-dir and --sentinel.
func loadCatalog() (*catalog.Catalog, error) {
	table := catalog.DefaultTable()
	if configPath != "" {
		printVerbose("Loading catalog table: %s\n", configPath)
		t, err := catalog.LoadTable(configPath)
		if err != nil {
			return nil, err
		}
		table = t
	}
	if tempDir != "" {
		table.TempDir = tempDir
	}
	if sentinel != 0 {
		if sentinel < 1 || sentinel > 255 {
			return nil, errors.Newf("--sentinel must be in [1, 255], got %d", sentinel)
		}
		table.Sentinel = byte(sentinel)
	}
	return catalog.New(table)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
