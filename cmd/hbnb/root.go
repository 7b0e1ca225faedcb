package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/hbnb"
	"github.com/aretw0/hbnb/internal/console"
)

var (
	verbose  bool
	filePath string
	strict   bool
	readOnly bool
)

// rootCmd runs the interactive console when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hbnb",
	Short: "A command interpreter for the HBnB record storage",
	Long: `hbnb manages BaseModel, User, State, City, Amenity, Place and Review records
persisted in a single JSON (or YAML) file.

Without a subcommand it reads console commands from stdin, one per line.`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	Run: func(cmd *cobra.Command, args []string) {
		con := newConsole(openStorage())
		if term.IsTerminal(int(os.Stdin.Fd())) {
			con.Prompt = console.DefaultPrompt
		}
		if err := con.Run(os.Stdin); err != nil {
			fatal("Error reading commands", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "Backing file (default $HBNB_FILE or file.json)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", true, "Keep JSON numbers exact when loading")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Refuse to write the backing file")
}

// openStorage loads the backing file, exiting on any invalid entry.
func openStorage() *hbnb.Storage {
	s, err := hbnb.Open(filePath,
		hbnb.WithLogger(slog.Default()),
		hbnb.WithStrict(strict),
		hbnb.WithReadOnly(readOnly),
	)
	if err != nil {
		fatal("Error loading storage", err)
	}
	return s
}

func newConsole(s *hbnb.Storage) *console.Console {
	return console.New(s, os.Stdout, os.Stderr, slog.Default())
}
