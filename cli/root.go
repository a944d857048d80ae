package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/BasharSaadi/RA-Query-Processor/render"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "table" | "json"
}

// NewRootCommand creates the root command for the ra CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ra",
		Short: "ra - relational algebra query processor",
		Long: `Evaluate relational algebra queries over relations defined in a text document.

A document holds definition blocks such as

  Employees (name, dept, salary) = {
    "Alice", "Eng", 100
  }

followed by queries (select, project, join, union, intersection, difference),
one per line, optionally prefixed with "Query:".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, render.Formats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", render.FormatText, "output format (text|table|json)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewRelationsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range render.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger returns a text logger on w at Info, or Debug when verbose.
func (o *RootOptions) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) format() string {
	if o.Format == "" {
		return render.FormatText
	}
	return o.Format
}
