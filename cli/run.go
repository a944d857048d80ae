package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BasharSaadi/RA-Query-Processor/batch"
	"github.com/BasharSaadi/RA-Query-Processor/loader"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Output  string
	Strict  bool
	Sources []string
	Queries []string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [input]",
		Short: "Evaluate every query in a document or manifest",
		Long: `Load the relations defined in the input and evaluate each of its queries in
order, writing one numbered section per query to the output file.

The input is a definition document (default input.txt), a YAML manifest
(.yaml/.yml) or a data file (.csv, .json, .jsonl, .avro, .parquet).
A query that fails is reported in the output and does not stop the run.

Example:
  ra run
  ra run relations.txt -o -
  ra run batch.yaml --format json --strict
  ra run orders.csv -q "select qty>2 (orders)"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "input.txt"
			if len(args) == 1 {
				input = args[0]
			}
			return runBatch(opts, input, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "output.txt", "output file (- for stdout)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit with status 1 when any query fails")
	cmd.Flags().StringSliceVar(&opts.Sources, "load", nil, "extra data files to load as relations")
	cmd.Flags().StringArrayVarP(&opts.Queries, "query", "q", nil, "extra query to evaluate after the input's queries")

	return cmd
}

func runBatch(opts *RunOptions, input string, cmd *cobra.Command) error {
	logger := opts.newLogger(cmd.ErrOrStderr())
	session := batch.NewSession(nil, logger)
	logger.Debug("run started", "run", session.ID, "input", input)

	queries, err := loadInput(session, input)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	for _, src := range opts.Sources {
		if err := session.LoadFile("", src); err != nil {
			return WrapExitError(ExitCommandError, "failed to load source", err)
		}
	}
	queries = append(queries, opts.Queries...)

	results := session.Run(queries)

	if err := writeOutput(opts, cmd, results); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	if failed := batch.Failed(results); failed > 0 && opts.Strict {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d queries failed", failed, len(results)))
	}
	return nil
}

// loadInput fills the session from input and returns the queries it holds.
func loadInput(session *batch.Session, input string) ([]string, error) {
	switch ext := strings.ToLower(filepath.Ext(input)); {
	case ext == ".yaml" || ext == ".yml":
		m, err := batch.LoadManifest(input)
		if err != nil {
			return nil, err
		}
		return session.Apply(m)
	case loader.IsSupported(input):
		return nil, session.LoadFile("", input)
	default:
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, err
		}
		doc := string(data)
		session.LoadDocument(doc)
		return batch.ExtractQueries(doc), nil
	}
}

func writeOutput(opts *RunOptions, cmd *cobra.Command, results []batch.Result) error {
	if opts.Output == "-" {
		return writeResults(cmd.OutOrStdout(), opts.format(), results)
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return err
	}
	if err := writeResults(f, opts.format(), results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Query executed. Results written to %s\n", opts.Output)
	return nil
}

