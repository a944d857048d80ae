package cli

import (
	"github.com/spf13/cobra"

	"github.com/BasharSaadi/RA-Query-Processor/batch"
	"github.com/BasharSaadi/RA-Query-Processor/engine"
	"github.com/BasharSaadi/RA-Query-Processor/render"
)

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <input> <query>",
		Short: "Evaluate one query against the relations of an input",
		Long: `Load the relations of a document, manifest or data file and print the
result of a single query. Queries inside the input are not run.

Example:
  ra query input.txt "project name (select salary>85 (Employees))"
  ra query people.csv "select age>30 (people)" --format table`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := batch.NewSession(nil, rootOpts.newLogger(cmd.ErrOrStderr()))
			if _, err := loadInput(session, args[0]); err != nil {
				return WrapExitError(ExitCommandError, "failed to read input", err)
			}

			result, err := engine.Run(args[1], session.Store)
			if err != nil {
				return WrapExitError(ExitFailure, "query failed", err)
			}
			return render.Write(cmd.OutOrStdout(), rootOpts.format(), "Result", result)
		},
	}
	return cmd
}
