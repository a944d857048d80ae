package cli

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/BasharSaadi/RA-Query-Processor/batch"
	"github.com/BasharSaadi/RA-Query-Processor/render"
)

// relationInfo summarizes one stored relation.
type relationInfo struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
	Tuples     int      `json:"tuples"`
}

// NewRelationsCommand creates the relations command.
func NewRelationsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relations <input>",
		Short: "List the relations an input defines",
		Long: `Load a document, manifest or data file and list every relation it
defines with its attributes and tuple count. Blocks that fail to parse are
reported on stderr and left out.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := batch.NewSession(nil, rootOpts.newLogger(cmd.ErrOrStderr()))
			if _, err := loadInput(session, args[0]); err != nil {
				return WrapExitError(ExitCommandError, "failed to read input", err)
			}

			var infos []relationInfo
			for _, name := range session.Store.Names() {
				r, _ := session.Store.Get(name)
				infos = append(infos, relationInfo{Name: name, Attributes: r.Attributes, Tuples: r.Len()})
			}

			out := cmd.OutOrStdout()
			if rootOpts.format() == render.FormatJSON {
				if infos == nil {
					infos = []relationInfo{}
				}
				return json.NewEncoder(out).Encode(infos)
			}

			table := tablewriter.NewWriter(out)
			table.SetAutoFormatHeaders(false)
			table.SetHeader([]string{"Relation", "Attributes", "Tuples"})
			for _, info := range infos {
				table.Append([]string{info.Name, strings.Join(info.Attributes, ", "), strconv.Itoa(info.Tuples)})
			}
			table.Render()
			return nil
		},
	}
	return cmd
}
