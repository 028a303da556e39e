package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ekaya-inc/ekaya-sampler/pkg/adapters/datasource"
)

func newAdaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List the datasource types compiled into this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tNAME\tDESCRIPTION")
			for _, info := range datasource.RegisteredAdapters() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Type, info.DisplayName, info.Description)
			}
			return tw.Flush()
		},
	}
}
