package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ncobase/pagelink/client"
	"github.com/ncobase/pagelink/paging"
	"github.com/spf13/cobra"
)

func newLinksCommand(rt *runtime) *cobra.Command {
	var params map[string]string

	cmd := &cobra.Command{
		Use:   "links <path>",
		Short: "Print the pagination links of the first page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.setup(cmd); err != nil {
				return err
			}
			defer rt.close()

			page, err := client.List[json.RawMessage](cmd.Context(), rt.client, args[0], params)
			if err != nil {
				return rt.report(err)
			}
			out := cmd.OutOrStdout()
			for _, rel := range paging.Relations() {
				if u, ok := page.Link(rel); ok {
					fmt.Fprintf(out, "%s\t%s\n", rel, u)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "extra request parameter key=value")
	return cmd
}
