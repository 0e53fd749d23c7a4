package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/acorntide/shelfd/internal/tags"
	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag with its book count",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, acts := newSession()

			if err := acts.FetchBooks(cmd.Context()); err != nil {
				return err
			}

			index := tags.Index(st.State().Books)
			if len(index) == 0 {
				fmt.Println("No tags in the collection.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TAG\tBOOKS")
			for _, entry := range index {
				fmt.Fprintf(w, "%s\t%d\n", entry.Tag, entry.Count)
			}
			return w.Flush()
		},
	}

	return cmd
}
