package cmd

import (
	"fmt"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a book from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, acts := newSession()

			id := book.ParseID(args[0])
			if err := acts.DeleteBook(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s", st.State().Err)
			}

			fmt.Printf("Deleted book %s\n", id)
			return nil
		},
	}

	return cmd
}
