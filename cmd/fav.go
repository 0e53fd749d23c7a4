package cmd

import (
	"fmt"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/spf13/cobra"
)

func newFavCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav <id>",
		Short: "Toggle a book's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, acts := newSession()

			if err := acts.FetchBooks(cmd.Context()); err != nil {
				return err
			}

			id := book.ParseID(args[0])
			if err := acts.ToggleFavorite(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s", st.State().Err)
			}

			b, _ := st.FindBook(id)
			if b.Favorite {
				fmt.Printf("%q is now a favorite\n", b.Title)
			} else {
				fmt.Printf("%q is no longer a favorite\n", b.Title)
			}
			return nil
		},
	}

	return cmd
}
