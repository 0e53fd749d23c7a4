package cmd

import (
	"fmt"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var title string
	var authors []string
	var publisher string
	var description string
	var bookTags []string
	var unread bool
	var read bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit fields of an existing book",
		Args:  cobra.ExactArgs(1),
		Example: `  # Retitle and retag book 12
  shelfd edit 12 --title "Dune (Ace edition)" --tag sci-fi --tag classics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, acts := newSession()

			if err := acts.FetchBooks(cmd.Context()); err != nil {
				return err
			}

			id := book.ParseID(args[0])
			b, found := st.FindBook(id)
			if !found {
				return fmt.Errorf("book %s not found", id)
			}

			st.SetEditing(&b)

			if title != "" {
				b.Title = title
			}
			if len(authors) > 0 {
				b.Authors = authors
			}
			if publisher != "" {
				b.Publisher = publisher
			}
			if description != "" {
				b.Description = description
			}
			if len(bookTags) > 0 {
				b.Tags = bookTags
			}
			if unread {
				b.Unread = true
			}
			if read {
				b.Unread = false
			}

			if err := acts.SaveBook(cmd.Context(), b); err != nil {
				return fmt.Errorf("%s", st.State().Err)
			}

			saved := st.State().SelectedBook
			fmt.Printf("Saved %q (id %s)\n", saved.Title, saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringSliceVar(&authors, "author", nil, "Replace the author list (repeatable)")
	cmd.Flags().StringVar(&publisher, "publisher", "", "New publisher")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringSliceVar(&bookTags, "tag", nil, "Replace the tag list (repeatable)")
	cmd.Flags().BoolVar(&unread, "unread", false, "Mark as unread")
	cmd.Flags().BoolVar(&read, "read", false, "Mark as read")

	return cmd
}
