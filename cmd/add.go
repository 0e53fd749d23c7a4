package cmd

import (
	"errors"
	"fmt"

	"github.com/acorntide/shelfd/internal/actions"
	"github.com/acorntide/shelfd/internal/book"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var isbn string
	var title string
	var authors []string
	var bookTags []string
	var unread bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the collection",
		Long: `Adds a book. With --isbn the catalog service is asked for metadata
first; explicit flags override whatever the lookup returns. Without
--isbn the record is built from the flags alone.

If a book with the same ISBN is already in the collection, no lookup is
made and nothing is added.`,
		Example: `  # Add by ISBN with automatic metadata lookup
  shelfd add --isbn 9780441172719

  # Add manually
  shelfd add --title "Dune" --author "Frank Herbert" --tag sci-fi`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isbn == "" && title == "" {
				return fmt.Errorf("either --isbn or --title is required")
			}

			st, acts := newSession()

			// The duplicate guard needs the current collection.
			if err := acts.FetchBooks(cmd.Context()); err != nil {
				return err
			}

			var b book.Book
			if isbn != "" {
				err := acts.LookupISBN(cmd.Context(), isbn)
				if errors.Is(err, actions.ErrDuplicateISBN) {
					fmt.Println("This book is already in your collection; nothing added.")
					return nil
				}
				if err != nil {
					return err
				}
				if fetched := st.State().FetchedBookData; fetched != nil {
					b = *fetched
				}
				if b.ISBN == "" {
					b.ISBN = isbn
				}
			}

			if title != "" {
				b.Title = title
			}
			if len(authors) > 0 {
				b.Authors = authors
			}
			if len(bookTags) > 0 {
				b.Tags = bookTags
			}
			b.Unread = unread

			added, err := acts.AddBook(cmd.Context(), b)
			if err != nil {
				return fmt.Errorf("%s", st.State().Err)
			}

			fmt.Printf("Added %q (id %s)\n", added.Title, added.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN to look up metadata for")
	cmd.Flags().StringVar(&title, "title", "", "Title (overrides lookup result)")
	cmd.Flags().StringSliceVar(&authors, "author", nil, "Author (repeatable, overrides lookup result)")
	cmd.Flags().StringSliceVar(&bookTags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().BoolVar(&unread, "unread", false, "Mark the book as unread")

	return cmd
}
