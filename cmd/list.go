package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/acorntide/shelfd/internal/query"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newListCmd() *cobra.Command {
	var view string
	var tag string
	var search string
	var sortOrder string
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books in the collection",
		Long: `Fetches the collection and prints it after filtering and sorting.

Search terms shorter than four characters are ignored rather than
applied, matching the browsing surface's behavior while a term is being
typed.`,
		Example: `  # Everything, sorted by title
  shelfd list

  # Favorites by author, descending
  shelfd list --view favorites --sort author-desc

  # Books tagged sci-fi, as YAML
  shelfd list --tag sci-fi --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, acts := newSession()

			if err := acts.FetchBooks(cmd.Context()); err != nil {
				return err
			}

			st.SetView(query.View(view))
			if tag != "" {
				st.SelectTag(tag)
			}
			st.SetSearchTerm(search)
			st.SetSortOrder(query.Sort(sortOrder))

			state := st.State()
			books := query.Process(state.Books, query.Options{
				View:        state.CurrentView,
				SelectedTag: state.SelectedTag,
				SearchTerm:  state.SearchTerm,
				Sort:        state.SortOrder,
			})

			return printBooks(books, output)
		},
	}

	cmd.Flags().StringVar(&view, "view", "library", "View to show (library, favorites, tags, tag-filter)")
	cmd.Flags().StringVar(&tag, "tag", "", "Show only books carrying this tag")
	cmd.Flags().StringVar(&search, "search", "", "Search term (4 characters minimum)")
	cmd.Flags().StringVar(&sortOrder, "sort", "title-asc", "Sort order (title-asc, title-desc, author-asc, author-desc)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

func printBooks(books []book.Book, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(books, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode books: %w", err)
		}
		fmt.Println(string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(books)
		if err != nil {
			return fmt.Errorf("failed to encode books: %w", err)
		}
		fmt.Print(string(data))
		return nil
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tAUTHORS\tTAGS\tFAV")
		for _, b := range books {
			fav := ""
			if b.Favorite {
				fav = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.DisplayAuthors(), strings.Join(b.Tags, ", "), fav)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
