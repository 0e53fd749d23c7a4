package cmd

import (
	"fmt"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/acorntide/shelfd/internal/catalog"
	"github.com/acorntide/shelfd/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the collection to a file",
		Long: `Writes the full collection to a flat file. The format follows the
file extension: .parquet or .jsonl.`,
		Example: `  shelfd export --out catalog.parquet
  shelfd export --out backup.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, acts := newSession()

			if err := acts.FetchBooks(cmd.Context()); err != nil {
				return err
			}

			books := st.State().Books
			if err := export.WriteFile(out, books); err != nil {
				return err
			}

			fmt.Printf("Exported %d books to %s\n", len(books), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "catalog.parquet", "Output file (.parquet or .jsonl)")

	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import books from an exported file",
		Long: `Reads a .parquet or .jsonl catalog file and creates every record via
the catalog service. Books the service reports as already existing are
skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, acts := newSession()

			books, err := export.ReadFile(args[0])
			if err != nil {
				return err
			}

			if err := acts.FetchBooks(cmd.Context()); err != nil {
				return err
			}

			created, skipped := 0, 0
			for _, b := range books {
				if _, exists := st.FindByISBN(b.ISBN); b.ISBN != "" && exists {
					skipped++
					continue
				}

				b.ID = book.ID{} // the service assigns identifiers
				_, err := acts.AddBook(cmd.Context(), b)
				switch {
				case err == nil:
					created++
				case catalog.IsDuplicate(err):
					skipped++
				default:
					return fmt.Errorf("import stopped at %q: %s", b.Title, st.State().Err)
				}
			}

			fmt.Printf("Imported %d books (%d already present)\n", created, skipped)
			return nil
		},
	}

	return cmd
}
