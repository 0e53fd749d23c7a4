package cmd

import (
	"fmt"

	"github.com/acorntide/shelfd/internal/book"
	"github.com/acorntide/shelfd/internal/enrich"
	"github.com/spf13/cobra"
)

func newEnrichCmd() *cobra.Command {
	var model string
	var apply bool

	cmd := &cobra.Command{
		Use:   "enrich <id>",
		Short: "Fill in missing description and categories with Gemini",
		Long: `Asks Google Gemini for a description and subject categories when the
record has none. Requires GEMINI_API_KEY. Without --apply the suggestion
is only printed.`,
		Example: `  # Preview a suggestion
  shelfd enrich 12

  # Save the enriched record
  shelfd enrich 12 --apply`,
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

			enriched, err := enrich.New(model).Enrich(cmd.Context(), b)
			if err != nil {
				return err
			}

			fmt.Printf("Description: %s\n", enriched.Description)
			if len(enriched.Categories) > 0 {
				fmt.Printf("Categories:  %v\n", enriched.Categories)
			}

			if !apply {
				fmt.Println("\nRun again with --apply to save.")
				return nil
			}

			st.SetEditing(&b)
			if err := acts.SaveBook(cmd.Context(), enriched); err != nil {
				return fmt.Errorf("%s", st.State().Err)
			}
			fmt.Printf("Saved %q (id %s)\n", enriched.Title, enriched.ID)
			return nil
		},
	}

	cmd.Args = cobra.ExactArgs(1)
	cmd.Flags().StringVar(&model, "model", "", "Gemini model name (default from GEMINI_MODEL)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Persist the enriched record")

	return cmd
}
