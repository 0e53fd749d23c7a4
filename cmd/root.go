package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shelfd",
		Short: "Personal book catalog browser",
		Long: `Shelfd browses and maintains a personal book collection backed by a
remote catalog service.

It lists, searches, sorts and tag-filters the collection, adds books by
ISBN with automatic metadata lookup, and can serve the catalog over HTTP
for a web frontend.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newTagsCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newRmCmd())
	cmd.AddCommand(newFavCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newEnrichCmd())

	return cmd
}
