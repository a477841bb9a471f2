package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rapbook/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search raps by title and lyrics",
	Long: `Search raps whose title or lyrics contain the query, ignoring case.
Queries shorter than two characters return nothing.

With --fuzzy, titles whose letters appear in query order also match and
results are ranked by relevance.

Examples:
  rapbook-cli search "hands up"
  rapbook-cli search lnght --fuzzy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		search := commands.NewSearchCommand(GetClient(), args[0])
		search.Fuzzy, _ = cmd.Flags().GetBool("fuzzy")

		results, err := search.Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}

		for _, r := range results {
			location := r.Path
			if location == "" {
				location = "root"
			}
			fmt.Fprintf(out, "%s  %s  [%s]\n", r.Rap.ID, r.Rap.Title, location)
			if r.Snippet != "" {
				fmt.Fprintf(out, "    %s\n", r.Snippet)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Bool("fuzzy", false, "also match titles fuzzily and rank by relevance")
}
