package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rapbook/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a rap or an empty folder",
	Long: `Delete a rap or a folder.

Warning: This operation cannot be undone. Folders must be empty: move or
delete their raps and subfolders first.

Examples:
  rapbook-cli delete rap_91d2...       # Delete rap
  rapbook-cli delete folder_4b0c...    # Delete empty folder`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewDeleteCommand(GetClient(), args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
