package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rapbook/internal/application/commands"
)

var moveCmd = &cobra.Command{
	Use:   "move <source-id> <dest-folder-id|root>",
	Short: "Move a rap or folder",
	Long: `Move a rap or a folder into another folder, or to the top level.

Rules:
- The destination must be a folder, or "root"
- A folder can't be moved into itself or one of its subfolders

Examples:
  rapbook-cli move rap_91d2... folder_4b0c...    # Move rap into folder
  rapbook-cli move folder_77ae... root           # Move folder to the top level`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewMoveCommand(GetClient(), args[0], args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a rap or folder",
	Long: `Rename a folder, or change the title of a rap.

Examples:
  rapbook-cli rename folder_4b0c... "Old Verses"
  rapbook-cli rename rap_91d2... "Final Take"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRenameCommand(GetClient(), args[0], args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(renameCmd)
}
