package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rapbook/internal/application/commands"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new rap or folder",
	Long: `Create a new rap or folder.

Examples:
  rapbook-cli create folder "Verses"
  rapbook-cli create folder "Hooks" --parent folder_4b0c...
  rapbook-cli create rap "Late Night" --folder folder_4b0c... --content-file draft.txt
  echo "first bar" | rapbook-cli create rap "Quick" --content-file -`,
}

var createRapCmd = &cobra.Command{
	Use:   "rap [title]",
	Short: "Create a new rap",
	Long: `Create a new rap. A missing or blank title becomes "Untitled Rap".
Without --folder the rap is created at the top level.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title string
		if len(args) == 1 {
			title = args[0]
		}
		folderID, _ := cmd.Flags().GetString("folder")

		content, err := contentFromFlags(cmd)
		if err != nil {
			return err
		}

		result, err := commands.NewCreateRapCommand(GetClient(), title, content, folderID).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var createFolderCmd = &cobra.Command{
	Use:   "folder <name>",
	Short: "Create a new folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parentID, _ := cmd.Flags().GetString("parent")

		result, err := commands.NewCreateFolderCommand(GetClient(), args[0], parentID).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

// contentFromFlags reads --content or --content-file ("-" for stdin)
func contentFromFlags(cmd *cobra.Command) (string, error) {
	content, _ := cmd.Flags().GetString("content")
	path, _ := cmd.Flags().GetString("content-file")
	if path == "" {
		return content, nil
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return string(data), nil
}

func addContentFlags(cmd *cobra.Command) {
	cmd.Flags().String("content", "", "lyrics text")
	cmd.Flags().String("content-file", "", `read lyrics from a file ("-" for stdin)`)
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createRapCmd)
	createCmd.AddCommand(createFolderCmd)

	createRapCmd.Flags().StringP("folder", "f", "", "folder to create the rap in (default root)")
	addContentFlags(createRapCmd)
	createFolderCmd.Flags().StringP("parent", "p", "", "parent folder (default root)")
}
