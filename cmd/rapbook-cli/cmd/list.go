package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"rapbook/internal/application/commands"
	"rapbook/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

var listCmd = &cobra.Command{
	Use:   "list [folder-id]",
	Short: "List the contents of a folder",
	Long: `List the folders and raps directly inside a folder.
Without an argument the top level of the library is listed.

Examples:
  rapbook-cli list
  rapbook-cli list folder_4b0c...`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var folderID string
		if len(args) == 1 {
			folderID = args[0]
		}

		result, err := commands.NewListCommand(GetClient(), folderID).Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Folder != nil {
			fmt.Fprintf(out, "%s\n\n", result.Path)
		}
		if result.Children.Len() == 0 {
			fmt.Fprintln(out, "(empty)")
			return nil
		}

		for _, f := range result.Children.Folders {
			folders, raps := GetClient().ChildCounts(f.ID)
			fmt.Fprintf(out, "%s  %s/  (%d folders, %d raps)\n", f.ID, f.Name, folders, raps)
		}
		for _, r := range result.Children.Raps {
			printRap(out, r)
		}
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recently updated raps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		raps, err := commands.NewRecentCommand(GetClient(), limit).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(raps) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No raps yet")
			return nil
		}
		for _, r := range raps {
			printRap(cmd.OutOrStdout(), r)
		}
		return nil
	},
}

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List every folder as a picker would show it",
	Long: `List the root and every folder, indented by depth. With --exclude the
given folder and its subfolders are left out, which is exactly the set of
valid destinations when moving that folder.

Examples:
  rapbook-cli folders
  rapbook-cli folders --exclude folder_4b0c...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exclude, _ := cmd.Flags().GetString("exclude")

		options, err := commands.NewFolderOptionsCommand(GetClient(), exclude, "").Execute(context.Background())
		if err != nil {
			return err
		}
		for _, o := range options {
			id := "root"
			if o.ID != nil {
				id = *o.ID
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s  %s\n", indent(o.Depth), id, o.Name)
		}
		return nil
	},
}

func printRap(out io.Writer, r domain.Rap) {
	fmt.Fprintf(out, "%s  %s  (%s)\n", r.ID, r.Title, r.UpdatedAt.Local().Format(timeLayout))
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(foldersCmd)

	recentCmd.Flags().IntP("limit", "n", 10, "number of raps to show (0 for all)")
	foldersCmd.Flags().String("exclude", "", "folder to leave out together with its subfolders")
}
