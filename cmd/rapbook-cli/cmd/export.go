package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"rapbook/internal/adapters/filesystem"
	"rapbook/internal/adapters/obsidian"
	"rapbook/internal/application/commands"
	"rapbook/internal/config"
)

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Export the library as Markdown files",
	Long: `Write every rap as a Markdown file with YAML front matter, mirroring
the folder hierarchy as directories. Without an argument the export_dir
from the config is used.

Examples:
  rapbook-cli export
  rapbook-cli export ~/Documents/raps-backup`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := GetConfig().ExportDir
		if len(args) == 1 {
			dir = config.ExpandHome(args[0])
		}

		result, err := commands.NewExportCommand(GetClient(), filesystem.NewExporter(dir)).Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s to %s\n", result.Message, dir)
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <rap-id>",
	Short: "Export the library and open a rap in Obsidian",
	Long: `Refresh the Markdown export, then open the rap's file in Obsidian with
the export directory as the vault.

Example:
  rapbook-cli open rap_91d2...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := GetConfig().ExportDir
		open := commands.NewOpenExportedCommand(GetClient(), filesystem.NewExporter(dir), obsidian.NewOpener(dir), args[0])

		path, err := open.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(openCmd)
}
