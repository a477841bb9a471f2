package cmd

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"rapbook/internal/adapters/editor"
	"rapbook/internal/application/commands"
)

var showCmd = &cobra.Command{
	Use:   "show <rap-id>",
	Short: "Print a rap",
	Long: `Print the title, location and lyrics of a rap.

Examples:
  rapbook-cli show rap_91d2...
  rapbook-cli show rap_91d2... --copy    # also copy the lyrics to the clipboard`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewShowCommand(GetClient(), args[0]).Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		rap := result.Rap
		location := result.Path
		if location == "" {
			location = "root"
		}

		fmt.Fprintf(out, "# %s\n", rap.Title)
		fmt.Fprintf(out, "%s  in %s  updated %s\n", rap.ID, location, rap.UpdatedAt.Local().Format(timeLayout))
		if len(rap.Tags) > 0 {
			fmt.Fprintf(out, "tags: %v\n", rap.Tags)
		}
		fmt.Fprintf(out, "\n%s\n", rap.Content)

		if copyFlag, _ := cmd.Flags().GetBool("copy"); copyFlag {
			if err := clipboard.WriteAll(rap.Content); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Copied lyrics to clipboard")
		}
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <rap-id>",
	Short: "Edit the lyrics of a rap in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewEditRapCommand(GetClient(), editor.NewOpener(), args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <rap-id>",
	Short: "Change the title, lyrics or tags of a rap",
	Long: `Change the title, lyrics or tags of a rap. Only the given flags are
applied.

Examples:
  rapbook-cli update rap_91d2... --title "Final Take"
  rapbook-cli update rap_91d2... --content-file verse.txt
  rapbook-cli update rap_91d2... --tag boom-bap --tag storytelling
  rapbook-cli update rap_91d2... --clear-tags`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		update := commands.NewUpdateRapCommand(GetClient(), args[0])
		flags := cmd.Flags()

		if flags.Changed("title") {
			title, _ := flags.GetString("title")
			update.Title = &title
		}
		if flags.Changed("content") || flags.Changed("content-file") {
			content, err := contentFromFlags(cmd)
			if err != nil {
				return err
			}
			update.Content = &content
		}
		if flags.Changed("tag") {
			tags, _ := flags.GetStringSlice("tag")
			update.Tags = &tags
		} else if clearTags, _ := flags.GetBool("clear-tags"); clearTags {
			update.Tags = &[]string{}
		}

		result, err := update.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(updateCmd)

	showCmd.Flags().BoolP("copy", "c", false, "copy the lyrics to the clipboard")

	updateCmd.Flags().StringP("title", "t", "", "new title")
	addContentFlags(updateCmd)
	updateCmd.Flags().StringSlice("tag", nil, "replace the tags (repeatable)")
	updateCmd.Flags().Bool("clear-tags", false, "remove all tags")
	updateCmd.MarkFlagsMutuallyExclusive("tag", "clear-tags")
}
