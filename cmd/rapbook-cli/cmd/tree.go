package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rapbook/internal/application/commands"
	"rapbook/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the library tree structure",
	Long: `Display every folder and rap of the library as a tree.

Example:
  rapbook-cli tree`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := commands.NewTreeCommand(GetClient(), "").Execute(context.Background())
		if err != nil {
			return err
		}

		printTree(cmd.OutOrStdout(), root, 0)
		return nil
	},
}

func printTree(out io.Writer, node *domain.TreeNode, depth int) {
	if node == nil {
		return
	}

	switch node.Type {
	case domain.NodeRoot:
		fmt.Fprintln(out, node.Name)
	case domain.NodeFolder:
		fmt.Fprintf(out, "%s%s %s/\n", indent(depth), node.ID, node.Name)
	default:
		fmt.Fprintf(out, "%s%s %s\n", indent(depth), node.ID, node.Name)
	}

	for _, child := range node.Children {
		printTree(out, child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
