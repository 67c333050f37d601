package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/scenereplace/cmd/scenereplace/opts"
	"github.com/walteh/scenereplace/pkg/scene"
	"gitlab.com/tozd/go/errors"
)

// NewInspectCmd creates a new inspect command
func NewInspectCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect file",
		Short: "Print the layer tree of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scene.LoadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out, err := pterm.DefaultTree.WithRoot(treeNode(doc, doc.Root)).Srender()
			if err != nil {
				return errors.Errorf("rendering tree: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	return cmd
}

// treeNode converts a scene node into a pterm tree, marking artboards and the focus
func treeNode(doc *scene.Document, n *scene.Node) pterm.TreeNode {
	label := fmt.Sprintf("%s %q", n.Kind, n.Name)
	switch {
	case n.Kind == scene.KindText:
		label += fmt.Sprintf(" = %q", n.Text)
	case n.Artboard && n.Name == doc.Focus:
		label += " [artboard, focused]"
	case n.Artboard:
		label += " [artboard]"
	}

	node := pterm.TreeNode{Text: label}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		node.Children = append(node.Children, treeNode(doc, child))
	}
	return node
}
