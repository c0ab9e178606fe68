// Package main provides the entry point for the planks CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/workspace"
)

// newRelatedCmd creates the related command.
func newRelatedCmd() *cobra.Command {
	return newRelatedCmdInternal(nil)
}

func newRelatedCmdInternal(ws *workspace.Workspace) *cobra.Command {
	var depthFlag int

	cmd := &cobra.Command{
		Use:   "related <path>",
		Short: "Discover documents related to one document",
		Long: `Walk reference edges in both directions from a document and list every
document reachable within the depth limit. Cycles are handled; each
document appears at most once.

Examples:
  planks related adr-001-use-message-queue.md
  planks related adr-001-use-message-queue.md --depth 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelated(cmd, ws, args[0], depthFlag)
		},
	}

	cmd.Flags().IntVar(&depthFlag, "depth", 2, "Maximum hops to explore")

	return cmd
}

// runRelated executes the related command.
func runRelated(cmd *cobra.Command, ws *workspace.Workspace, path string, depth int) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	related := ws.Refs.Related(path, depth)

	if printer.IsJSON() {
		if related == nil {
			related = []string{}
		}
		return printer.WriteJSON(map[string]any{"related": related, "count": len(related)})
	}

	if len(related) == 0 {
		printer.Println("No related documents.")
		return nil
	}
	for _, doc := range related {
		printer.Println(doc)
	}
	return nil
}

// newChainCmd creates the chain command.
func newChainCmd() *cobra.Command {
	return newChainCmdInternal(nil)
}

func newChainCmdInternal(ws *workspace.Workspace) *cobra.Command {
	return &cobra.Command{
		Use:   "chain <path>",
		Short: "Follow a document's supersession chain",
		Long: `Follow supersedes edges from a document and print the ordered chain.
A cycle stops the walk and is reported as a warning, not an error.

Examples:
  planks chain adr-003-current.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(cmd, ws, args[0])
		},
	}
}

// runChain executes the chain command.
func runChain(cmd *cobra.Command, ws *workspace.Workspace, path string) error {
	printer := newCmdPrinter(cmd)

	ws, err := resolveWorkspace(ws)
	if err != nil {
		printer.Error(err)
		return err
	}

	chain := ws.Refs.SupersessionChain(path)

	if printer.IsJSON() {
		data := map[string]any{"chain": chain.Documents}
		if chain.Cycle {
			data["cycle"] = true
			data["cycleAt"] = chain.CycleAt
		}
		return printer.WriteJSON(data)
	}

	printer.Println(strings.Join(chain.Documents, " -> "))
	if chain.Cycle {
		printer.Warn("supersession cycle detected at %s; chain is partial", chain.CycleAt)
	}
	return nil
}
