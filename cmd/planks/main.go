// Package main provides the entry point for the planks CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/workspace"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// newCmdPrinter builds a printer for the command's output writer, honoring
// the --json flag and TTY detection.
func newCmdPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())
}

// resolveWorkspace returns the injected workspace or opens the default one.
// Injection keeps commands testable without touching the real working
// directory.
func resolveWorkspace(ws *workspace.Workspace) (*workspace.Workspace, error) {
	if ws != nil {
		return ws, nil
	}
	opened, err := workspace.OpenDefault()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("opening workspace", err)
	}
	return opened, nil
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the planks CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planks",
		Short: "A file-backed store of numbered, interlinked documents",
		Long: `Planks manages a directory of markdown documents with YAML frontmatter,
gapless per-family numbering, and a typed reference graph.

  - Documents live under docs/ as <family>-<number>-<slug>.md
  - Numbers are allocated per family and never reused
  - Typed references (references, supersedes, implements, relates-to)
    are tracked in .planks/references.json

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'planks --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "docs", Title: "Document Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "refs", Title: "Reference Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Document commands
	addGroupedCommand(cmd, newNewCmd(), "docs")
	addGroupedCommand(cmd, newShowCmd(), "docs")
	addGroupedCommand(cmd, newLsCmd(), "docs")
	addGroupedCommand(cmd, newSearchCmd(), "docs")
	addGroupedCommand(cmd, newRecentCmd(), "docs")
	addGroupedCommand(cmd, newRmCmd(), "docs")
	addGroupedCommand(cmd, newMvCmd(), "docs")

	// Reference commands
	addGroupedCommand(cmd, newLinkCmd(), "refs")
	addGroupedCommand(cmd, newUnlinkCmd(), "refs")
	addGroupedCommand(cmd, newLinksCmd(), "refs")
	addGroupedCommand(cmd, newRelatedCmd(), "refs")
	addGroupedCommand(cmd, newChainCmd(), "refs")

	// Admin commands
	addGroupedCommand(cmd, newCheckCmd(), "admin")
	addGroupedCommand(cmd, newRenumberCmd(), "admin")
	addGroupedCommand(cmd, newExportCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
