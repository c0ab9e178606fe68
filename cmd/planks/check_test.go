// Package main provides the entry point for the planks CLI.
package main

import (
	"strings"
	"testing"

	"github.com/planksmith/planks/internal/output"
	"github.com/planksmith/planks/internal/refgraph"
	"github.com/planksmith/planks/internal/workspace"
)

// brokenGraphWorkspace returns a workspace with one valid and one broken edge.
func brokenGraphWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws := testWorkspace(t)

	a, _, err := ws.CreateDocument("adr", "Kept", "k\n", nil, workspace.Links{})
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := ws.CreateDocument("adr", "Doomed", "d\n", nil, workspace.Links{})
	if err != nil {
		t.Fatal(err)
	}
	c, _, err := ws.CreateDocument("adr", "Other", "o\n", nil, workspace.Links{})
	if err != nil {
		t.Fatal(err)
	}

	mustLink := func(from, to string) {
		t.Helper()
		if err := ws.Refs.Add(refgraph.Reference{From: from, To: to, Type: refgraph.TypeReferences}); err != nil {
			t.Fatal(err)
		}
	}
	mustLink(a, b)
	mustLink(a, c)

	if err := ws.Docs.Delete(b); err != nil {
		t.Fatal(err)
	}
	return ws
}

func TestCheckCommandReportsBroken(t *testing.T) {
	ws := brokenGraphWorkspace(t)

	out, err := executeCommand(t, newCheckCmdInternal(ws))
	if err == nil {
		t.Fatal("expected conflict error when broken edges exist")
	}
	if output.GetExitCode(err) != output.ExitConflict {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitConflict)
	}
	if !strings.Contains(out, "1 valid, 1 broken") {
		t.Errorf("output = %s", out)
	}
}

func TestCheckCommandFix(t *testing.T) {
	ws := brokenGraphWorkspace(t)

	out, err := executeCommand(t, newCheckCmdInternal(ws), "--fix")
	if err != nil {
		t.Fatalf("Execute() with --fix error = %v", err)
	}
	if !strings.Contains(out, "Removed 1 broken reference(s)") {
		t.Errorf("output = %s", out)
	}
	if ws.Refs.Len() != 1 {
		t.Errorf("remaining edges = %d, want 1", ws.Refs.Len())
	}
}

func TestCheckCommandCleanGraph(t *testing.T) {
	ws := testWorkspace(t)

	out, err := executeCommand(t, newCheckCmdInternal(ws))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "0 valid, 0 broken") {
		t.Errorf("output = %s", out)
	}
}
