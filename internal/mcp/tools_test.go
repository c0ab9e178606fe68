package mcp

import (
	"context"
	"slices"
	"testing"

	"github.com/planksmith/planks/internal/workspace"
)

// --- Test helpers ---

func makeTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening workspace: %v", err)
	}
	return ws
}

func createDoc(t *testing.T, ws *workspace.Workspace, in CreateDocumentInput) CreateDocumentOutput {
	t.Helper()
	_, out, err := handleCreateDocument(ws)(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("create_document(%q): %v", in.Title, err)
	}
	return out
}

// --- create_document / read_document ---

func TestCreateAndReadDocument(t *testing.T) {
	ws := makeTestWorkspace(t)

	created := createDoc(t, ws, CreateDocumentInput{
		Family: "adr",
		Title:  "Adopt Event Sourcing",
		Body:   "We will adopt event sourcing for audit trails.\n",
		Tags:   []string{"architecture"},
	})
	if created.Path != "adr-001-adopt-event-sourcing.md" || created.Number != 1 {
		t.Errorf("created = %+v", created)
	}

	_, read, err := handleReadDocument(ws)(context.Background(), nil, ReadDocumentInput{Path: created.Path})
	if err != nil {
		t.Fatalf("read_document: %v", err)
	}
	if read.Title != "Adopt Event Sourcing" || read.Number != 1 {
		t.Errorf("read = %+v", read)
	}
	if !slices.Contains(read.Tags, "architecture") {
		t.Errorf("tags = %v", read.Tags)
	}
}

func TestCreateDocumentRequiresFamilyAndTitle(t *testing.T) {
	ws := makeTestWorkspace(t)
	_, _, err := handleCreateDocument(ws)(context.Background(), nil, CreateDocumentInput{Title: "No Family"})
	if err == nil {
		t.Error("missing family should fail")
	}
}

func TestReadDocumentNotFound(t *testing.T) {
	ws := makeTestWorkspace(t)
	_, _, err := handleReadDocument(ws)(context.Background(), nil, ReadDocumentInput{Path: "missing.md"})
	if err == nil {
		t.Error("reading a missing document should fail")
	}
}

// --- search / recent ---

func TestSearchDocuments(t *testing.T) {
	ws := makeTestWorkspace(t)
	createDoc(t, ws, CreateDocumentInput{Family: "adr", Title: "Caching", Body: "Use an LRU cache.\n"})
	createDoc(t, ws, CreateDocumentInput{Family: "adr", Title: "Storage", Body: "Documents on disk.\n"})

	_, out, err := handleSearchDocuments(ws)(context.Background(), nil, SearchDocumentsInput{Query: "lru"})
	if err != nil {
		t.Fatalf("search_documents: %v", err)
	}
	if len(out.Documents) != 1 || out.Documents[0].Title != "Caching" {
		t.Errorf("search result = %+v", out.Documents)
	}
}

func TestRecentDocumentsDefaultLimit(t *testing.T) {
	ws := makeTestWorkspace(t)
	createDoc(t, ws, CreateDocumentInput{Family: "adr", Title: "Only One", Body: "x\n"})

	_, out, err := handleRecentDocuments(ws)(context.Background(), nil, RecentDocumentsInput{})
	if err != nil {
		t.Fatalf("recent_documents: %v", err)
	}
	if len(out.Documents) != 1 {
		t.Errorf("documents = %+v", out.Documents)
	}
}

// --- links and traversal ---

func TestLinkAndRelatedDocuments(t *testing.T) {
	ws := makeTestWorkspace(t)
	a := createDoc(t, ws, CreateDocumentInput{Family: "adr", Title: "Alpha", Body: "a\n"})
	b := createDoc(t, ws, CreateDocumentInput{Family: "adr", Title: "Beta", Body: "b\n"})
	c := createDoc(t, ws, CreateDocumentInput{Family: "plan", Title: "Gamma Plan", Body: "c\n"})

	link := handleLinkDocuments(ws)
	if _, _, err := link(context.Background(), nil, LinkDocumentsInput{From: a.Path, To: b.Path, Type: "relates-to"}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := link(context.Background(), nil, LinkDocumentsInput{From: b.Path, To: c.Path, Type: "references"}); err != nil {
		t.Fatal(err)
	}

	_, related, err := handleRelatedDocuments(ws)(context.Background(), nil, RelatedDocumentsInput{Path: a.Path, MaxDepth: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(related.Related, []string{b.Path}) {
		t.Errorf("depth 1 related = %v", related.Related)
	}

	_, related, err = handleRelatedDocuments(ws)(context.Background(), nil, RelatedDocumentsInput{Path: a.Path, MaxDepth: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(related.Related) != 2 {
		t.Errorf("depth 2 related = %v", related.Related)
	}
}

func TestLinkDocumentsRejectsUnknownType(t *testing.T) {
	ws := makeTestWorkspace(t)
	_, _, err := handleLinkDocuments(ws)(context.Background(), nil, LinkDocumentsInput{From: "a", To: "b", Type: "follows"})
	if err == nil {
		t.Error("unknown type should fail")
	}
}

func TestSupersessionChainReportsCycle(t *testing.T) {
	ws := makeTestWorkspace(t)
	a := createDoc(t, ws, CreateDocumentInput{Family: "adr", Title: "One", Body: "1\n"})
	b := createDoc(t, ws, CreateDocumentInput{Family: "adr", Title: "Two", Body: "2\n", Supersedes: []string{a.Path}})

	// Close the loop to form a cycle.
	link := handleLinkDocuments(ws)
	if _, _, err := link(context.Background(), nil, LinkDocumentsInput{From: a.Path, To: b.Path, Type: "supersedes"}); err != nil {
		t.Fatal(err)
	}

	_, out, err := handleSupersessionChain(ws)(context.Background(), nil, SupersessionChainInput{Path: b.Path})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out.Chain, []string{b.Path, a.Path}) {
		t.Errorf("chain = %v", out.Chain)
	}
	if out.Warning == "" {
		t.Error("cycle should surface as a warning, not an error")
	}
}

// --- validate / repair ---

func TestValidateAndRepairReferences(t *testing.T) {
	ws := makeTestWorkspace(t)
	a := createDoc(t, ws, CreateDocumentInput{Family: "adr", Title: "Kept", Body: "k\n"})
	b := createDoc(t, ws, CreateDocumentInput{Family: "adr", Title: "Doomed", Body: "d\n"})

	link := handleLinkDocuments(ws)
	if _, _, err := link(context.Background(), nil, LinkDocumentsInput{From: a.Path, To: b.Path, Type: "references"}); err != nil {
		t.Fatal(err)
	}

	if err := ws.Docs.Delete(b.Path); err != nil {
		t.Fatal(err)
	}

	_, report, err := handleValidateReferences(ws)(context.Background(), nil, ValidateReferencesInput{})
	if err != nil {
		t.Fatal(err)
	}
	if report.ValidCount != 0 || len(report.Broken) != 1 {
		t.Errorf("report = %+v", report)
	}

	_, repaired, err := handleRepairReferences(ws)(context.Background(), nil, RepairReferencesInput{})
	if err != nil {
		t.Fatal(err)
	}
	if repaired.Removed != 1 {
		t.Errorf("removed = %d, want 1", repaired.Removed)
	}
}
