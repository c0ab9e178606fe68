package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/planksmith/planks/internal/docstore"
	"github.com/planksmith/planks/internal/workspace"
)

// DocumentSummary is a document without its body, for list-shaped output.
type DocumentSummary struct {
	Path   string   `json:"path"             jsonschema:"relative document path"`
	Title  string   `json:"title"            jsonschema:"document title"`
	Number int      `json:"number"           jsonschema:"sequence number within the family"`
	Tags   []string `json:"tags,omitempty"   jsonschema:"document tags"`
}

func toSummaries(docs []*docstore.Document) []DocumentSummary {
	result := make([]DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		result = append(result, DocumentSummary{
			Path:   doc.Path,
			Title:  doc.Title(),
			Number: doc.Number(),
			Tags:   doc.Tags(),
		})
	}
	return result
}

// --- create_document ---

// CreateDocumentInput is the input for the create_document tool.
type CreateDocumentInput struct {
	Family     string   `json:"family"                jsonschema:"document family, e.g. adr or plan"`
	Title      string   `json:"title"                 jsonschema:"document title"`
	Body       string   `json:"body,omitempty"        jsonschema:"markdown body"`
	Tags       []string `json:"tags,omitempty"        jsonschema:"document tags"`
	Supersedes []string `json:"supersedes,omitempty"  jsonschema:"paths of documents this one supersedes"`
	Implements []string `json:"implements,omitempty"  jsonschema:"paths of documents this one implements"`
	RelatesTo  []string `json:"relates_to,omitempty"  jsonschema:"paths of related documents"`
	References []string `json:"references,omitempty"  jsonschema:"paths of referenced documents"`
}

// CreateDocumentOutput is the output for the create_document tool.
type CreateDocumentOutput struct {
	Path   string `json:"path"   jsonschema:"relative path of the created document"`
	Number int    `json:"number" jsonschema:"allocated sequence number"`
}

func handleCreateDocument(ws *workspace.Workspace) mcp.ToolHandlerFor[CreateDocumentInput, CreateDocumentOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in CreateDocumentInput) (*mcp.CallToolResult, CreateDocumentOutput, error) {
		if in.Family == "" || in.Title == "" {
			return nil, CreateDocumentOutput{}, errors.New("family and title are required")
		}

		meta := docstore.Metadata{"created": todayStamp()}
		if len(in.Tags) > 0 {
			meta["tags"] = in.Tags
		}

		path, number, err := ws.CreateDocument(in.Family, in.Title, in.Body, meta, workspace.Links{
			Supersedes: in.Supersedes,
			Implements: in.Implements,
			RelatesTo:  in.RelatesTo,
			References: in.References,
		})
		if err != nil {
			return nil, CreateDocumentOutput{}, fmt.Errorf("creating document: %w", err)
		}
		return nil, CreateDocumentOutput{Path: path, Number: number}, nil
	}
}

// --- read_document ---

// ReadDocumentInput is the input for the read_document tool.
type ReadDocumentInput struct {
	Path string `json:"path" jsonschema:"relative document path"`
}

// ReadDocumentOutput is the output for the read_document tool.
type ReadDocumentOutput struct {
	Path     string         `json:"path"               jsonschema:"relative document path"`
	Title    string         `json:"title"              jsonschema:"document title"`
	Number   int            `json:"number"             jsonschema:"sequence number"`
	Tags     []string       `json:"tags,omitempty"     jsonschema:"document tags"`
	Metadata map[string]any `json:"metadata,omitempty" jsonschema:"full frontmatter metadata"`
	Body     string         `json:"body"               jsonschema:"markdown body"`
}

func handleReadDocument(ws *workspace.Workspace) mcp.ToolHandlerFor[ReadDocumentInput, ReadDocumentOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in ReadDocumentInput) (*mcp.CallToolResult, ReadDocumentOutput, error) {
		doc, err := ws.Docs.Read(in.Path)
		if err != nil {
			return nil, ReadDocumentOutput{}, err
		}
		return nil, ReadDocumentOutput{
			Path:     doc.Path,
			Title:    doc.Title(),
			Number:   doc.Number(),
			Tags:     doc.Tags(),
			Metadata: doc.Meta,
			Body:     doc.Body,
		}, nil
	}
}

// --- search_documents ---

// SearchDocumentsInput is the input for the search_documents tool.
type SearchDocumentsInput struct {
	Query   string `json:"query"             jsonschema:"case-insensitive search query"`
	Pattern string `json:"pattern,omitempty" jsonschema:"glob pattern restricting searched files, e.g. adr-*.md"`
}

// SearchDocumentsOutput is the output for the search_documents tool.
type SearchDocumentsOutput struct {
	Documents []DocumentSummary `json:"documents"         jsonschema:"matching documents"`
	Skipped   int               `json:"skipped,omitempty" jsonschema:"malformed documents skipped during the search"`
}

func handleSearchDocuments(ws *workspace.Workspace) mcp.ToolHandlerFor[SearchDocumentsInput, SearchDocumentsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in SearchDocumentsInput) (*mcp.CallToolResult, SearchDocumentsOutput, error) {
		docs, stats, err := ws.Docs.Search(in.Pattern, in.Query)
		if err != nil {
			return nil, SearchDocumentsOutput{}, fmt.Errorf("searching documents: %w", err)
		}
		return nil, SearchDocumentsOutput{Documents: toSummaries(docs), Skipped: stats.Skipped}, nil
	}
}

// --- recent_documents ---

// RecentDocumentsInput is the input for the recent_documents tool.
type RecentDocumentsInput struct {
	Pattern string `json:"pattern,omitempty" jsonschema:"glob pattern restricting listed files"`
	Limit   int    `json:"limit,omitempty"   jsonschema:"maximum number of documents (default 10)"`
}

// RecentDocumentsOutput is the output for the recent_documents tool.
type RecentDocumentsOutput struct {
	Documents []DocumentSummary `json:"documents" jsonschema:"documents ordered newest first"`
}

func handleRecentDocuments(ws *workspace.Workspace) mcp.ToolHandlerFor[RecentDocumentsInput, RecentDocumentsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in RecentDocumentsInput) (*mcp.CallToolResult, RecentDocumentsOutput, error) {
		limit := in.Limit
		if limit <= 0 {
			limit = 10
		}
		docs, err := ws.Docs.GetRecent(in.Pattern, limit)
		if err != nil {
			return nil, RecentDocumentsOutput{}, fmt.Errorf("listing recent documents: %w", err)
		}
		return nil, RecentDocumentsOutput{Documents: toSummaries(docs)}, nil
	}
}
