// Package mcp exposes skeleton rendering, search and listing as MCP tools
// over stdio.
package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rskel/rskel/internal/search"
	"github.com/rskel/rskel/internal/skel"
)

//go:embed instructions.md
var instructions string

type Server struct {
	mcpServer *server.MCPServer
	skel      *skel.Skel
}

func NewServer(s *skel.Skel) *Server {
	srv := &Server{skel: s}

	mcpServer := server.NewMCPServer(
		"rskel",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
	)
	srv.registerTools(mcpServer)
	srv.mcpServer = mcpServer
	return srv
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("render_skeleton",
			mcp.WithDescription("Render a compact, syntactically valid Rust skeleton of a crate or item: all signatures and docs, no function bodies. Target format: crate[@version][::path], e.g. \"serde\", \"serde@1.0.219\", \"tokio::sync::mpsc\"."),
			mcp.WithString("target",
				mcp.Description("Target specification"),
				mcp.Required(),
			),
			mcp.WithBoolean("private",
				mcp.Description("Include private items"),
			),
			mcp.WithBoolean("auto_impls",
				mcp.Description("Include auto-implemented traits"),
			),
			mcp.WithBoolean("markdown",
				mcp.Description("Emit a Markdown document instead of raw Rust"),
			),
		),
		s.handleRender,
	)

	mcpServer.AddTool(
		mcp.NewTool("search",
			mcp.WithDescription("Free-text search over a crate's item names, docs and signatures. Returns matched items plus a skeleton narrowed to the matches and their containing scopes."),
			mcp.WithString("target",
				mcp.Description("Target specification"),
				mcp.Required(),
			),
			mcp.WithString("query",
				mcp.Description("Substring to search for"),
				mcp.Required(),
			),
			mcp.WithArray("domains",
				mcp.Description("Domains to search: names, docs, paths, signatures (default: names, docs, signatures)"),
				mcp.Items(map[string]interface{}{"type": "string"}),
			),
			mcp.WithBoolean("case_sensitive",
				mcp.Description("Match case-sensitively"),
			),
			mcp.WithBoolean("private",
				mcp.Description("Include private items"),
			),
			mcp.WithBoolean("expand_containers",
				mcp.Description("Render the full contents of matched modules, types and traits"),
			),
		),
		s.handleSearch,
	)

	mcpServer.AddTool(
		mcp.NewTool("list",
			mcp.WithDescription("Flat kind+path listing of a crate's items, optionally narrowed by a query. Useful for discovering item paths before rendering."),
			mcp.WithString("target",
				mcp.Description("Target specification"),
				mcp.Required(),
			),
			mcp.WithString("query",
				mcp.Description("Optional substring filter"),
			),
			mcp.WithBoolean("private",
				mcp.Description("Include private items"),
			),
		),
		s.handleList,
	)
}

func (s *Server) handleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	target, _ := args["target"].(string)
	if target == "" {
		return mcp.NewToolResultError("missing required parameter: target"), nil
	}

	private, _ := args["private"].(bool)
	autoImpls, _ := args["auto_impls"].(bool)
	asMarkdown, _ := args["markdown"].(bool)

	sk := *s.skel
	sk.AutoImpls = autoImpls

	opts := skel.Options{PrivateItems: private}
	var out string
	var err error
	if asMarkdown {
		out, err = sk.RenderMarkdown(ctx, target, opts)
	} else {
		out, err = sk.Render(ctx, target, opts)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering failed: %v", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	target, _ := args["target"].(string)
	query, _ := args["query"].(string)
	if target == "" || query == "" {
		return mcp.NewToolResultError("missing required parameters: target, query"), nil
	}

	domains, err := search.ParseDomains(stringSlice(args["domains"]))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	private, _ := args["private"].(bool)
	caseSensitive, _ := args["case_sensitive"].(bool)
	expand, _ := args["expand_containers"].(bool)

	resp, err := s.skel.Search(ctx, target, skel.SearchOptions{
		Options:          skel.Options{PrivateItems: private},
		Query:            query,
		Domains:          domains,
		CaseSensitive:    caseSensitive,
		ExpandContainers: expand,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(resp.Results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no matches for %q in %s", query, search.DescribeDomains(domains))), nil
	}

	type matchedItem struct {
		Kind      string `json:"kind"`
		Path      string `json:"path"`
		Signature string `json:"signature,omitempty"`
		Matched   string `json:"matched"`
	}
	matches := make([]matchedItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		matches = append(matches, matchedItem{
			Kind:      r.Entry.Kind,
			Path:      r.Entry.Path,
			Signature: r.Entry.Signature,
			Matched:   search.DescribeDomains(r.Matched),
		})
	}
	matchesJSON, _ := json.MarshalIndent(matches, "", "  ")

	return mcp.NewToolResultText(string(matchesJSON) + "\n\n" + resp.Rendered), nil
}

func (s *Server) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	target, _ := args["target"].(string)
	if target == "" {
		return mcp.NewToolResultError("missing required parameter: target"), nil
	}

	private, _ := args["private"].(bool)
	opts := skel.Options{PrivateItems: private}

	var query *skel.SearchOptions
	if q, _ := args["query"].(string); q != "" {
		query = &skel.SearchOptions{
			Options: opts,
			Query:   q,
			Domains: search.DefaultDomains,
		}
	}

	items, err := s.skel.List(ctx, target, opts, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	itemsJSON, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(itemsJSON)), nil
}

// stringSlice coerces a JSON array argument into []string.
func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
