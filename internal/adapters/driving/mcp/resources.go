package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for launcher resources.
	uriScheme = "sercha://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Searchable sources and how many items each holds",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{source}/items",
		Name:        "source-items",
		Description: "Items available from a source, minus hidden ones",
		MIMEType:    "application/json",
	}, s.handleItemsResource)
}

// handleSourcesResource lists the managed sources.
func (s *Server) handleSourcesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type sourceInfo struct {
		Source string `json:"source"`
		Items  int    `json:"items"`
		Pinned int    `json:"pinned"`
		URI    string `json:"uri"`
	}

	infos := make([]sourceInfo, 0, len(s.ports.Sources))
	for _, kind := range domain.AllSources() {
		m, ok := s.ports.Sources[kind]
		if !ok {
			continue
		}
		infos = append(infos, sourceInfo{
			Source: string(kind),
			Items:  len(m.Available(ctx)),
			Pinned: len(m.Pinned(ctx, nil)),
			URI:    uriScheme + "sources/" + string(kind) + "/items",
		})
	}

	return jsonResource(req.Params.URI, infos)
}

// handleItemsResource returns the items of one source.
func (s *Server) handleItemsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind := extractSource(req.Params.URI)
	m, ok := s.ports.Sources[kind]
	if kind == "" || !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	type itemInfo struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Nickname string `json:"nickname,omitempty"`
		Target   string `json:"target"`
	}

	items := m.Available(ctx)
	infos := make([]itemInfo, len(items))
	for i := range items {
		infos[i] = itemInfo{
			ID:       items[i].ID,
			Title:    items[i].DisplayText,
			Nickname: items[i].Nickname,
			Target:   items[i].Target,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSource extracts the source from a URI like sercha://sources/{source}/items.
func extractSource(uri string) domain.SourceKind {
	const prefix = uriScheme + "sources/"
	const suffix = "/items"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}

	kind := domain.SourceKind(strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix))
	if !kind.IsValid() {
		return ""
	}
	return kind
}
