package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// defaultLimit caps results per source when the caller gives no limit.
const defaultLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string   `json:"query" jsonschema:"the launcher query, e.g. an app name or 'yt lofi'"`
	Limit   int      `json:"limit,omitempty" jsonschema:"maximum results per source (default 10)"`
	Sources []string `json:"sources,omitempty" jsonschema:"restrict to apps, contacts, files or settings"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results     []MatchOutput     `json:"results"`
	Count       int               `json:"count"`
	Suggestions []string          `json:"suggestions,omitempty"`
	Shortcut    string            `json:"shortcut,omitempty"`
	EngineURLs  []EngineURLOutput `json:"engine_urls,omitempty"`
}

// MatchOutput represents a single ranked item.
type MatchOutput struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Title  string  `json:"title"`
	Detail string  `json:"detail,omitempty"`
	Target string  `json:"target"`
	Tier   string  `json:"tier"`
	Fuzzy  bool    `json:"fuzzy,omitempty"`
	Score  float64 `json:"score,omitempty"`
}

// EngineURLOutput is an engine and the URL it would open.
type EngineURLOutput struct {
	Engine string `json:"engine"`
	URL    string `json:"url"`
}

// SearchURLInput is the input schema for the search_url tool.
type SearchURLInput struct {
	Query  string `json:"query" jsonschema:"the text to search for"`
	Engine string `json:"engine,omitempty" jsonschema:"engine id, e.g. google or youtube (default: the default engine)"`
	Domain string `json:"domain,omitempty" jsonschema:"domain override for engines that support it, e.g. co.uk"`
}

// SearchURLOutput is the output schema for the search_url tool.
type SearchURLOutput struct {
	Engine string `json:"engine"`
	URL    string `json:"url"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search installed apps, contacts, files and settings shortcuts",
	}, s.handleSearch)

	if s.ports.Engines != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_url",
			Description: "Build the web search URL for a query on an engine",
		}, s.handleSearchURL)
	}

	if s.ports.Answer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Ask the direct-answer engine a question",
		}, s.handleAsk)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	opts := domain.SearchOptions{Limit: limit}
	for _, name := range input.Sources {
		kind := domain.SourceKind(name)
		if !kind.IsValid() {
			return nil, SearchOutput{}, fmt.Errorf("%w: source %q", domain.ErrUnsupportedType, name)
		}
		opts.Sources = append(opts.Sources, kind)
	}

	report, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{Suggestions: report.Suggestions}
	for _, group := range [][]domain.Match{
		report.Apps,
		report.Secondary.Contacts,
		report.Secondary.Files,
		report.Secondary.Settings,
	} {
		for i := range group {
			output.Results = append(output.Results, toMatchOutput(group[i]))
		}
	}
	output.Count = len(output.Results)
	if report.Shortcut != nil {
		output.Shortcut = string(report.Shortcut.Engine)
	}
	for _, u := range report.EngineURLs {
		output.EngineURLs = append(output.EngineURLs, EngineURLOutput{Engine: string(u.Engine), URL: u.URL})
	}

	return nil, output, nil
}

// handleSearchURL handles the search_url tool invocation.
func (s *Server) handleSearchURL(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchURLInput,
) (*mcp.CallToolResult, SearchURLOutput, error) {
	if s.ports.Engines == nil {
		return nil, SearchURLOutput{}, errToolUnavailable
	}

	engine := s.ports.Engines.DefaultEngine()
	if input.Engine != "" {
		engine = domain.SearchEngine(input.Engine)
	}

	u, err := s.ports.Engines.BuildSearchURL(input.Query, engine, input.Domain)
	if err != nil {
		return nil, SearchURLOutput{}, err
	}
	return nil, SearchURLOutput{Engine: string(engine), URL: u}, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Answer == nil {
		return nil, AskOutput{}, errToolUnavailable
	}

	state := s.ports.Answer.Ask(ctx, input.Question)
	if state.Err != nil {
		return nil, AskOutput{}, state.Err
	}
	return nil, AskOutput{Answer: state.Answer}, nil
}

func toMatchOutput(m domain.Match) MatchOutput {
	return MatchOutput{
		ID:     m.Candidate.ID,
		Source: string(m.Candidate.Source),
		Title:  m.Candidate.DisplayText,
		Detail: m.Candidate.Detail,
		Target: m.Candidate.Target,
		Tier:   m.Tier.String(),
		Fuzzy:  m.IsFuzzy,
		Score:  m.Score,
	}
}
