package driven

import "context"

// SuggestionFetcher returns web search suggestions for a query.
// Implementations apply their own timeout and rate limit.
type SuggestionFetcher interface {
	GetSuggestions(ctx context.Context, query string) ([]string, error)
}

// AnswerFetcher asks an external API for a direct answer.
// Implementations apply their own retry policy.
type AnswerFetcher interface {
	// FetchAnswer returns the answer text. extra is optional context sent
	// alongside the query (e.g. the previous answer).
	FetchAnswer(ctx context.Context, query, extra string) (string, error)
}
