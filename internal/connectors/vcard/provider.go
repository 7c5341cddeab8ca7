package vcard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.CandidateProvider = (*Provider)(nil)

// Provider reads contacts from a .vcf file or a directory of them.
type Provider struct {
	path string
}

// New creates a contacts provider for path.
func New(path string) *Provider {
	return &Provider{path: strings.TrimSpace(path)}
}

// Source returns the contacts source.
func (p *Provider) Source() domain.SourceKind {
	return domain.SourceContacts
}

// LoadAll parses every card. Duplicate IDs keep the first card.
func (p *Provider) LoadAll(ctx context.Context) ([]domain.Candidate, error) {
	if p.path == "" {
		return nil, fmt.Errorf("%w: no contacts path configured", domain.ErrInvalidInput)
	}
	files, err := p.files()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var candidates []domain.Candidate
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cards, err := parseFile(file)
		if err != nil {
			logger.Warn("contacts: skip %s: %v", file, err)
			continue
		}
		for _, card := range cards {
			c := toCandidate(card)
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

// Search returns contacts whose name, nickname, phone or e-mail contains query.
// Phone numbers also match with separators removed.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	all, err := p.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	digits := digitsOnly(needle)

	var out []domain.Candidate
	for _, c := range all {
		if limit > 0 && len(out) >= limit {
			break
		}
		if matches(c, needle, digits) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (p *Provider) files() ([]string, error) {
	info, err := os.Stat(p.path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{p.path}, nil
	}
	matches, err := filepath.Glob(filepath.Join(p.path, "*.vcf"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func parseFile(path string) ([]Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseAll(f)
}

func toCandidate(card Card) domain.Candidate {
	keywords := make([]string, 0, len(card.Nicknames)+len(card.Phones)+len(card.Emails)+1)
	keywords = append(keywords, card.Nicknames...)
	keywords = append(keywords, card.Phones...)
	keywords = append(keywords, card.Emails...)
	if card.Org != "" {
		keywords = append(keywords, card.Org)
	}

	c := domain.Candidate{
		ID:          card.ID(),
		Source:      domain.SourceContacts,
		DisplayText: card.DisplayName(),
		Keywords:    keywords,
	}
	switch {
	case len(card.Phones) > 0:
		c.Detail = card.Phones[0]
		c.Target = "tel:" + digitsOnly(card.Phones[0])
	case len(card.Emails) > 0:
		c.Detail = card.Emails[0]
		c.Target = "mailto:" + card.Emails[0]
	}
	return c
}

func matches(c domain.Candidate, needle, digits string) bool {
	if strings.Contains(strings.ToLower(c.DisplayText), needle) {
		return true
	}
	for _, k := range c.Keywords {
		if strings.Contains(strings.ToLower(k), needle) {
			return true
		}
		if digits != "" && len(digits) == len(needle) && strings.Contains(digitsOnly(k), digits) {
			return true
		}
	}
	return false
}

// digitsOnly keeps digits and a leading plus.
func digitsOnly(s string) string {
	var b strings.Builder
	for i, r := range s {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
