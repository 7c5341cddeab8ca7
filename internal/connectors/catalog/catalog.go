package catalog

import (
	"context"
	"strings"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.CandidateProvider = (*Provider)(nil)

// Page is one settings destination.
type Page struct {
	ID       string
	Title    string
	Panel    string
	Keywords []string
}

var builtinPages = []Page{
	{"wifi", "Wi-Fi", "wifi", []string{"wifi", "wireless", "wlan", "network", "internet", "hotspot"}},
	{"network", "Network", "network", []string{"ethernet", "proxy", "vpn", "ip address"}},
	{"bluetooth", "Bluetooth", "bluetooth", []string{"pair", "headphones", "devices"}},
	{"display", "Display", "display", []string{"screen", "monitor", "resolution", "brightness", "night light"}},
	{"sound", "Sound", "sound", []string{"volume", "audio", "speaker", "microphone"}},
	{"notifications", "Notifications", "notifications", []string{"alerts", "do not disturb"}},
	{"power", "Power", "power", []string{"battery", "sleep", "suspend", "energy"}},
	{"background", "Background", "background", []string{"wallpaper", "theme", "appearance"}},
	{"keyboard", "Keyboard", "keyboard", []string{"shortcuts", "input", "layout", "typing"}},
	{"mouse", "Mouse & Touchpad", "mouse", []string{"trackpad", "pointer", "scroll"}},
	{"printers", "Printers", "printers", []string{"print", "scanner"}},
	{"privacy", "Privacy", "privacy", []string{"location", "camera access", "screen lock"}},
	{"accounts", "Online Accounts", "online-accounts", []string{"email", "cloud", "sync"}},
	{"users", "Users", "user-accounts", []string{"password", "login", "account"}},
	{"datetime", "Date & Time", "datetime", []string{"clock", "timezone", "calendar"}},
	{"region", "Region & Language", "region", []string{"locale", "language", "formats"}},
	{"accessibility", "Accessibility", "universal-access", []string{"zoom", "screen reader", "contrast", "a11y"}},
	{"apps", "Apps", "applications", []string{"default apps", "permissions", "startup"}},
	{"storage", "Storage", "storage", []string{"disk", "space", "usage"}},
	{"about", "About", "info-overview", []string{"system", "version", "device name", "updates"}},
}

// Pages returns a copy of the built-in catalogue.
func Pages() []Page {
	out := make([]Page, len(builtinPages))
	copy(out, builtinPages)
	return out
}

// Provider serves the settings catalogue.
type Provider struct {
	command string
	pages   []Page
}

// New creates a catalogue provider. command is the settings launcher the
// page panel is appended to (e.g. "gnome-control-center").
func New(command string) *Provider {
	return &Provider{command: strings.TrimSpace(command), pages: Pages()}
}

// Source returns the settings source.
func (p *Provider) Source() domain.SourceKind {
	return domain.SourceSettings
}

// LoadAll returns every page.
func (p *Provider) LoadAll(_ context.Context) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, 0, len(p.pages))
	for _, page := range p.pages {
		out = append(out, p.toCandidate(page))
	}
	return out, nil
}

// Search returns pages whose title or keywords contain query.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	all, _ := p.LoadAll(ctx)
	var out []domain.Candidate
	for _, c := range all {
		if limit > 0 && len(out) >= limit {
			break
		}
		for _, field := range append([]string{c.DisplayText}, c.Keywords...) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (p *Provider) toCandidate(page Page) domain.Candidate {
	target := "settings://" + page.Panel
	if p.command != "" {
		target = p.command + " " + page.Panel
	}
	return domain.Candidate{
		ID:          "settings:" + page.ID,
		Source:      domain.SourceSettings,
		DisplayText: page.Title,
		Keywords:    page.Keywords,
		Detail:      "Settings",
		Target:      target,
	}
}
