package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-launcher/internal/connectors/catalog"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/core/ranking"
	"github.com/custodia-labs/sercha-launcher/internal/core/services"
)

// staticProvider serves a fixed candidate list.
type staticProvider struct {
	kind  domain.SourceKind
	items []domain.Candidate
}

func (p *staticProvider) Source() domain.SourceKind { return p.kind }

func (p *staticProvider) LoadAll(context.Context) ([]domain.Candidate, error) {
	return p.items, nil
}

func (p *staticProvider) Search(_ context.Context, query string, limit int) ([]domain.Candidate, error) {
	var out []domain.Candidate
	for _, c := range p.items {
		if strings.Contains(strings.ToLower(c.DisplayText), strings.ToLower(query)) {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// stubFetcher answers every question with the same text.
type stubFetcher struct {
	answer string
	err    error
}

func (f *stubFetcher) FetchAnswer(context.Context, string, string) (string, error) {
	return f.answer, f.err
}

var testApps = []domain.Candidate{
	{ID: "firefox.desktop", Source: domain.SourceApps, DisplayText: "Firefox", Target: "firefox %u"},
	{ID: "nautilus.desktop", Source: domain.SourceApps, DisplayText: "Files", Target: "nautilus"},
	{ID: "maps.desktop", Source: domain.SourceApps, DisplayText: "Maps", Target: "gnome-maps"},
}

var testContacts = []domain.Candidate{
	{ID: "c1", Source: domain.SourceContacts, DisplayText: "Mary Major", Detail: "+44 20 7946 0000", Target: "tel:+442079460000"},
}

// setupTestServices wires real services over in-memory stores and fixed
// providers. The returned func restores the previous globals.
func setupTestServices() func() {
	prev := Services{
		Search: searchService, Secondary: secondaryService, Engines: engineService,
		Settings: settingsService, Preferences: preferenceService, Answer: answerService,
		Scheduler: schedulerService, Actions: actionService, Sources: sourceManagers,
	}

	settings := services.NewSettingsService(memory.NewConfigStore(), nil)
	_ = settings.Set("permissions.contacts", "true")
	prefs := memory.NewPreferenceStore()

	apps := services.NewSourceManager(&staticProvider{kind: domain.SourceApps, items: testApps}, prefs,
		services.SourceManagerOptions{Fuzzy: domain.DefaultFuzzyConfig(), Order: ranking.ByName})
	contacts := services.NewSourceManager(&staticProvider{kind: domain.SourceContacts, items: testContacts}, prefs,
		services.SourceManagerOptions{Fuzzy: domain.DefaultFuzzyConfig()})
	pages := services.NewSourceManager(catalog.New("gnome-control-center"), prefs,
		services.SourceManagerOptions{Fuzzy: domain.DefaultFuzzyConfig()})

	current, _ := settings.Get()
	secondary := services.NewSecondarySearchService(apps,
		[]driving.SourceSearch{contacts, pages}, nil, services.SecondaryConfigFrom(current))
	engines := services.NewEngineService(settings)

	SetServices(&Services{
		Search:      services.NewLauncherService(apps, secondary, engines, settings, nil),
		Secondary:   secondary,
		Engines:     engines,
		Settings:    settings,
		Preferences: services.NewPreferenceService(prefs, apps, contacts, pages),
		Answer:      services.NewAnswerService(&stubFetcher{answer: "Paris"}, settings),
		Actions:     &recordingActions{},
		Sources: map[domain.SourceKind]driving.SourceSearch{
			domain.SourceApps:     apps,
			domain.SourceContacts: contacts,
			domain.SourceSettings: pages,
		},
	})

	return func() {
		secondary.Close()
		SetServices(&prev)
	}
}

// execute runs the root command with args and returns its combined output.
// Flags are reset first so values do not leak between tests.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

// executeWithInput is execute with stdin set to input.
func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// recordingActions records opens and copies instead of running anything.
type recordingActions struct {
	opened []string
	copied []string
	err    error
}

func (r *recordingActions) Open(_ context.Context, source domain.SourceKind, target string) error {
	r.opened = append(r.opened, string(source)+":"+target)
	return r.err
}

func (r *recordingActions) CopyToClipboard(_ context.Context, text string) error {
	r.copied = append(r.copied, text)
	return r.err
}
