package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/ai"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driven/web"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/cli"
	"github.com/custodia-labs/sercha-launcher/internal/connectors"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/core/ranking"
	"github.com/custodia-labs/sercha-launcher/internal/core/services"
	"github.com/custodia-labs/sercha-launcher/internal/logger"
)

// paths overrides storage locations; empty fields use the defaults under
// ~/.sercha-launcher.
type paths struct {
	config  string
	data    string
	prompts string
}

func build(opts cli.Options) (*cli.Services, func(), error) {
	return buildWith(opts, paths{}, connectors.NewFactory())
}

// buildWith wires every service. Ephemeral options keep settings and
// preferences in memory and never touch the home directory.
func buildWith(opts cli.Options, p paths, factory driven.ProviderFactory) (*cli.Services, func(), error) {
	logger.Section("Startup")

	var (
		configStore driven.ConfigStore
		prefs       driven.PreferenceStore
		prompts     driven.PromptStore
		closers     []func() error
	)

	if opts.Ephemeral {
		configStore = memory.NewConfigStore()
		prefs = memory.NewPreferenceStore()
	} else {
		cs, err := file.NewConfigStore(p.config)
		if err != nil {
			return nil, nil, fmt.Errorf("open config: %w", err)
		}
		configStore = cs

		store, err := sqlite.NewStore(p.data)
		if err != nil {
			return nil, nil, fmt.Errorf("open preferences: %w", err)
		}
		prefs = store.PreferenceStore()
		closers = append(closers, store.Close)

		ps, err := file.NewPromptStore(p.prompts)
		if err != nil {
			logger.Warn("prompts unavailable, using built-in framing: %v", err)
		} else {
			prompts = ps
		}
	}

	settingsSvc := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	managers := make(map[domain.SourceKind]driving.SourceSearch, 4)
	var all []driving.SourceSearch
	for _, kind := range factory.SupportedSources() {
		provider, err := factory.Create(kind, settings.Providers)
		if err != nil {
			logger.Warn("%s provider unavailable: %v", kind, err)
			continue
		}
		order := ranking.ByName
		if kind == domain.SourceApps && settings.Search.SortAppsByUsage {
			order = ranking.ByUsage
		}
		m := services.NewSourceManager(provider, prefs, services.SourceManagerOptions{
			Fuzzy:      settings.Search.FuzzyFor(kind),
			Order:      order,
			LiveSearch: kind == domain.SourceFiles,
		})
		managers[kind] = m
		all = append(all, m)
		logger.Debug("%s provider ready", kind)
	}

	apps, ok := managers[domain.SourceApps]
	if !ok {
		return nil, nil, fmt.Errorf("apps provider: %w", domain.ErrProviderUnavailable)
	}
	var secondarySources []driving.SourceSearch
	for _, kind := range []domain.SourceKind{domain.SourceContacts, domain.SourceFiles, domain.SourceSettings} {
		if m, ok := managers[kind]; ok {
			secondarySources = append(secondarySources, m)
		}
	}

	var suggestions driven.SuggestionFetcher
	if client, err := web.NewSuggestionClient(web.SuggestionConfig{
		Endpoint:   settings.Suggestions.Endpoint,
		MaxResults: settings.Suggestions.Count,
	}); err != nil {
		logger.Warn("web suggestions disabled: %v", err)
	} else {
		suggestions = client
	}

	secondary := services.NewSecondarySearchService(apps, secondarySources, suggestions,
		services.SecondaryConfigFrom(settings))
	engines := services.NewEngineService(settingsSvc)

	svc := &cli.Services{
		Search:      services.NewLauncherService(apps, secondary, engines, settingsSvc, suggestions),
		Secondary:   secondary,
		Engines:     engines,
		Settings:    settingsSvc,
		Preferences: services.NewPreferenceService(prefs, all...),
		Answer:      services.NewAnswerService(&answerFetcher{settings: settingsSvc, prompts: prompts}, settingsSvc),
		Scheduler:   services.NewScheduler(all, services.DefaultRefreshInterval),
		Actions:     services.NewResultActionService(),
		Sources:     managers,
	}

	cleanup := func() {
		secondary.Close()
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("shutdown: %v", err)
			}
		}
	}
	return svc, cleanup, nil
}

// answerFetcher builds the answer client from the current settings on
// each call, so a key stored after startup takes effect.
type answerFetcher struct {
	settings driving.SettingsService
	prompts  driven.PromptStore

	mu     sync.Mutex
	key    domain.AnswerSettings
	client *web.AnswerClient
}

func (f *answerFetcher) FetchAnswer(ctx context.Context, query, extra string) (string, error) {
	client, err := f.current()
	if err != nil {
		return "", err
	}
	return client.FetchAnswer(ctx, query, extra)
}

func (f *answerFetcher) current() (*web.AnswerClient, error) {
	settings, err := f.settings.Get()
	if err != nil {
		return nil, err
	}
	cfg := settings.Answer

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.client != nil && f.key == cfg {
		return f.client, nil
	}

	client, err := ai.NewAnswerClient(cfg, f.prompts)
	if err != nil {
		return nil, err
	}
	f.key, f.client = cfg, client
	return client, nil
}
