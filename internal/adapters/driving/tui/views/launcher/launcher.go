// Package launcher provides the launcher view: a query input over apps,
// contacts, files, settings, web suggestions and engine rows.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-launcher/internal/core/ranking"
)

// Section titles in display order.
const (
	SectionPinned      = "Pinned"
	SectionApps        = "Apps"
	SectionContacts    = "Contacts"
	SectionFiles       = "Files"
	SectionSettings    = "Settings"
	SectionSuggestions = "Suggestions"
	SectionWeb         = "Web"
)

// Deps are the services the view uses. Apps, Secondary and Engines are
// required; the rest may be nil.
type Deps struct {
	Apps        driving.SourceSearch
	Secondary   driving.SecondarySearch
	Engines     driving.EngineService
	Answer      driving.AnswerService
	Preferences driving.PreferenceService
	Settings    driving.SettingsService
	Actions     driving.ResultActionService
}

// View is the launcher screen.
type View struct {
	deps   Deps
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	input *input.QueryInput
	list  *list.ItemList
	bar   *status.Bar

	states      <-chan domain.SecondaryState
	unsubscribe func()

	query     string
	version   uint64
	limit     int
	apps      []domain.Match
	pinned    []domain.Candidate
	secondary domain.SecondaryState
	shortcut  *domain.ShortcutMatch
	answer    domain.AnswerState

	width  int
	height int
}

// NewView creates the launcher view.
func NewView(s *styles.Styles, deps Deps) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	limit := domain.DefaultResultLimit
	if deps.Settings != nil {
		if settings, err := deps.Settings.Get(); err == nil && settings.Search.ResultLimit > 0 {
			limit = settings.Search.ResultLimit
		}
	}

	return &View{
		deps:   deps,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		input:  input.NewQueryInput(s),
		list:   list.NewItemList(s),
		bar:    status.NewBar(s, km),
		limit:  limit,
	}
}

// WithContext sets the context used for searches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init subscribes to secondary search updates and loads pinned apps.
func (v *View) Init() tea.Cmd {
	if v.states == nil {
		v.states, v.unsubscribe = v.deps.Secondary.Subscribe()
	}
	return tea.Batch(v.input.Init(), v.bar.Init(), v.waitForState(), v.loadPinned())
}

// Close stops the subscription.
func (v *View) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}

// Update handles messages.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.SecondaryUpdated:
		// States from superseded queries are dropped; only the query the
		// input currently shows may change the list.
		if msg.State.Version == v.version {
			v.secondary = msg.State
			v.rebuild(false)
		}
		return v, v.waitForState()

	case messages.PinnedLoaded:
		v.pinned = msg.Pinned
		v.rebuild(false)
		return v, nil

	case messages.AnswerUpdated:
		if msg.State.Query == v.answer.Query {
			v.answer = msg.State
		}
		return v, nil

	case messages.Launched:
		if msg.Err != nil {
			v.showError(msg.Err)
			return v, nil
		}
		v.bar.SetMessage("Opened " + msg.Title)
		return v, nil

	case messages.Copied:
		if msg.Err != nil {
			v.showError(msg.Err)
			return v, nil
		}
		v.bar.SetMessage("Copied " + msg.Title)
		return v, nil

	case messages.PreferenceChanged:
		if msg.Err != nil {
			v.showError(msg.Err)
			return v, nil
		}
		v.bar.SetMessage(msg.Action + " " + msg.Title)
		return v, v.refreshResults()

	case messages.ErrorOccurred:
		v.showError(msg.Err)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.bar, cmd = v.bar.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
		return v, nil
	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
		return v, nil
	case keymap.Matches(k, v.keymap.Launch):
		return v, v.activate()
	case keymap.Matches(k, v.keymap.Pin):
		return v, v.togglePin()
	case keymap.Matches(k, v.keymap.Hide):
		return v, v.hide()
	case keymap.Matches(k, v.keymap.Ask):
		return v, v.ask(v.query)
	case keymap.Matches(k, v.keymap.Retry):
		return v, v.retry()
	case keymap.Matches(k, v.keymap.Copy):
		return v, v.copySelection()
	case keymap.Matches(k, v.keymap.Clear):
		if v.input.Value() == "" {
			return v, nil
		}
		v.input.Reset()
		return v, v.setQuery("")
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if after := v.input.Value(); after != before {
		return v, tea.Batch(cmd, v.setQuery(after))
	}
	return v, cmd
}

// setQuery ranks apps synchronously and hands the query to the debounced
// secondary search.
func (v *View) setQuery(raw string) tea.Cmd {
	v.query = ranking.NormalizeQueryWhitespace(raw)
	v.bar.SetMessage("")
	v.version = v.deps.Secondary.Perform(v.ctx, v.query)
	v.secondary = domain.SecondaryState{Version: v.version, Query: v.query, Phase: domain.PhaseDebouncing}

	v.shortcut = nil
	v.input.SetHint("")
	if m, ok := v.deps.Engines.ResolveShortcut(v.query); ok {
		v.shortcut = m
		v.input.SetHint("→ " + m.Engine.DisplayName())
	}

	if v.query == "" {
		v.apps = nil
		v.rebuild(true)
		return v.loadPinned()
	}
	v.apps = v.deps.Apps.DeriveMatches(v.ctx, v.query, v.limit)
	v.rebuild(true)
	return nil
}

// refreshResults re-ranks after a preference change.
func (v *View) refreshResults() tea.Cmd {
	if v.query == "" {
		return v.loadPinned()
	}
	v.apps = v.deps.Apps.DeriveMatches(v.ctx, v.query, v.limit)
	v.rebuild(false)
	return v.loadPinned()
}

func (v *View) rebuild(resetSelection bool) {
	v.list.SetRows(BuildRows(v.query, v.apps, v.pinned, v.secondary, v.shortcut, v.webRows()))
	if resetSelection {
		v.list.ResetSelection()
	}

	total := len(v.apps) + v.secondary.Results.Total()
	v.bar.SetResultCount(total)
	switch {
	case v.query == "":
		v.bar.SetState(status.StateReady)
	case total > 0:
		v.bar.SetState(status.StateResults)
	default:
		v.bar.SetState(status.StateFor(v.secondary.Phase))
	}
}

// webRows returns the engine rows for the current query.
func (v *View) webRows() []list.Row {
	if v.query == "" {
		return nil
	}

	if v.shortcut != nil {
		if v.shortcut.Engine == domain.EngineDirectAnswer {
			return []list.Row{askRow(v.shortcut.Query)}
		}
		u, err := v.deps.Engines.BuildSearchURL(v.shortcut.Query, v.shortcut.Engine, "")
		if err != nil {
			return nil
		}
		return []list.Row{webRow(v.shortcut.Engine, v.shortcut.Query, u)}
	}

	var rows []list.Row
	def := v.deps.Engines.DefaultEngine()
	if u, err := v.deps.Engines.BuildSearchURL(v.query, def, ""); err == nil {
		rows = append(rows, webRow(def, v.query, u))
	}
	if v.deps.Answer != nil {
		rows = append(rows, askRow(v.query))
	}
	return rows
}

func webRow(engine domain.SearchEngine, query, u string) list.Row {
	return list.Row{
		Section: SectionWeb,
		Kind:    list.RowWeb,
		Title:   fmt.Sprintf("Search %s for %q", engine.DisplayName(), query),
		URL:     u,
	}
}

func askRow(query string) list.Row {
	return list.Row{
		Section: SectionWeb,
		Kind:    list.RowAsk,
		Title:   fmt.Sprintf("Ask %q", query),
	}
}

// BuildRows lays out the list for a query. A blank query shows only the
// pinned apps. Secondary results are used only when they belong to query.
func BuildRows(
	query string,
	apps []domain.Match,
	pinned []domain.Candidate,
	secondary domain.SecondaryState,
	shortcut *domain.ShortcutMatch,
	web []list.Row,
) []list.Row {
	var rows []list.Row

	if query == "" {
		for _, c := range pinned {
			rows = append(rows, list.Row{
				Section: SectionPinned, Kind: list.RowItem,
				Title: c.DisplayText, Detail: c.Detail, Candidate: c, Pinned: true,
			})
		}
		return rows
	}

	pinnedIDs := make(map[string]struct{}, len(pinned))
	for _, c := range pinned {
		pinnedIDs[c.ID] = struct{}{}
	}
	rows = appendMatches(rows, SectionApps, apps, pinnedIDs)

	if secondary.Query == query {
		rows = appendMatches(rows, SectionContacts, secondary.Results.Contacts, nil)
		rows = appendMatches(rows, SectionFiles, secondary.Results.Files, nil)
		rows = appendMatches(rows, SectionSettings, secondary.Results.Settings, nil)
		if shortcut == nil {
			for _, s := range secondary.Suggestions {
				rows = append(rows, list.Row{Section: SectionSuggestions, Kind: list.RowSuggestion, Title: s})
			}
		}
	}

	return append(rows, web...)
}

func appendMatches(rows []list.Row, section string, matches []domain.Match, pinned map[string]struct{}) []list.Row {
	for i := range matches {
		m := matches[i]
		_, isPinned := pinned[m.Candidate.ID]
		rows = append(rows, list.Row{
			Section:   section,
			Kind:      list.RowItem,
			Title:     m.Candidate.DisplayText,
			Detail:    m.Candidate.Detail,
			Candidate: m.Candidate,
			Match:     &m,
			Pinned:    isPinned,
		})
	}
	return rows
}

// activate opens the selected row.
func (v *View) activate() tea.Cmd {
	row := v.list.SelectedRow()
	if row == nil {
		return nil
	}

	switch row.Kind {
	case list.RowSuggestion:
		v.input.SetValue(row.Title)
		return v.setQuery(row.Title)
	case list.RowAsk:
		q := v.query
		if v.shortcut != nil {
			q = v.shortcut.Query
		}
		return v.ask(q)
	case list.RowWeb:
		return v.open("", row.Title, row.URL, "")
	case list.RowItem:
		return v.open(row.Candidate.Source, row.Candidate.DisplayText, row.Candidate.Target, row.Candidate.ID)
	}
	return nil
}

func (v *View) open(source domain.SourceKind, title, target, id string) tea.Cmd {
	ctx, prefs, actions := v.ctx, v.deps.Preferences, v.deps.Actions
	return func() tea.Msg {
		if prefs != nil && id != "" {
			if err := prefs.RecordLaunch(ctx, source, id); err != nil {
				return messages.Launched{Title: title, Err: err}
			}
		}
		if actions != nil {
			if err := actions.Open(ctx, source, target); err != nil {
				return messages.Launched{Title: title, Err: fmt.Errorf("open %s: %w", title, err)}
			}
		}
		return messages.Launched{Title: title}
	}
}

// copySelection copies the shown answer, or else the selected row's target.
func (v *View) copySelection() tea.Cmd {
	if v.deps.Actions == nil {
		return nil
	}

	var title, text string
	switch row := v.list.SelectedRow(); {
	case v.answer.Answer != "" && !v.answer.Loading:
		title, text = "answer", v.answer.Answer
	case row == nil:
		return nil
	case row.Kind == list.RowItem:
		title, text = row.Candidate.DisplayText, row.Candidate.Target
	case row.Kind == list.RowWeb:
		title, text = "link", row.URL
	default:
		title, text = row.Title, row.Title
	}

	ctx, actions := v.ctx, v.deps.Actions
	return func() tea.Msg {
		return messages.Copied{Title: title, Err: actions.CopyToClipboard(ctx, text)}
	}
}

func (v *View) togglePin() tea.Cmd {
	row := v.list.SelectedRow()
	if row == nil || row.Kind != list.RowItem || v.deps.Preferences == nil {
		return nil
	}
	ctx, prefs, c, pinned := v.ctx, v.deps.Preferences, row.Candidate, row.Pinned
	return func() tea.Msg {
		if pinned {
			return messages.PreferenceChanged{Action: "Unpinned", Title: c.DisplayText,
				Err: prefs.Unpin(ctx, c.Source, c.ID)}
		}
		return messages.PreferenceChanged{Action: "Pinned", Title: c.DisplayText,
			Err: prefs.Pin(ctx, c.Source, c.ID)}
	}
}

func (v *View) hide() tea.Cmd {
	row := v.list.SelectedRow()
	if row == nil || row.Kind != list.RowItem || v.deps.Preferences == nil {
		return nil
	}
	scope := domain.HiddenFromResults
	if row.Pinned && v.query == "" {
		scope = domain.HiddenFromSuggestions
	}
	ctx, prefs, c := v.ctx, v.deps.Preferences, row.Candidate
	return func() tea.Msg {
		return messages.PreferenceChanged{Action: "Hid", Title: c.DisplayText,
			Err: prefs.Hide(ctx, c.Source, scope, c.ID)}
	}
}

func (v *View) ask(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if v.deps.Answer == nil || query == "" {
		return nil
	}
	v.answer = domain.AnswerState{Query: query, Loading: true}
	ctx, answer := v.ctx, v.deps.Answer
	return func() tea.Msg {
		return messages.AnswerUpdated{State: answer.Ask(ctx, query)}
	}
}

func (v *View) retry() tea.Cmd {
	if v.deps.Answer == nil || !v.answer.Retryable() {
		return nil
	}
	v.answer = domain.AnswerState{Query: v.answer.Query, Loading: true}
	ctx, answer := v.ctx, v.deps.Answer
	return func() tea.Msg {
		return messages.AnswerUpdated{State: answer.Retry(ctx)}
	}
}

func (v *View) loadPinned() tea.Cmd {
	ctx, apps := v.ctx, v.deps.Apps
	return func() tea.Msg {
		return messages.PinnedLoaded{Pinned: apps.Pinned(ctx, nil)}
	}
}

// waitForState blocks on the subscription and delivers the next state.
func (v *View) waitForState() tea.Cmd {
	states := v.states
	if states == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-states
		if !ok {
			return nil
		}
		return messages.SecondaryUpdated{State: st}
	}
}

func (v *View) showError(err error) {
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
}

// View renders the launcher.
func (v *View) View() string {
	parts := []string{v.input.View(), v.list.View()}
	if a := v.renderAnswer(); a != "" {
		parts = append(parts, a)
	}
	body := lipgloss.JoinVertical(lipgloss.Left, parts...)

	bar := v.bar.View()
	if v.height > 0 {
		gap := v.height - lipgloss.Height(body) - lipgloss.Height(bar)
		if gap > 0 {
			body += strings.Repeat("\n", gap)
		}
	}
	return body + "\n" + bar
}

func (v *View) renderAnswer() string {
	a := v.answer
	switch {
	case a.Query == "":
		return ""
	case a.Loading:
		return v.styles.Answer.Render(v.styles.Muted.Render("Asking..."))
	case a.Err != nil:
		text := "Answer failed: " + a.Err.Error()
		if errors.Is(a.Err, domain.ErrAnswerUnavailable) {
			text = "Direct answers need an API key (sercha-launcher settings answer-key)"
		} else if a.Retryable() {
			text += "  (ctrl+r to retry)"
		}
		return v.styles.Answer.Render(v.styles.Error.Render(text))
	}
	return v.styles.Answer.Render(a.Answer)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.bar.SetWidth(width)
	// input (3) + status bar (1) + answer panel (3)
	v.list.SetDimensions(width, height-7)
}

// Query returns the normalised query.
func (v *View) Query() string {
	return v.query
}

// Rows returns the current rows.
func (v *View) Rows() []list.Row {
	return v.list.Rows()
}

// Answer returns the latest answer state.
func (v *View) Answer() domain.AnswerState {
	return v.answer
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.bar
}
