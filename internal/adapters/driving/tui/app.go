// Package tui implements the interactive terminal interface for
// searching video moments.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driving"
)

// Ports holds the driving services the TUI needs.
type Ports struct {
	Search driving.SearchService
}

// searchResultsMsg carries successful search results.
type searchResultsMsg struct {
	results []domain.SearchResult
}

// searchErrMsg carries a failed search.
type searchErrMsg struct {
	err error
}

// App is the root bubbletea model.
type App struct {
	ports *Ports
	ctx   context.Context

	input     textinput.Model
	spinner   spinner.Model
	mode      domain.QueryMode
	results   []domain.SearchResult
	cursor    int
	searching bool
	searched  bool
	err       error
}

// NewApp creates the TUI application model.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil || ports.Search == nil {
		return nil, errors.New("tui: search service is required")
	}

	input := textinput.New()
	input.Placeholder = "Describe a scene or quote spoken words..."
	input.Focus()
	input.CharLimit = 256
	input.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		input:   input,
		spinner: spin,
		mode:    domain.QueryModeVisual,
	}, nil
}

// WithContext sets the context used for searches.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "tab":
			a.toggleMode()
			return a, nil
		case "enter":
			return a, a.startSearch()
		case "up", "ctrl+k":
			if a.cursor > 0 {
				a.cursor--
			}
			return a, nil
		case "down", "ctrl+j":
			if a.cursor < len(a.results)-1 {
				a.cursor++
			}
			return a, nil
		}

	case searchResultsMsg:
		a.searching = false
		a.searched = true
		a.results = msg.results
		a.cursor = 0
		a.err = nil
		return a, nil

	case searchErrMsg:
		a.searching = false
		a.searched = true
		a.results = nil
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if !a.searching {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// toggleMode flips between visual and speech search.
func (a *App) toggleMode() {
	if a.mode == domain.QueryModeVisual {
		a.mode = domain.QueryModeSpeech
	} else {
		a.mode = domain.QueryModeVisual
	}
}

// startSearch dispatches the current query, if any.
func (a *App) startSearch() tea.Cmd {
	text := strings.TrimSpace(a.input.Value())
	if text == "" || a.searching {
		return nil
	}

	a.searching = true
	a.err = nil

	query := domain.Query{Mode: a.mode, Text: text}
	search := func() tea.Msg {
		results, err := a.ports.Search.Search(a.ctx, query, domain.SearchOptions{SignPlayback: true})
		if err != nil {
			return searchErrMsg{err: err}
		}
		return searchResultsMsg{results: results}
	}

	return tea.Batch(a.spinner.Tick, search)
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Clipseek"))
	b.WriteString("\n")
	b.WriteString(modeStyle.Render(fmt.Sprintf("Mode: %s", a.mode.Description())))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	switch {
	case a.searching:
		b.WriteString(a.spinner.View())
		b.WriteString(" Searching...")
	case a.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Search failed: %v", a.err)))
	case a.searched && len(a.results) == 0:
		b.WriteString("No results found.")
	default:
		a.renderResults(&b)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter search · tab mode · ↑/↓ navigate · esc quit"))
	b.WriteString("\n")

	return b.String()
}

// renderResults writes the result list in the order received.
func (a *App) renderResults(b *strings.Builder) {
	for i, result := range a.results {
		line := fmt.Sprintf("[%d] %s at %s (%.2f)", i+1, result.VideoID, result.Best, result.Relevance)
		if i == a.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(resultStyle.Render("  " + line))
		}
		b.WriteString("\n")

		if i == a.cursor {
			b.WriteString(detailStyle.Render(fmt.Sprintf("Segment: %s - %s", result.Start, result.End)))
			b.WriteString("\n")
			if result.PlaybackURL != "" {
				b.WriteString(playbackStyle.Render("Play: " + result.PlaybackURL))
				b.WriteString("\n")
			}
		}
	}
}
