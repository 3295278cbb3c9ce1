package interactive

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/swfz/gh-issues/internal/api"
	"github.com/swfz/gh-issues/internal/models"
	"github.com/swfz/gh-issues/internal/parser"
	"github.com/swfz/gh-issues/internal/state"
)

// Service is the part of the API client the TUI drives
type Service interface {
	FetchIssues(ctx context.Context, path models.RepositoryPath, cursor string) (*api.IssuesResult, error)
	ToggleStar(ctx context.Context, repositoryID string, starred bool) (*models.StarState, error)
}

// ServiceFactory builds a Service for a token entered at the gate
type ServiceFactory func(token string) (Service, error)

// Browser opens URLs outside the terminal
type Browser interface {
	Browse(url string) error
}

// Options configures RunTUI
type Options struct {
	Token      string                // Initial token, "" opens the gate
	Path       models.RepositoryPath // Repository to load first
	NewService ServiceFactory
	Browser    Browser
	Logger     *log.Logger
}

// model represents the TUI state
type model struct {
	ctx        context.Context
	newService ServiceFactory
	service    Service
	browser    Browser
	logger     *log.Logger

	token      string          // Token the service was built with
	tokenInput textinput.Model // Token gate input
	gateOpen   bool            // Gate reopened on request
	pathInput  textinput.Model // Repository path input
	editing    bool            // Whether the path input has focus

	view        state.State       // Reduced view state
	pager       state.Pager       // Cursor history
	generations state.Generations // Request stamps

	initCmd tea.Cmd // First fetch, prepared when a token is given

	cursor  int    // Selected issue
	loading bool   // Whether a fetch is in flight
	message string // Status message
	width   int    // Terminal width
	height  int    // Terminal height
	done    bool   // Whether to quit
}

// fetchResultMsg is the outcome of a Repository+Issues query
type fetchResultMsg struct {
	gen    uint64
	result *api.IssuesResult
	err    error
}

// starResultMsg is the outcome of a star mutation
type starResultMsg struct {
	gen          uint64
	repositoryID string
	wasStarred   bool
	star         *models.StarState
	err          error
}

// browseResultMsg is the outcome of opening an issue
type browseResultMsg struct {
	err error
}

func newModel(ctx context.Context, opts Options) model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	tokenInput := textinput.New()
	tokenInput.Placeholder = "ghp_..."
	tokenInput.EchoMode = textinput.EchoPassword
	tokenInput.EchoCharacter = '•'
	tokenInput.Width = 48
	tokenInput.Focus()

	pathInput := textinput.New()
	pathInput.Placeholder = "organization/repository"
	pathInput.SetValue(opts.Path.String())
	pathInput.Width = 48

	m := model{
		ctx:         ctx,
		newService:  opts.NewService,
		browser:     opts.Browser,
		logger:      logger,
		tokenInput:  tokenInput,
		pathInput:   pathInput,
		generations: state.NewGenerations(),
		width:       80,
		height:      24,
	}
	path, cursor := m.pager.Start(opts.Path)

	if opts.Token != "" {
		if err := m.useToken(opts.Token); err != nil {
			m.message = err.Error()
		}
	}
	if !m.gateVisible() {
		m.initCmd = m.fetch(path, cursor)
	}

	return m
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	if m.gateVisible() {
		return textinput.Blink
	}
	return m.initCmd
}

// gateVisible reports whether the token gate blocks the UI
func (m model) gateVisible() bool {
	return m.service == nil || m.view.TokenError || m.gateOpen
}

// useToken builds the service for token
func (m *model) useToken(token string) error {
	service, err := m.newService(token)
	if err != nil {
		return fmt.Errorf("cannot use token: %w", err)
	}
	m.service = service
	m.token = token
	return nil
}

// Update handles messages and updates the model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchResultMsg:
		return m.applyFetch(msg), nil

	case starResultMsg:
		return m.applyStar(msg), nil

	case browseResultMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Cannot open browser: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			return m, tea.Quit
		}
		if m.gateVisible() {
			return m.updateGate(msg)
		}
		if m.editing {
			return m.updatePath(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

// updateGate handles keys while the token gate is shown
func (m model) updateGate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.service != nil && !m.view.TokenError {
			m.gateOpen = false
			return m, nil
		}
		m.done = true
		return m, tea.Quit

	case "enter":
		token := m.tokenInput.Value()
		if token == "" {
			return m, nil
		}
		if err := m.useToken(token); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.gateOpen = false
		m.message = ""
		m.view = state.Reduce(m.view, state.TokenSubmitted{})
		path, cursor := m.pager.Retry()
		return m, m.fetch(path, cursor)
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

// updatePath handles keys while the path input has focus
func (m model) updatePath(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.pathInput.Blur()
		return m, nil

	case "enter":
		path, err := parser.ParsePath(m.pathInput.Value())
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.editing = false
		m.pathInput.Blur()
		m.pathInput.SetValue(path.String())
		m.message = ""
		p, cursor := m.pager.Start(path)
		return m, m.fetch(p, cursor)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// updateBrowse handles keys on the main screen
func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear message on any key press
	m.message = ""

	switch msg.String() {
	case "q", "esc":
		m.done = true
		return m, tea.Quit

	case "/":
		m.editing = true
		return m, m.pathInput.Focus()

	case "t":
		m.gateOpen = true
		m.tokenInput.SetValue("")
		return m, m.tokenInput.Focus()

	case "n":
		path, cursor, ok := m.pager.Next(m.view.Organization)
		if !ok {
			return m, nil
		}
		return m, m.fetch(path, cursor)

	case "p":
		path, cursor, ok := m.pager.Previous()
		if !ok {
			return m, nil
		}
		return m, m.fetch(path, cursor)

	case "r":
		path, cursor := m.pager.Retry()
		return m, m.fetch(path, cursor)

	case "s":
		return m, m.toggleStar()

	case "o", "enter":
		return m, m.openIssue()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.view.Organization.Issues())-1 {
			m.cursor++
		}
	}

	return m, nil
}

// fetch creates a command running the Repository+Issues query
func (m *model) fetch(path models.RepositoryPath, cursor string) tea.Cmd {
	gen := m.generations.Next(state.FamilyFetch)
	m.loading = true
	service, ctx := m.service, m.ctx

	return func() tea.Msg {
		result, err := service.FetchIssues(ctx, path, cursor)
		return fetchResultMsg{gen: gen, result: result, err: err}
	}
}

func (m model) applyFetch(msg fetchResultMsg) model {
	if !m.generations.Current(state.FamilyFetch, msg.gen) {
		m.logger.Printf("dropping stale fetch result (generation %d)", msg.gen)
		return m
	}
	m.loading = false

	if msg.err != nil {
		m.logger.Printf("fetch failed: %v", msg.err)
		m.view = state.Reduce(m.view, state.FetchFailed{Err: msg.err})
		if m.view.TokenError {
			m.tokenInput.SetValue("")
			m.tokenInput.Focus()
		} else {
			m.message = msg.err.Error()
		}
		return m
	}

	m.view = state.Reduce(m.view, state.Fetched{Result: msg.result})
	m.pager.Commit()
	m.cursor = 0
	return m
}

// toggleStar creates a command sending addStar or removeStar based on the
// locally held flag
func (m *model) toggleStar() tea.Cmd {
	id := m.view.RepositoryID()
	if id == "" {
		return nil
	}

	gen := m.generations.Next(state.FamilyStar)
	wasStarred := m.view.Starred
	service, ctx := m.service, m.ctx

	return func() tea.Msg {
		star, err := service.ToggleStar(ctx, id, wasStarred)
		return starResultMsg{gen: gen, repositoryID: id, wasStarred: wasStarred, star: star, err: err}
	}
}

func (m model) applyStar(msg starResultMsg) model {
	if !m.generations.Current(state.FamilyStar, msg.gen) {
		m.logger.Printf("dropping stale star result (generation %d)", msg.gen)
		return m
	}
	if msg.repositoryID != m.view.RepositoryID() {
		m.logger.Printf("dropping star result for %s, showing %s", msg.repositoryID, m.view.RepositoryID())
		return m
	}

	// A failed mutation leaves the local star state unchanged
	if msg.err != nil || msg.star == nil {
		m.logger.Printf("star mutation failed: %v", msg.err)
		return m
	}

	m.view = state.Reduce(m.view, state.StarAction(msg.wasStarred, *msg.star))
	return m
}

// openIssue creates a command opening the selected issue in the browser
func (m *model) openIssue() tea.Cmd {
	issues := m.view.Organization.Issues()
	if m.browser == nil || m.cursor >= len(issues) {
		return nil
	}

	url := issues[m.cursor].URL
	browser := m.browser
	return func() tea.Msg {
		return browseResultMsg{err: browser.Browse(url)}
	}
}

// RunTUI starts the interactive TUI
func RunTUI(ctx context.Context, opts Options) error {
	m := newModel(ctx, opts)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
