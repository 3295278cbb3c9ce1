package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/go-gh/v2/pkg/browser"
	"github.com/cli/go-gh/v2/pkg/term"

	"github.com/swfz/gh-issues/internal/api"
	"github.com/swfz/gh-issues/internal/formatter"
	"github.com/swfz/gh-issues/internal/interactive"
	"github.com/swfz/gh-issues/internal/models"
	"github.com/swfz/gh-issues/internal/parser"
	"github.com/swfz/gh-issues/internal/state"
)

// TokenPrompter asks the user for a token. rejected is true after the
// previous token was refused.
type TokenPrompter func(rejected bool) (string, error)

// App encapsulates the application logic
type App struct {
	config *Config
	stdout io.Writer
	logger *log.Logger
	prompt TokenPrompter
}

// New creates a new application instance
func New(config *Config, stdout io.Writer, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var prompt TokenPrompter
	if term.IsTerminal(os.Stdin) {
		prompt = interactive.PromptToken
	}

	return &App{
		config: config,
		stdout: stdout,
		logger: logger,
		prompt: prompt,
	}
}

// newClient creates an API client for token
func (a *App) newClient(token string, logger *log.Logger) (*api.Client, error) {
	return api.NewClient(api.Options{
		Token:    token,
		Endpoint: a.config.Endpoint,
		Timeout:  a.config.Timeout,
		Logger:   logger,
	})
}

// withClient runs fn with a client, prompting for a token when none is
// configured and again each time the token is rejected
func (a *App) withClient(fn func(*api.Client) error) error {
	token := a.config.Token
	rejected := false

	for {
		if token == "" {
			if a.prompt == nil {
				return fmt.Errorf("no token: pass --token, set GITHUB_TOKEN or run gh auth login: %w", api.ErrInvalidToken)
			}
			t, err := a.prompt(rejected)
			if err != nil {
				return err
			}
			token = t
		}

		client, err := a.newClient(token, a.logger)
		if err != nil {
			return err
		}

		err = fn(client)
		if err == nil || !errors.Is(err, api.ErrInvalidToken) || a.prompt == nil {
			return err
		}

		a.logger.Printf("token rejected: %v", err)
		token = ""
		rejected = true
	}
}

// Browse runs the interactive TUI on path ("" = configured default)
func (a *App) Browse(ctx context.Context, path string) error {
	repoPath, err := a.parsePath(path)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so debug output goes to a file
	logger := log.New(io.Discard, "", 0)
	if a.config.LogFile != "" {
		f, err := tea.LogToFile(a.config.LogFile, "")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = log.New(f, "[DEBUG] ", log.LstdFlags)
	}

	return interactive.RunTUI(ctx, interactive.Options{
		Token: a.config.Token,
		Path:  repoPath,
		NewService: func(token string) (interactive.Service, error) {
			client, err := a.newClient(token, logger)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		Browser: browser.New("", a.stdout, os.Stderr),
		Logger:  logger,
	})
}

// ListIssues prints one page of open issues
func (a *App) ListIssues(ctx context.Context, path, after string) error {
	repoPath, err := a.parsePath(path)
	if err != nil {
		return err
	}

	a.logger.Printf("Fetching open issues of %s (after %q)", repoPath, after)

	var result *api.IssuesResult
	err = a.withClient(func(client *api.Client) error {
		var fetchErr error
		result, fetchErr = client.FetchIssues(ctx, repoPath, after)
		return fetchErr
	})
	if err != nil {
		return fmt.Errorf("failed to fetch issues: %w", err)
	}

	if a.config.Output != formatter.FormatTable {
		return formatter.Encode(a.stdout, a.config.Output, result)
	}

	formatter.RenderIssues(a.stdout, result)
	return nil
}

// ToggleStar fetches the repository and flips its star state
func (a *App) ToggleStar(ctx context.Context, path string) error {
	repoPath, err := a.parsePath(path)
	if err != nil {
		return err
	}

	var view state.State
	err = a.withClient(func(client *api.Client) error {
		result, err := client.FetchIssues(ctx, repoPath, "")
		if err != nil {
			return err
		}
		view = state.Reduce(view, state.Fetched{Result: result})

		id := view.RepositoryID()
		if id == "" {
			return fmt.Errorf("repository %s not found: %s", repoPath, api.JoinMessages(view.Errors))
		}

		a.logger.Printf("Toggling star on %s (starred=%v)", repoPath, view.Starred)
		star, err := client.ToggleStar(ctx, id, view.Starred)
		if err != nil {
			return err
		}
		view = state.Reduce(view, state.StarAction(view.Starred, *star))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to toggle star: %w", err)
	}

	if a.config.Output != formatter.FormatTable {
		return formatter.Encode(a.stdout, a.config.Output, models.StarState{
			ViewerHasStarred: view.Starred,
			StargazerCount:   view.StarCount,
		})
	}

	verb := "Unstarred"
	if view.Starred {
		verb = "Starred"
	}
	fmt.Fprintf(a.stdout, "%s %s  %s\n", verb, repoPath, formatter.FormatStars(view.Starred, view.StarCount))
	return nil
}

// Quota prints the viewer login and the remaining GraphQL quota
func (a *App) Quota(ctx context.Context) error {
	var login string
	var info *api.RateLimitInfo

	err := a.withClient(func(client *api.Client) error {
		var err error
		if login, err = client.Viewer(ctx); err != nil {
			return err
		}
		info, err = client.CheckRateLimit(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to check quota: %w", err)
	}

	if a.config.Output != formatter.FormatTable {
		return formatter.Encode(a.stdout, a.config.Output, struct {
			Login     string             `json:"login" yaml:"login"`
			RateLimit *api.RateLimitInfo `json:"rateLimit" yaml:"rateLimit"`
		}{login, info})
	}

	fmt.Fprintf(a.stdout, "Signed in as %s\n", login)
	fmt.Fprintf(a.stdout, "GraphQL quota: %d/%d remaining, resets at %s\n",
		info.Remaining, info.Limit, info.ResetAt.Local().Format("15:04"))
	return nil
}

// parsePath parses path, falling back to the configured default
func (a *App) parsePath(path string) (models.RepositoryPath, error) {
	if path == "" {
		path = a.config.Path
	}
	return parser.ParsePath(path)
}
