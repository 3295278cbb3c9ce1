package interactive

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swfz/gh-issues/internal/api"
	"github.com/swfz/gh-issues/internal/formatter"
	"github.com/swfz/gh-issues/internal/models"
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2)
)

// View renders the UI
func (m model) View() string {
	if m.done {
		return "Exiting...\n"
	}

	if m.gateVisible() {
		return m.gateView()
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(" gh-issues ") + "\n")
	b.WriteString(m.helpLine() + "\n\n")

	// Path bar
	if m.editing {
		b.WriteString("Show open issues for https://github.com/" + m.pathInput.View() + "\n\n")
	} else {
		b.WriteString(dimStyle.Render("Show open issues for https://github.com/"+m.pager.Target().String()) + "\n\n")
	}

	if m.loading {
		b.WriteString(dimStyle.Render("Loading...") + "\n\n")
	}

	if m.message != "" {
		b.WriteString(errorStyle.Render("✗ "+m.message) + "\n\n")
	}

	if len(m.view.Errors) > 0 {
		b.WriteString(errorStyle.Render("Something went wrong: ") + api.JoinMessages(m.view.Errors) + "\n\n")
	}

	org := m.view.Organization
	if org == nil || org.Repository == nil {
		b.WriteString(dimStyle.Render("No info yet....") + "\n")
		return b.String()
	}

	b.WriteString(m.repositoryView(org))
	return b.String()
}

// gateView renders the token dialog
func (m model) gateView() string {
	label := "Gimme PAT"
	if m.view.TokenError {
		label = errorStyle.Render("PAT error! Gimme your real PAT")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(" GitHub PAT ") + "\n\n")
	b.WriteString("To use this app, please enter your GitHub Personal Access Token\n\n")
	b.WriteString(label + "\n")
	b.WriteString(m.tokenInput.View() + "\n\n")

	if m.message != "" {
		b.WriteString(errorStyle.Render("✗ "+m.message) + "\n\n")
	}

	ok := "enter: Ok"
	if m.tokenInput.Value() == "" {
		ok = dimStyle.Render(ok)
	}
	b.WriteString(ok + dimStyle.Render("  esc: cancel") + "\n")

	return dialogStyle.Render(b.String()) + "\n"
}

// repositoryView renders the organization, repository and issue page
func (m model) repositoryView(org *models.OrganizationSnapshot) string {
	var b strings.Builder
	repo := org.Repository

	b.WriteString(fmt.Sprintf("Issues from organization %s %s\n", normalStyle.Bold(true).Render(org.Name), dimStyle.Render(org.URL)))
	b.WriteString(fmt.Sprintf("In repository %s %s  %s\n\n",
		normalStyle.Bold(true).Render(repo.Name), dimStyle.Render(repo.URL),
		starStyle.Render(formatter.FormatStars(m.view.Starred, m.view.StarCount))))

	issues := org.Issues()
	if len(issues) == 0 {
		b.WriteString(dimStyle.Render("  No open issues") + "\n")
	}

	titleWidth := m.width - 30
	if titleWidth < 30 {
		titleWidth = 30 // Minimum width for narrow terminals
	}

	for i, issue := range issues {
		line := fmt.Sprintf("%-*s  %s", titleWidth, formatter.TruncateWithEllipsis(issue.Title, titleWidth),
			formatter.FormatReactions(issue.ReactionList()))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(normalStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("  page %d · %d of %d open issues",
		m.pager.Page(), len(issues), repo.Issues.TotalCount)) + "\n")

	return b.String()
}

// helpLine renders key hints, dimming actions that are disabled
func (m model) helpLine() string {
	next := "n next issues"
	if !m.view.HasNextPage() {
		next = dimStyle.Strikethrough(true).Render(next)
	}
	prev := "p previous"
	if !m.pager.HasPrevious() {
		prev = dimStyle.Strikethrough(true).Render(prev)
	}
	star := "s star"
	if m.view.Starred {
		star = "s unstar"
	}

	return dimStyle.Render("  ↑/↓ move · / search · ") + next + dimStyle.Render(" · ") + prev +
		dimStyle.Render(" · "+star+" · o open · r reload · t token · q quit")
}
