package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/swfz/gh-issues/internal/api"
	"github.com/swfz/gh-issues/internal/models"
)

// RenderIssues writes the organization header, any GraphQL errors and the
// issue table for one page
func RenderIssues(w io.Writer, result *api.IssuesResult) {
	if len(result.Errors) > 0 {
		fmt.Fprintf(w, "Something went wrong: %s\n", api.JoinMessages(result.Errors))
	}

	org := result.Organization
	if org == nil || org.Repository == nil {
		fmt.Fprintln(w, "No info yet....")
		return
	}
	repo := org.Repository

	fmt.Fprintf(w, "Issues from organization %s (%s)\n", org.Name, org.URL)
	fmt.Fprintf(w, "In repository %s (%s)  %s\n\n", repo.Name, repo.URL, FormatStars(repo.ViewerHasStarred, repo.Stargazers.TotalCount))

	issues := org.Issues()
	if len(issues) == 0 {
		fmt.Fprintln(w, "No open issues.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.Header("TITLE", "REACTIONS", "URL")

	for _, issue := range issues {
		row := []interface{}{
			TruncateWithEllipsis(issue.Title, 60),
			FormatReactions(issue.ReactionList()),
			issue.URL,
		}
		table.Append(row...)
	}

	table.Render()

	fmt.Fprintf(w, "\n%d of %d open issues", len(issues), repo.Issues.TotalCount)
	if repo.Issues.PageInfo.HasNextPage {
		fmt.Fprintf(w, " (next page: --after %s)", repo.Issues.PageInfo.EndCursor)
	}
	fmt.Fprintln(w)
}

// FormatReactions renders reactions as emoji, or NoReactions when empty
func FormatReactions(reactions []models.Reaction) string {
	if len(reactions) == 0 {
		return models.NoReactions
	}

	parts := make([]string, 0, len(reactions))
	for _, r := range reactions {
		parts = append(parts, r.Content.Emoji())
	}
	return strings.Join(parts, " ")
}

// FormatStars renders the star flag and a comma-grouped count
func FormatStars(starred bool, count int) string {
	mark := "☆"
	if starred {
		mark = "★"
	}
	return fmt.Sprintf("%s %s", mark, humanize.Comma(int64(count)))
}
