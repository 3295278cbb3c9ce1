package parser

import (
	"regexp"
	"strings"

	"github.com/swfz/gh-issues/internal/models"
)

var (
	// URL forms: "https://github.com/org/repo", "github.com/org/repo"
	githubURLRegex = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/`)

	// Trailing ".git" as found in clone URLs
	gitSuffixRegex = regexp.MustCompile(`\.git$`)
)

// ParsePath normalizes user input into a RepositoryPath.
// Accepts "org/repo" as well as github.com URLs pointing at a repository.
func ParsePath(input string) (models.RepositoryPath, error) {
	path := strings.TrimSpace(input)
	path = githubURLRegex.ReplaceAllString(path, "")
	path = strings.TrimSuffix(path, "/")
	path = gitSuffixRegex.ReplaceAllString(path, "")

	return models.ParseRepositoryPath(path)
}
