package api

import (
	"context"

	"github.com/swfz/gh-issues/internal/models"
)

// IssuesResult is the outcome of a Repository+Issues query.
// Errors may be set together with Organization (partial success).
type IssuesResult struct {
	Organization *models.OrganizationSnapshot `json:"organization" yaml:"organization"`
	Errors       []models.GraphQLError        `json:"errors,omitempty" yaml:"errors,omitempty"`
}

type issuesData struct {
	Organization *models.OrganizationSnapshot `json:"organization"`
}

// FetchIssues fetches the organization, repository, star state and one page
// of open issues. An empty cursor requests the first page.
func (c *Client) FetchIssues(ctx context.Context, path models.RepositoryPath, cursor string) (*IssuesResult, error) {
	variables := map[string]interface{}{
		"organization": path.Organization,
		"repository":   path.Repository,
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var data *issuesData
	errs, err := c.execute(ctx, issuesDocument, variables, &data)
	if err != nil {
		return nil, err
	}

	if data == nil {
		return nil, &NoDataError{Operation: issuesDocument.name, Errors: errs}
	}

	return &IssuesResult{
		Organization: data.Organization,
		Errors:       errs,
	}, nil
}
