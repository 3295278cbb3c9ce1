package models

// OrganizationSnapshot is the result of one Repository+Issues query.
// It is replaced wholesale on every fetch.
type OrganizationSnapshot struct {
	Name       string              `json:"name" yaml:"name"`
	URL        string              `json:"url" yaml:"url"`
	Repository *RepositorySnapshot `json:"repository" yaml:"repository"`
}

// RepositorySnapshot represents the repository part of a snapshot
type RepositorySnapshot struct {
	ID               string     `json:"id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	URL              string     `json:"url" yaml:"url"`
	Stargazers       Stargazers `json:"stargazers" yaml:"stargazers"`
	ViewerHasStarred bool       `json:"viewerHasStarred" yaml:"viewerHasStarred"`
	Issues           IssuePage  `json:"issues" yaml:"issues"`
}

// Stargazers holds the stargazer connection count
type Stargazers struct {
	TotalCount int `json:"totalCount" yaml:"totalCount"`
}

// IssuePage is one page of open issues
type IssuePage struct {
	Edges      []IssueEdge `json:"edges" yaml:"edges"`
	TotalCount int         `json:"totalCount" yaml:"totalCount"`
	PageInfo   PageInfo    `json:"pageInfo" yaml:"pageInfo"`
}

// PageInfo carries the cursor for the next page
type PageInfo struct {
	EndCursor   string `json:"endCursor" yaml:"endCursor"`
	HasNextPage bool   `json:"hasNextPage" yaml:"hasNextPage"`
}

// IssueEdge wraps an issue node
type IssueEdge struct {
	Node Issue `json:"node" yaml:"node"`
}

// Issue represents an open issue with its latest reactions
type Issue struct {
	ID        string       `json:"id" yaml:"id"`
	Title     string       `json:"title" yaml:"title"`
	URL       string       `json:"url" yaml:"url"`
	Reactions ReactionPage `json:"reactions" yaml:"reactions"`
}

// ReactionPage holds at most the last 3 reactions of an issue
type ReactionPage struct {
	Edges []ReactionEdge `json:"edges" yaml:"edges"`
}

// ReactionEdge wraps a reaction node
type ReactionEdge struct {
	Node Reaction `json:"node" yaml:"node"`
}

// Reaction is a single reaction on an issue
type Reaction struct {
	ID      string          `json:"id" yaml:"id"`
	Content ReactionContent `json:"content" yaml:"content"`
}

// StarState is the starrable object returned by addStar/removeStar
type StarState struct {
	ViewerHasStarred bool `json:"viewerHasStarred" yaml:"viewerHasStarred"`
	StargazerCount   int  `json:"stargazerCount" yaml:"stargazerCount"`
}

// GraphQLError is one entry of a response's top-level errors list
type GraphQLError struct {
	Message string `json:"message" yaml:"message"`
}

// Issues returns the issue nodes of the current page, or nil when the
// snapshot has no repository.
func (o *OrganizationSnapshot) Issues() []Issue {
	if o == nil || o.Repository == nil {
		return nil
	}

	issues := make([]Issue, 0, len(o.Repository.Issues.Edges))
	for _, edge := range o.Repository.Issues.Edges {
		issues = append(issues, edge.Node)
	}
	return issues
}

// ReactionList returns the reaction nodes of the issue
func (i Issue) ReactionList() []Reaction {
	reactions := make([]Reaction, 0, len(i.Reactions.Edges))
	for _, edge := range i.Reactions.Edges {
		reactions = append(reactions, edge.Node)
	}
	return reactions
}
