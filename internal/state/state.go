// Package state holds the view state of a browsing session and the
// reducer that moves it between snapshots.
//
// All transitions go through Reduce with one of the Action types below;
// nothing mutates a State in place.
package state

import (
	"errors"

	"github.com/swfz/gh-issues/internal/api"
	"github.com/swfz/gh-issues/internal/models"
)

// State is the view state
type State struct {
	Organization *models.OrganizationSnapshot // Last fetched snapshot, nil until the first fetch
	Errors       []models.GraphQLError        // Errors from the last response, nil when none
	Starred      bool                         // Locally held star flag
	StarCount    int                          // Locally held stargazer count
	TokenError   bool                         // Last fetch failed at the transport/auth level
}

// Action is a discrete state transition
type Action interface {
	isAction()
}

// Fetched carries a Repository+Issues response that had data
type Fetched struct {
	Result *api.IssuesResult
}

// FetchFailed carries a transport/auth failure or a response without data
type FetchFailed struct {
	Err error
}

// Starred carries the starrable object of a successful addStar
type Starred struct {
	Star models.StarState
}

// Unstarred carries the starrable object of a successful removeStar
type Unstarred struct {
	Star models.StarState
}

// TokenSubmitted clears the token error once a new token is entered
type TokenSubmitted struct{}

func (Fetched) isAction()        {}
func (FetchFailed) isAction()    {}
func (Starred) isAction()        {}
func (Unstarred) isAction()      {}
func (TokenSubmitted) isAction() {}

// Reduce returns the state that results from applying action to s
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case Fetched:
		if a.Result == nil {
			return s
		}
		s.Organization = a.Result.Organization
		s.Errors = nilIfEmpty(a.Result.Errors)
		s.TokenError = false
		if repo := repository(s.Organization); repo != nil {
			s.Starred = repo.ViewerHasStarred
			s.StarCount = repo.Stargazers.TotalCount
		}

	case FetchFailed:
		s.TokenError = api.IsTokenError(a.Err)
		var noData *api.NoDataError
		if errors.As(a.Err, &noData) {
			s.Errors = nilIfEmpty(noData.Errors)
		}

	case Starred:
		s.Starred = a.Star.ViewerHasStarred
		s.StarCount = a.Star.StargazerCount

	case Unstarred:
		s.Starred = a.Star.ViewerHasStarred
		s.StarCount = a.Star.StargazerCount

	case TokenSubmitted:
		s.TokenError = false
	}

	return s
}

// StarAction wraps a mutation result in the action matching the flag it
// was sent with
func StarAction(wasStarred bool, star models.StarState) Action {
	if wasStarred {
		return Unstarred{Star: star}
	}
	return Starred{Star: star}
}

// RepositoryID returns the id of the snapshot's repository, or "" when none
func (s State) RepositoryID() string {
	if repo := repository(s.Organization); repo != nil {
		return repo.ID
	}
	return ""
}

// HasNextPage reports whether the next-page action is enabled
func (s State) HasNextPage() bool {
	_, ok := NextCursor(s.Organization)
	return ok
}

func repository(org *models.OrganizationSnapshot) *models.RepositorySnapshot {
	if org == nil {
		return nil
	}
	return org.Repository
}

func nilIfEmpty(errs []models.GraphQLError) []models.GraphQLError {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
