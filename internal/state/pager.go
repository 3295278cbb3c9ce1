package state

import "github.com/swfz/gh-issues/internal/models"

// NextCursor returns the cursor for the page after the snapshot's page.
// ok is false when there is no next page.
func NextCursor(org *models.OrganizationSnapshot) (cursor string, ok bool) {
	repo := repository(org)
	if repo == nil || !repo.Issues.PageInfo.HasNextPage {
		return "", false
	}
	return repo.Issues.PageInfo.EndCursor, true
}

// Pager tracks the cursors used to reach the current page.
// Pages replace each other; issues are never accumulated.
type Pager struct {
	path    models.RepositoryPath
	current string   // cursor of the displayed page, "" for the first
	history []string // cursors of the pages before it
	pending *move    // move awaiting a response
}

type move struct {
	path    models.RepositoryPath
	cursor  string
	history []string
}

// Start begins a fresh listing of path at its first page
func (p *Pager) Start(path models.RepositoryPath) (models.RepositoryPath, string) {
	p.pending = &move{path: path}
	return path, ""
}

// Reload re-requests the displayed page
func (p *Pager) Reload() (models.RepositoryPath, string) {
	p.pending = &move{path: p.path, cursor: p.current, history: p.history}
	return p.path, p.current
}

// Retry re-requests the move still awaiting a response, or the displayed
// page when nothing is pending
func (p *Pager) Retry() (models.RepositoryPath, string) {
	if p.pending != nil {
		return p.pending.path, p.pending.cursor
	}
	return p.Reload()
}

// Next requests the page after the snapshot's page. ok is false, and
// nothing changes, when the snapshot has no next page.
func (p *Pager) Next(org *models.OrganizationSnapshot) (path models.RepositoryPath, cursor string, ok bool) {
	cursor, ok = NextCursor(org)
	if !ok {
		return models.RepositoryPath{}, "", false
	}

	history := append(append([]string(nil), p.history...), p.current)
	p.pending = &move{path: p.path, cursor: cursor, history: history}
	return p.path, cursor, true
}

// Previous requests the page before the displayed one. ok is false on the
// first page.
func (p *Pager) Previous() (path models.RepositoryPath, cursor string, ok bool) {
	if len(p.history) == 0 {
		return models.RepositoryPath{}, "", false
	}

	cursor = p.history[len(p.history)-1]
	history := append([]string(nil), p.history[:len(p.history)-1]...)
	p.pending = &move{path: p.path, cursor: cursor, history: history}
	return p.path, cursor, true
}

// Commit records the pending move once its response has been applied
func (p *Pager) Commit() {
	if p.pending == nil {
		return
	}
	p.path = p.pending.path
	p.current = p.pending.cursor
	p.history = p.pending.history
	p.pending = nil
}

// Path returns the path of the displayed listing
func (p *Pager) Path() models.RepositoryPath {
	return p.path
}

// Target returns the path of the pending move, or the displayed path when
// nothing is pending
func (p *Pager) Target() models.RepositoryPath {
	if p.pending != nil {
		return p.pending.path
	}
	return p.path
}

// Page returns the 1-based number of the displayed page
func (p *Pager) Page() int {
	return len(p.history) + 1
}

// HasPrevious reports whether a previous page exists
func (p *Pager) HasPrevious() bool {
	return len(p.history) > 0
}
