package models

import (
	"fmt"
	"strings"
)

// RepositoryPath identifies a repository as organization/repository
type RepositoryPath struct {
	Organization string // Organization login
	Repository   string // Repository name only
}

// ParseRepositoryPath splits "organization/repository" into its two parts
func ParseRepositoryPath(path string) (RepositoryPath, error) {
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryPath{}, fmt.Errorf("invalid repository path: %q (expected organization/repository)", path)
	}
	return RepositoryPath{
		Organization: parts[0],
		Repository:   parts[1],
	}, nil
}

// String returns the path in organization/repository form
func (p RepositoryPath) String() string {
	return p.Organization + "/" + p.Repository
}
