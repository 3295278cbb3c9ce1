package api

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Fixed GraphQL documents sent to the GitHub API

const issuesQuery = `
  query($organization: String!, $repository: String!, $cursor: String) {
    organization(login: $organization) {
      name
      url
      repository(name: $repository) {
        id
        name
        url
        stargazers {
          totalCount
        }
        viewerHasStarred
        issues(first: 5, after: $cursor, states: [OPEN]) {
          edges {
            node {
              id
              title
              url
              reactions(last: 3) {
                edges {
                  node {
                    id
                    content
                  }
                }
              }
            }
          }
          totalCount
          pageInfo {
            endCursor
            hasNextPage
          }
        }
      }
    }
  }
`

const addStarMutation = `
  mutation ($repositoryId: ID!) {
    addStar(input:{starrableId:$repositoryId}) {
      starrable {
        viewerHasStarred
        stargazerCount
      }
    }
  }
`

const removeStarMutation = `
  mutation ($repositoryId: ID!) {
    removeStar(input:{starrableId:$repositoryId}) {
      starrable {
        viewerHasStarred
        stargazerCount
      }
    }
  }
`

var (
	issuesDocument     = mustParse("RepositoryIssues", issuesQuery)
	addStarDocument    = mustParse("AddStar", addStarMutation)
	removeStarDocument = mustParse("RemoveStar", removeStarMutation)
)

// document is a parsed operation with its declared variables
type document struct {
	name      string
	kind      ast.Operation
	text      string
	variables map[string]bool // variable name -> non-null
}

func mustParse(name, text string) *document {
	doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: text})
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", name, err))
	}
	if len(doc.Operations) != 1 {
		panic(fmt.Sprintf("parse %s: expected 1 operation, got %d", name, len(doc.Operations)))
	}

	op := doc.Operations[0]
	variables := make(map[string]bool, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		variables[def.Variable] = def.Type.NonNull
	}

	return &document{
		name:      name,
		kind:      op.Operation,
		text:      text,
		variables: variables,
	}
}

// validate checks variables against the document's declarations:
// every non-null variable must be set, and nothing undeclared may be sent.
func (d *document) validate(variables map[string]interface{}) error {
	for name := range variables {
		if _, ok := d.variables[name]; !ok {
			return fmt.Errorf("%s: undeclared variable $%s: %w", d.name, name, ErrInvalidVariables)
		}
	}

	required := make([]string, 0, len(d.variables))
	for name, nonNull := range d.variables {
		if nonNull {
			required = append(required, name)
		}
	}
	sort.Strings(required)

	for _, name := range required {
		if v, ok := variables[name]; !ok || v == nil {
			return fmt.Errorf("%s: missing required variable $%s: %w", d.name, name, ErrInvalidVariables)
		}
	}

	return nil
}
