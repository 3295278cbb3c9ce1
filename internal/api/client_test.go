package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/swfz/gh-issues/internal/models"
)

// graphqlRequest is the decoded body of a request sent to the test server
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		Token:    "abc",
		Endpoint: server.URL + "/graphql",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func decodeRequest(t *testing.T, r *http.Request) graphqlRequest {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var req graphqlRequest
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
	return req
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func organizationData(hasNextPage bool) map[string]interface{} {
	return map[string]interface{}{
		"organization": map[string]interface{}{
			"name": "The Octocat",
			"url":  "https://github.com/octocat",
			"repository": map[string]interface{}{
				"id":               "R_kgDOAAAAAQ",
				"name":             "Hello-World",
				"url":              "https://github.com/octocat/Hello-World",
				"stargazers":       map[string]interface{}{"totalCount": 2500},
				"viewerHasStarred": false,
				"issues": map[string]interface{}{
					"edges": []interface{}{
						map[string]interface{}{
							"node": map[string]interface{}{
								"id":    "I_1",
								"title": "Found a bug",
								"url":   "https://github.com/octocat/Hello-World/issues/1",
								"reactions": map[string]interface{}{
									"edges": []interface{}{
										map[string]interface{}{
											"node": map[string]interface{}{"id": "RE_1", "content": "HEART"},
										},
									},
								},
							},
						},
					},
					"totalCount": 12,
					"pageInfo": map[string]interface{}{
						"endCursor":   "Y3Vyc29yOjU=",
						"hasNextPage": hasNextPage,
					},
				},
			},
		},
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantErr  error
		wantFail bool
	}{
		{
			name: "default endpoint",
			opts: Options{Token: "abc"},
		},
		{
			name:    "empty token",
			opts:    Options{},
			wantErr: ErrInvalidToken,
		},
		{
			name:     "relative endpoint",
			opts:     Options{Token: "abc", Endpoint: "/graphql"},
			wantFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.wantFail:
				if err == nil {
					t.Fatal("expected error")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if client == nil {
					t.Fatal("expected non-nil client")
				}
			}
		})
	}
}

func TestClient_FetchIssues_Request(t *testing.T) {
	var got graphqlRequest
	var auth, method, path string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		method = r.Method
		path = r.URL.Path
		got = decodeRequest(t, r)
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"data": organizationData(true)})
	})

	result, err := client.FetchIssues(context.Background(),
		models.RepositoryPath{Organization: "octocat", Repository: "Hello-World"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if method != http.MethodPost {
		t.Errorf("method = %s, want POST", method)
	}
	if path != "/graphql" {
		t.Errorf("path = %s, want /graphql", path)
	}
	if auth != "bearer abc" {
		t.Errorf("Authorization = %q, want %q", auth, "bearer abc")
	}
	if got.Query != issuesQuery {
		t.Errorf("unexpected query text: %s", got.Query)
	}
	if got.Variables["organization"] != "octocat" || got.Variables["repository"] != "Hello-World" {
		t.Errorf("unexpected variables: %v", got.Variables)
	}
	if _, ok := got.Variables["cursor"]; ok {
		t.Errorf("cursor must be omitted on the first page, got %v", got.Variables["cursor"])
	}

	org := result.Organization
	if org == nil || org.Repository == nil {
		t.Fatal("expected organization snapshot")
	}
	if org.Name != "The Octocat" || org.Repository.ID != "R_kgDOAAAAAQ" {
		t.Errorf("unexpected snapshot: %+v", org)
	}
	if org.Repository.Stargazers.TotalCount != 2500 {
		t.Errorf("star count = %d", org.Repository.Stargazers.TotalCount)
	}
	issues := org.Issues()
	if len(issues) != 1 || issues[0].ReactionList()[0].Content != models.ReactionHeart {
		t.Errorf("unexpected issues: %+v", issues)
	}
	if !org.Repository.Issues.PageInfo.HasNextPage || org.Repository.Issues.PageInfo.EndCursor != "Y3Vyc29yOjU=" {
		t.Errorf("unexpected page info: %+v", org.Repository.Issues.PageInfo)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
}

func TestClient_FetchIssues_Cursor(t *testing.T) {
	var got graphqlRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = decodeRequest(t, r)
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"data": organizationData(false)})
	})

	_, err := client.FetchIssues(context.Background(),
		models.RepositoryPath{Organization: "octocat", Repository: "Hello-World"}, "Y3Vyc29yOjU=")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Variables["cursor"] != "Y3Vyc29yOjU=" {
		t.Errorf("cursor = %v, want Y3Vyc29yOjU=", got.Variables["cursor"])
	}
}

func TestClient_FetchIssues_Errors(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		response       interface{}
		wantErr        error
		wantTokenError bool
		wantMessages   []string
		wantOrg        bool
	}{
		{
			name:   "partial success",
			status: http.StatusOK,
			response: map[string]interface{}{
				"data": organizationData(false),
				"errors": []interface{}{
					map[string]interface{}{"message": "Field is deprecated"},
					map[string]interface{}{"message": "Something else"},
				},
			},
			wantMessages: []string{"Field is deprecated", "Something else"},
			wantOrg:      true,
		},
		{
			name:   "unknown organization",
			status: http.StatusOK,
			response: map[string]interface{}{
				"data": map[string]interface{}{"organization": nil},
				"errors": []interface{}{
					map[string]interface{}{"message": "Could not resolve to an Organization with the login of 'nope'."},
				},
			},
			wantMessages: []string{"Could not resolve to an Organization with the login of 'nope'."},
		},
		{
			name:   "no data",
			status: http.StatusOK,
			response: map[string]interface{}{
				"errors": []interface{}{
					map[string]interface{}{"message": "Bad credentials"},
				},
			},
			wantErr:        ErrInvalidToken,
			wantTokenError: true,
			wantMessages:   []string{"Bad credentials"},
		},
		{
			name:           "bad credentials",
			status:         http.StatusUnauthorized,
			response:       map[string]interface{}{"message": "Bad credentials"},
			wantErr:        ErrInvalidToken,
			wantTokenError: true,
		},
		{
			name:           "server error",
			status:         http.StatusInternalServerError,
			response:       map[string]interface{}{"message": "boom"},
			wantErr:        ErrRequest,
			wantTokenError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.response)
			})

			result, err := client.FetchIssues(context.Background(),
				models.RepositoryPath{Organization: "octocat", Repository: "Hello-World"}, "")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if IsTokenError(err) != tt.wantTokenError {
					t.Errorf("IsTokenError = %v, want %v", IsTokenError(err), tt.wantTokenError)
				}
				if tt.wantMessages != nil {
					var noData *NoDataError
					if !errors.As(err, &noData) {
						t.Fatalf("expected NoDataError, got %T", err)
					}
					assertMessages(t, noData.Errors, tt.wantMessages)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (result.Organization != nil) != tt.wantOrg {
				t.Errorf("organization present = %v, want %v", result.Organization != nil, tt.wantOrg)
			}
			assertMessages(t, result.Errors, tt.wantMessages)
		})
	}
}

func TestClient_FetchIssues_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + "/graphql"
	server.Close()

	client, err := NewClient(Options{Token: "abc", Endpoint: endpoint})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.FetchIssues(context.Background(),
		models.RepositoryPath{Organization: "octocat", Repository: "Hello-World"}, "")
	if !errors.Is(err, ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
	if !IsTokenError(err) {
		t.Error("network failures should re-open the token gate")
	}
}

func TestClient_CheckRateLimitAndViewer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		var data map[string]interface{}
		switch {
		case strings.Contains(req.Query, "rateLimit"):
			data = map[string]interface{}{
				"rateLimit": map[string]interface{}{
					"limit":     5000,
					"remaining": 4990,
					"resetAt":   "2026-10-19T12:00:00Z",
				},
			}
		case strings.Contains(req.Query, "viewer"):
			data = map[string]interface{}{
				"viewer": map[string]interface{}{"login": "octocat"},
			}
		default:
			t.Errorf("unexpected query: %s", req.Query)
		}
		writeJSON(t, w, http.StatusOK, map[string]interface{}{"data": data})
	})

	info, err := client.CheckRateLimit(context.Background())
	if err != nil {
		t.Fatalf("CheckRateLimit: %v", err)
	}
	if info.Limit != 5000 || info.Remaining != 4990 || info.ResetAt.IsZero() {
		t.Errorf("unexpected rate limit info: %+v", info)
	}

	login, err := client.Viewer(context.Background())
	if err != nil {
		t.Fatalf("Viewer: %v", err)
	}
	if login != "octocat" {
		t.Errorf("login = %q, want octocat", login)
	}
}

func assertMessages(t *testing.T, errs []models.GraphQLError, want []string) {
	t.Helper()

	if len(errs) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(errs), len(want), errs)
	}
	for i := range want {
		if errs[i].Message != want[i] {
			t.Errorf("errors[%d] = %q, want %q", i, errs[i].Message, want[i])
		}
	}
}

func TestClient_Viewer_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    interface{}
		wantErr error
	}{
		{
			name:    "bad credentials",
			status:  http.StatusUnauthorized,
			body:    map[string]interface{}{"message": "Bad credentials"},
			wantErr: ErrInvalidToken,
		},
		{
			name:    "server error",
			status:  http.StatusBadGateway,
			body:    map[string]interface{}{"message": "Bad gateway"},
			wantErr: ErrRequest,
		},
		{
			name:   "graphql errors",
			status: http.StatusOK,
			body: map[string]interface{}{
				"errors": []interface{}{map[string]interface{}{"message": "Something went wrong"}},
			},
			wantErr: ErrRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			})

			_, err := client.Viewer(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClient_Viewer_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + "/graphql"
	server.Close()

	client, err := NewClient(Options{Token: "abc", Endpoint: endpoint})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Viewer(context.Background())
	if !errors.Is(err, ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
	if errors.Is(err, ErrInvalidToken) {
		t.Error("a network failure is not a rejected token")
	}
}

func TestClient_CheckRateLimit_Canceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected after cancellation")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CheckRateLimit(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
