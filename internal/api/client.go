package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	ghapi "github.com/cli/go-gh/v2/pkg/api"
	"github.com/google/uuid"
	"github.com/shurcooL/githubv4"
	"github.com/shurcooL/graphql"
	"golang.org/x/time/rate"

	"github.com/swfz/gh-issues/internal/models"
)

// DefaultEndpoint is the public GitHub GraphQL endpoint
const DefaultEndpoint = "https://api.github.com/graphql"

// Options configures a Client
type Options struct {
	Token     string            // Personal access token, required
	Endpoint  string            // GraphQL endpoint (default DefaultEndpoint)
	Timeout   time.Duration     // HTTP client timeout (0 = none)
	Logger    *log.Logger       // Debug logger (nil = discard)
	Transport http.RoundTripper // Base transport (nil = http.DefaultTransport)
}

// Client wraps the GitHub GraphQL API with request pacing
type Client struct {
	gqlClient     *ghapi.GraphQLClient // fixed documents with {data, errors} envelope
	graphqlClient *graphql.Client      // typed queries
	v4Client      *githubv4.Client     // typed queries against the v4 schema
	httpClient    *http.Client
	rateLimiter   *rate.Limiter
	logger        *log.Logger
}

// NewClient creates a new GitHub API client authenticated with opts.Token
func NewClient(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("token is required: %w", ErrInvalidToken)
	}

	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	endpoint, err := url.Parse(opts.Endpoint)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid endpoint %q", opts.Endpoint)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	transport := &authTransport{
		token:    opts.Token,
		endpoint: endpoint,
		base:     base,
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}

	gqlClient, err := ghapi.NewGraphQLClient(ghapi.ClientOptions{
		AuthToken: opts.Token,
		Host:      hostFromEndpoint(endpoint),
		Transport: transport,
		Timeout:   opts.Timeout,
		Headers: map[string]string{
			"Authorization": "bearer " + opts.Token,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	// Rate limiter: 5000 points per hour, 1 request per second is plenty for
	// an interactive session
	rateLimiter := rate.NewLimiter(rate.Every(time.Second), 10)

	return &Client{
		gqlClient:     gqlClient,
		graphqlClient: graphql.NewClient(endpoint.String(), httpClient),
		v4Client:      githubv4.NewEnterpriseClient(endpoint.String(), httpClient),
		httpClient:    httpClient,
		rateLimiter:   rateLimiter,
		logger:        logger,
	}, nil
}

// execute sends a fixed document. GraphQL-level errors are returned as a
// list alongside whatever data was decoded; only transport failures are
// returned as an error.
func (c *Client) execute(ctx context.Context, doc *document, variables map[string]interface{}, data interface{}) ([]models.GraphQLError, error) {
	if err := doc.validate(variables); err != nil {
		return nil, err
	}

	// Wait for rate limiter
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	requestID := uuid.NewString()
	c.logger.Printf("%s %s %s variables=%v", requestID, doc.kind, doc.name, variables)

	err := c.gqlClient.DoWithContext(ctx, doc.text, variables, data)
	if err == nil {
		c.logger.Printf("%s %s ok", requestID, doc.name)
		return nil, nil
	}

	var gqlErr *ghapi.GraphQLError
	if errors.As(err, &gqlErr) {
		c.logger.Printf("%s %s returned %d error(s)", requestID, doc.name, len(gqlErr.Errors))
		return convertErrors(gqlErr.Errors), nil
	}

	c.logger.Printf("%s %s failed: %v", requestID, doc.name, err)
	return nil, mapError(err, doc.name)
}

// authTransport adds the bearer header and pins every request to the
// configured endpoint
type authTransport struct {
	token    string
	endpoint *url.URL
	base     http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.URL.Scheme = t.endpoint.Scheme
	req.URL.Host = t.endpoint.Host
	req.URL.Path = t.endpoint.Path
	req.Host = t.endpoint.Host

	req.Header.Set("Authorization", "bearer "+t.token)

	return t.base.RoundTrip(req)
}

// hostFromEndpoint returns the GitHub host an endpoint belongs to
func hostFromEndpoint(endpoint *url.URL) string {
	host := endpoint.Host
	if host == "api.github.com" {
		return "github.com"
	}
	return strings.TrimPrefix(host, "api.")
}
