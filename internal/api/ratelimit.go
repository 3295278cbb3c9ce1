package api

import (
	"context"
	"fmt"
	"time"

	"github.com/shurcooL/githubv4"
)

// RateLimitInfo contains information about GitHub API rate limits
type RateLimitInfo struct {
	Limit     int       `json:"limit" yaml:"limit"`
	Remaining int       `json:"remaining" yaml:"remaining"`
	ResetAt   time.Time `json:"resetAt" yaml:"resetAt"`
}

// CheckRateLimit queries the current rate limit status.
// This is informational only; nothing waits on it.
func (c *Client) CheckRateLimit(ctx context.Context) (*RateLimitInfo, error) {
	var query struct {
		RateLimit struct {
			Limit     int
			Remaining int
			ResetAt   time.Time
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	c.logger.Printf("query RateLimit")
	if err := c.graphqlClient.Query(ctx, &query, nil); err != nil {
		return nil, mapQueryError(err, "RateLimit")
	}

	return &RateLimitInfo{
		Limit:     query.RateLimit.Limit,
		Remaining: query.RateLimit.Remaining,
		ResetAt:   query.RateLimit.ResetAt,
	}, nil
}

// Viewer returns the login of the token's owner
func (c *Client) Viewer(ctx context.Context) (string, error) {
	var query struct {
		Viewer struct {
			Login githubv4.String
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	c.logger.Printf("query Viewer")
	if err := c.v4Client.Query(ctx, &query, nil); err != nil {
		return "", mapQueryError(err, "Viewer")
	}

	return string(query.Viewer.Login), nil
}
