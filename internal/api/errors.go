package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	ghapi "github.com/cli/go-gh/v2/pkg/api"

	"github.com/swfz/gh-issues/internal/models"
)

// Sentinel errors, matched with errors.Is
var (
	// ErrInvalidToken indicates the token was rejected or the response
	// carried no data at all.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrNetworkFailure indicates the request never produced a response
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrRequest indicates a non-2xx response that is not an auth failure
	ErrRequest = errors.New("github request failed")

	// ErrInvalidVariables indicates variables that do not match a document
	ErrInvalidVariables = errors.New("invalid graphql variables")

	// ErrMutationFailed indicates a star mutation returned errors or no starrable
	ErrMutationFailed = errors.New("star mutation failed")
)

// NoDataError is returned when a response has no data field.
// It unwraps to ErrInvalidToken and keeps any errors the response carried.
type NoDataError struct {
	Operation string
	Errors    []models.GraphQLError
}

func (e *NoDataError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%s: response carried no data", e.Operation)
	}
	return fmt.Sprintf("%s: response carried no data: %s", e.Operation, JoinMessages(e.Errors))
}

func (e *NoDataError) Unwrap() error {
	return ErrInvalidToken
}

// IsTokenError reports whether err belongs to the transport/auth class
// that should send the user back to the token gate.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrNetworkFailure) ||
		errors.Is(err, ErrRequest)
}

// JoinMessages joins error messages with a single space
func JoinMessages(errs []models.GraphQLError) string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, " ")
}

// mapError maps transport errors to the sentinel errors above
func mapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	var httpErr *ghapi.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: GitHub rejected the token (HTTP %d): %w", operation, httpErr.StatusCode, ErrInvalidToken)
		default:
			return fmt.Errorf("%s: HTTP %d %s: %w", operation, httpErr.StatusCode, httpErr.Message, ErrRequest)
		}
	}

	return fmt.Errorf("%s: %v: %w", operation, err, ErrNetworkFailure)
}

// queryStatus extracts the HTTP status from the errors the typed query
// clients report for non-200 responses
var queryStatus = regexp.MustCompile(`non-200 OK status code: (\d{3})`)

// mapQueryError maps errors of the typed query clients the way mapError
// maps go-gh errors. Anything that is neither a transport failure nor an
// HTTP status is a GraphQL error list and counts as ErrRequest.
func mapQueryError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %v: %w", operation, err, ErrNetworkFailure)
	}

	if match := queryStatus.FindStringSubmatch(err.Error()); match != nil {
		status, _ := strconv.Atoi(match[1])
		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: GitHub rejected the token (HTTP %d): %w", operation, status, ErrInvalidToken)
		default:
			return fmt.Errorf("%s: HTTP %d: %w", operation, status, ErrRequest)
		}
	}

	return fmt.Errorf("%s: %v: %w", operation, err, ErrRequest)
}

func convertErrors(items []ghapi.GraphQLErrorItem) []models.GraphQLError {
	errs := make([]models.GraphQLError, 0, len(items))
	for _, item := range items {
		errs = append(errs, models.GraphQLError{Message: item.Message})
	}
	return errs
}
