// Package github implements the ReviewCommentWriter port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/prcomment/internal/domain/model"
	"github.com/ericfisherdev/prcomment/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewCommentWriter = (*Client)(nil)

// Client implements the driven.ReviewCommentWriter port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  2. go-github (GitHub REST API client with token auth)
//
// baseURL selects the REST endpoint; an empty value keeps api.github.com.
func NewClient(token, baseURL string) (*Client, error) {
	rateLimitClient := github_ratelimit.NewClient(http.DefaultTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	if baseURL != "" {
		u, err := parseBaseURL(baseURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = u
	}

	return &Client{gh: client}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	client := gh.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// parseBaseURL parses a REST endpoint and guarantees the trailing slash
// go-github requires for relative path resolution.
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return u, nil
}

// ListReviewComments retrieves all review comments (inline code comments) for a pull request.
// It handles pagination automatically and maps go-github types to domain model types.
func (c *Client) ListReviewComments(ctx context.Context, pr driven.PullRequestRef) ([]model.ReviewComment, error) {
	opts := &gh.PullRequestListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	var allComments []model.ReviewComment

	for {
		comments, resp, err := c.gh.PullRequests.ListComments(ctx, pr.Owner, pr.Repo, pr.Number, opts)
		if err != nil {
			return nil, classifyError(resp, err, fmt.Sprintf("listing review comments for %s (page %d)", prName(pr), opts.Page))
		}

		logRateLimit(resp, prName(pr)+"/comments", opts.Page, len(comments))

		for _, comment := range comments {
			allComments = append(allComments, mapReviewComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if allComments == nil {
		allComments = []model.ReviewComment{}
	}

	return allComments, nil
}

// CreateReviewComment posts a single review comment. A request whose start
// line equals its line is sent as a point comment (line, side); otherwise the
// range fields (start_line, start_side) are added. Success is 201 Created only.
func (c *Client) CreateReviewComment(ctx context.Context, pr driven.PullRequestRef, req model.CommentRequest) (model.ReviewComment, error) {
	comment := &gh.PullRequestComment{
		CommitID: gh.Ptr(req.CommitID),
		Path:     gh.Ptr(req.Path),
		Body:     gh.Ptr(req.Body),
		Line:     gh.Ptr(req.Line),
		Side:     gh.Ptr(string(req.Side)),
	}
	if req.IsMultiLine() {
		comment.StartLine = gh.Ptr(req.StartLine)
		comment.StartSide = gh.Ptr(string(req.StartSide))
	}

	created, resp, err := c.gh.PullRequests.CreateComment(ctx, pr.Owner, pr.Repo, pr.Number, comment)
	if err != nil {
		return model.ReviewComment{}, classifyError(resp, err, "creating review comment on "+prName(pr))
	}

	logRateLimit(resp, prName(pr)+"/create-comment", 0, 1)

	if resp.StatusCode != http.StatusCreated {
		return model.ReviewComment{}, &driven.StatusError{StatusCode: resp.StatusCode}
	}

	return mapReviewComment(created), nil
}

// classifyError turns a go-github failure into a *driven.StatusError when
// GitHub produced a response, and a wrapped transport error otherwise.
func classifyError(resp *gh.Response, err error, action string) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return &driven.StatusError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			Err:        fmt.Errorf("%s: %w", action, err),
		}
	}
	if resp != nil && resp.Response != nil {
		return &driven.StatusError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %w", action, err),
		}
	}
	return fmt.Errorf("%s: %w", action, err)
}

// mapReviewComment converts a go-github PullRequestComment to a domain model ReviewComment.
func mapReviewComment(c *gh.PullRequestComment) model.ReviewComment {
	return model.ReviewComment{
		ID:        c.GetID(),
		Author:    c.GetUser().GetLogin(),
		Body:      c.GetBody(),
		Path:      c.GetPath(),
		Position:  c.GetPosition(),
		Line:      c.GetLine(),
		StartLine: c.GetStartLine(),
		Side:      c.GetSide(),
		CommitID:  c.GetCommitID(),
		HTMLURL:   c.GetHTMLURL(),
		CreatedAt: c.GetCreatedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}

func prName(pr driven.PullRequestRef) string {
	return fmt.Sprintf("%s/%s#%d", pr.Owner, pr.Repo, pr.Number)
}
