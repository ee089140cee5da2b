package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	ghAdapter "github.com/ericfisherdev/prcomment/internal/adapter/driven/github"
	"github.com/ericfisherdev/prcomment/internal/domain/model"
	"github.com/ericfisherdev/prcomment/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commentsPath = "/repos/owner/repo/pulls/7/comments"

var testPR = driven.PullRequestRef{Owner: "owner", Repo: "repo", Number: 7}

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) (*ghAdapter.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClientWithHTTPClient(
		server.Client(),
		server.URL,
		"test-token",
	)
	require.NoError(t, err)

	return client, server
}

// commentJSON is a helper struct for building GitHub API review comment responses.
type commentJSON struct {
	ID       int64    `json:"id"`
	Body     string   `json:"body"`
	Path     string   `json:"path"`
	Position *int     `json:"position"`
	Line     int      `json:"line,omitempty"`
	CommitID string   `json:"commit_id"`
	User     userJSON `json:"user"`
	Created  string   `json:"created_at,omitempty"`
}

type userJSON struct {
	Login string `json:"login"`
}

func intPtr(v int) *int {
	return &v
}

// decodePayload reads the JSON request body into a generic map so tests can
// assert on which keys were sent.
func decodePayload(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	return payload
}

func TestListReviewComments_SinglePage(t *testing.T) {
	comments := []commentJSON{
		{
			ID:       1,
			Body:     "nit: rename",
			Path:     "main.go",
			Position: intPtr(12),
			Line:     40,
			CommitID: "abc123",
			User:     userJSON{Login: "alice"},
			Created:  "2026-01-01T00:00:00Z",
		},
		{
			ID:       2,
			Body:     "outdated",
			Path:     "util.go",
			CommitID: "abc123",
			User:     userJSON{Login: "bob"},
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, commentsPath, r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(comments)
	})

	client, _ := newTestClient(t, handler)
	result, err := client.ListReviewComments(context.Background(), testPR)

	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, int64(1), result[0].ID)
	assert.Equal(t, "alice", result[0].Author)
	assert.Equal(t, "nit: rename", result[0].Body)
	assert.Equal(t, "main.go", result[0].Path)
	assert.Equal(t, 12, result[0].Position)
	assert.Equal(t, 40, result[0].Line)
	assert.Equal(t, "abc123", result[0].CommitID)
	assert.Equal(t, 2026, result[0].CreatedAt.Year())

	// A null position maps to zero.
	assert.Equal(t, 0, result[1].Position)
}

func TestListReviewComments_Pagination(t *testing.T) {
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		page := r.URL.Query().Get("page")
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")

		if page == "" || page == "1" {
			w.Header().Set("Link", fmt.Sprintf(`<%s?page=2>; rel="next"`, "http://"+r.Host+r.URL.Path))
			json.NewEncoder(w).Encode([]commentJSON{{ID: 1, Body: "first"}})
			return
		}
		json.NewEncoder(w).Encode([]commentJSON{{ID: 2, Body: "second"}})
	})

	client, _ := newTestClient(t, handler)
	result, err := client.ListReviewComments(context.Background(), testPR)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "first", result[0].Body)
	assert.Equal(t, "second", result[1].Body)
	assert.Equal(t, 2, calls)
}

func TestListReviewComments_Empty(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	})

	client, _ := newTestClient(t, handler)
	result, err := client.ListReviewComments(context.Background(), testPR)

	require.NoError(t, err)
	assert.NotNil(t, result, "should return empty slice, not nil")
	assert.Empty(t, result)
}

func TestListReviewComments_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.ListReviewComments(context.Background(), testPR)

	var statusErr *driven.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "Not Found", statusErr.Message)
}

func TestCreateReviewComment_SingleLine(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, commentsPath, r.URL.Path)

		payload := decodePayload(t, r)
		assert.Equal(t, "abc123", payload["commit_id"])
		assert.Equal(t, "main.go", payload["path"])
		assert.Equal(t, "looks off", payload["body"])
		assert.Equal(t, float64(10), payload["line"])
		assert.Equal(t, "RIGHT", payload["side"])
		assert.NotContains(t, payload, "start_line")
		assert.NotContains(t, payload, "start_side")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(commentJSON{ID: 99, Body: "looks off", Path: "main.go", Line: 10, CommitID: "abc123"})
	})

	client, _ := newTestClient(t, handler)
	created, err := client.CreateReviewComment(context.Background(), testPR, model.CommentRequest{
		Body:      "looks off",
		CommitID:  "abc123",
		Path:      "main.go",
		StartLine: 10,
		Line:      10,
		StartSide: model.SideRight,
		Side:      model.SideRight,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)
	assert.Equal(t, 10, created.Line)
}

func TestCreateReviewComment_MultiLine(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := decodePayload(t, r)
		assert.Equal(t, float64(8), payload["start_line"])
		assert.Equal(t, "LEFT", payload["start_side"])
		assert.Equal(t, float64(12), payload["line"])
		assert.Equal(t, "RIGHT", payload["side"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(commentJSON{ID: 100})
	})

	client, _ := newTestClient(t, handler)
	created, err := client.CreateReviewComment(context.Background(), testPR, model.CommentRequest{
		Body:      "range",
		CommitID:  "abc123",
		Path:      "main.go",
		StartLine: 8,
		Line:      12,
		StartSide: model.SideLeft,
		Side:      model.SideRight,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
}

func TestCreateReviewComment_UnprocessableEntity(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Validation Failed"}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.CreateReviewComment(context.Background(), testPR, model.CommentRequest{Line: 1, StartLine: 1, Side: model.SideRight})

	var statusErr *driven.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "GitHub API responded with 422: Unprocessable Entity")
	assert.Contains(t, err.Error(), "Validation Failed")
}

func TestCreateReviewComment_NonCreatedSuccess(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":1}`))
	})

	client, _ := newTestClient(t, handler)
	_, err := client.CreateReviewComment(context.Background(), testPR, model.CommentRequest{Line: 1, StartLine: 1, Side: model.SideRight})

	var statusErr *driven.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusOK, statusErr.StatusCode)
	assert.Equal(t, "GitHub API responded with 200: OK", err.Error())
}

func TestCreateReviewComment_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := ghAdapter.NewClientWithHTTPClient(server.Client(), server.URL, "test-token")
	require.NoError(t, err)
	server.Close()

	_, err = client.CreateReviewComment(context.Background(), testPR, model.CommentRequest{Line: 1, StartLine: 1, Side: model.SideRight})

	require.Error(t, err)
	var statusErr *driven.StatusError
	assert.False(t, errors.As(err, &statusErr), "transport failures carry no status")
	assert.Contains(t, err.Error(), "creating review comment on owner/repo#7")
}

func TestNewClient_BaseURLWithoutTrailingSlash(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, commentsPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ghAdapter.NewClient("test-token", server.URL)
	require.NoError(t, err)

	_, err = client.ListReviewComments(context.Background(), testPR)
	require.NoError(t, err)
}
