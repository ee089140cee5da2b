package driven

import (
	"context"

	"github.com/ericfisherdev/prcomment/internal/domain/model"
)

// PullRequestRef identifies the pull request comments are read from and
// written to.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// ReviewCommentWriter defines the driven port for pull request review
// comments. Listing exists only to support duplicate detection before a write.
type ReviewCommentWriter interface {
	// ListReviewComments returns every review comment on the pull request,
	// following pagination until the last page.
	ListReviewComments(ctx context.Context, pr PullRequestRef) ([]model.ReviewComment, error)

	// CreateReviewComment posts one review comment. Implementations send a
	// single-line payload when req.IsMultiLine() is false and a range payload
	// otherwise. Any response other than 201 Created is returned as a *StatusError.
	CreateReviewComment(ctx context.Context, pr PullRequestRef, req model.CommentRequest) (model.ReviewComment, error)
}
