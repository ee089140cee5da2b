// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/prcomment/internal/domain/model"
	"github.com/ericfisherdev/prcomment/internal/domain/port/driven"
)

// PostOptions controls the optional stages of CommentPoster.Post.
type PostOptions struct {
	// Deduplicate fetches existing review comments first and skips the write
	// when an identical comment is already present.
	Deduplicate bool
	// DryRun stops before the write and reports what would have been sent.
	DryRun bool
}

// CommentPoster creates one pull request review comment per call.
type CommentPoster struct {
	writer driven.ReviewCommentWriter
	pr     driven.PullRequestRef
	opts   PostOptions
}

// NewCommentPoster creates a CommentPoster bound to one pull request.
func NewCommentPoster(writer driven.ReviewCommentWriter, pr driven.PullRequestRef, opts PostOptions) *CommentPoster {
	return &CommentPoster{
		writer: writer,
		pr:     pr,
		opts:   opts,
	}
}

// Post normalizes the request body, optionally checks for an existing
// duplicate, then creates the comment. Failures are logged and returned as a
// *PostError. No request is retried.
//
// Duplicate detection is best effort: two concurrent invocations can both
// observe no duplicate and both post.
func (p *CommentPoster) Post(ctx context.Context, req model.CommentRequest) (model.PostOutcome, error) {
	req.Body = model.NormalizeBody(req.Body)

	slog.Debug("posting review comment",
		"pr", p.pr.Number,
		"repo", p.pr.Owner+"/"+p.pr.Repo,
		"commit_id", req.CommitID,
		"path", req.Path,
		"start_line", req.StartLine,
		"line", req.Line,
		"start_side", req.StartSide,
		"side", req.Side,
		"multi_line", req.IsMultiLine(),
		"body", req.Body,
	)

	outcome, err := p.post(ctx, req)
	if err != nil {
		postErr := classify(err)
		slog.Error("error posting comment",
			"kind", postErr.Kind,
			"status", postErr.Status,
			"error", postErr.Err.Error(),
			"detail", fmt.Sprintf("%#v", postErr.Err),
		)
		return model.PostOutcome{}, postErr
	}

	return outcome, nil
}

func (p *CommentPoster) post(ctx context.Context, req model.CommentRequest) (model.PostOutcome, error) {
	if p.opts.Deduplicate {
		existing, err := p.writer.ListReviewComments(ctx, p.pr)
		if err != nil {
			return model.PostOutcome{}, fmt.Errorf("fetching existing comments: %w", err)
		}

		if dup, ok := findDuplicate(existing, req); ok {
			slog.Info("comment already exists, skipping",
				"comment_id", dup.ID,
				"path", req.Path,
				"line", req.Line,
			)
			return model.PostOutcome{Skipped: true}, nil
		}
	}

	if p.opts.DryRun {
		slog.Info("dry run, comment not posted",
			"path", req.Path,
			"line", req.Line,
			"multi_line", req.IsMultiLine(),
		)
		return model.PostOutcome{DryRun: true}, nil
	}

	created, err := p.writer.CreateReviewComment(ctx, p.pr, req)
	if err != nil {
		return model.PostOutcome{}, err
	}

	slog.Info("comment posted successfully",
		"comment_id", created.ID,
		"url", created.HTMLURL,
		"path", created.Path,
	)

	return model.PostOutcome{Created: true, Comment: created}, nil
}

// findDuplicate scans existing comments in order and returns the first one
// that duplicates req.
func findDuplicate(existing []model.ReviewComment, req model.CommentRequest) (model.ReviewComment, bool) {
	for _, c := range existing {
		if c.Duplicates(req) {
			return c, true
		}
	}
	return model.ReviewComment{}, false
}
