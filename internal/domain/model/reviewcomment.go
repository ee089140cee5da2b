package model

import "time"

// ReviewComment represents an existing comment on a specific line within a
// pull request review, as returned by the GitHub API.
type ReviewComment struct {
	ID        int64
	Author    string
	Body      string
	Path      string
	Position  int // Diff-relative position; zero when GitHub omits it.
	Line      int
	StartLine int
	Side      string
	CommitID  string
	HTMLURL   string
	CreatedAt time.Time
}

// Duplicates reports whether c already carries the comment described by req.
// Body, path and commit must match exactly and the stored position must equal
// the requested line.
func (c ReviewComment) Duplicates(req CommentRequest) bool {
	return c.Body == req.Body &&
		c.Path == req.Path &&
		c.Position == req.Line &&
		c.CommitID == req.CommitID
}
