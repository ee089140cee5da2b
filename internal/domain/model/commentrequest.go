package model

import "strings"

// CommentRequest is the immutable input for creating one pull request review
// comment. Line is always set; StartLine and StartSide only matter when the
// request spans more than one line.
type CommentRequest struct {
	Body      string
	CommitID  string
	Path      string
	StartLine int
	Line      int
	StartSide Side
	Side      Side
}

// IsMultiLine reports whether the request describes a range comment rather
// than a single-line comment.
func (r CommentRequest) IsMultiLine() bool {
	return r.StartLine != r.Line
}

var bodyEscapes = strings.NewReplacer(`\n`, "\n", `\t+`, "    ")

// NormalizeBody expands the literal escape sequences that shell pipelines
// leave in comment text: `\n` becomes a newline and `\t+` becomes four spaces.
func NormalizeBody(body string) string {
	return bodyEscapes.Replace(body)
}
