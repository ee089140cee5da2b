package model

// PostOutcome describes what happened to a CommentRequest.
// Exactly one of Created, Skipped or DryRun is true on success.
type PostOutcome struct {
	Created bool
	Skipped bool // An identical comment already exists on the pull request.
	DryRun  bool
	Comment ReviewComment // Populated only when Created is true.
}
