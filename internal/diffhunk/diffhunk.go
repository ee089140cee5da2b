// Package diffhunk derives review comment coordinates from a unified diff.
package diffhunk

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/ericfisherdev/prcomment/internal/domain/model"
)

// ErrNoHunk is returned when the input contains no "@@" hunk header.
var ErrNoHunk = errors.New("diff contains no hunk header")

var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Range is the span of the new file covered by a diff, in the shape the
// review comment API expects.
type Range struct {
	StartLine int
	Line      int
	StartSide model.Side
	Side      model.Side
}

// Locate scans diff and returns the new-file range of its last hunk. StartSide
// is the side of the first added or deleted line and Side the side of the
// last one; a diff with only context lines reports RIGHT for both.
func Locate(diff string) (Range, error) {
	var (
		r     Range
		found bool
	)

	for _, line := range strings.Split(diff, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if m := hunkHeader.FindStringSubmatch(line); m != nil {
			start, _ := strconv.Atoi(m[3])
			count := 1
			if m[4] != "" {
				count, _ = strconv.Atoi(m[4])
			}
			r.StartLine = start
			r.Line = start + count - 1
			found = true
			continue
		}

		var side model.Side
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			side = model.SideRight
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			side = model.SideLeft
		default:
			continue
		}
		if r.StartSide == "" {
			r.StartSide = side
		}
		r.Side = side
	}

	if !found {
		return Range{}, ErrNoHunk
	}
	if r.StartSide == "" {
		r.StartSide, r.Side = model.SideRight, model.SideRight
	}
	return r, nil
}
