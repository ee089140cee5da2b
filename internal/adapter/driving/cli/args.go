package cli

import "strings"

var (
	postFlags = map[string]bool{"--dedup": true, "--dry-run": true, "-h": true, "--help": true}
	helpFlags = map[string]bool{"-h": true, "--help": true}
)

// subcommandFlags lists the flags each subcommand may take before its first
// positional argument. nil means the arguments are passed through untouched.
var subcommandFlags = map[string]map[string]bool{
	"post":       postFlags,
	"locate":     helpFlags,
	"preview":    helpFlags,
	"version":    nil,
	"help":       nil,
	"completion": nil,
}

// normalizeArgs inserts "--" before the first positional argument so a comment
// body starting with "-" is never read as a flag. Only flags leading the
// argument list are honored. Seven or more positionals are always a post, even
// when the body is a subcommand name; "post" itself always names the subcommand.
func normalizeArgs(args []string) []string {
	n := leadingFlags(args, postFlags)
	rest := args[n:]
	if len(rest) == 0 || rest[0] == "--" {
		return args
	}

	if flags, ok := subcommandFlags[rest[0]]; ok && (rest[0] == "post" || len(rest) < 7) {
		if flags == nil {
			return args
		}
		m := leadingFlags(rest[1:], flags)
		return withDash(args[:n+1+m], rest[1+m:])
	}

	return withDash(args[:n], rest)
}

// leadingFlags counts how many arguments at the front of args are known flags,
// with or without an "=value" suffix.
func leadingFlags(args []string, known map[string]bool) int {
	n := 0
	for _, arg := range args {
		name, _, _ := strings.Cut(arg, "=")
		if !known[name] {
			break
		}
		n++
	}
	return n
}

func withDash(prefix, positional []string) []string {
	out := make([]string, 0, len(prefix)+len(positional)+1)
	out = append(out, prefix...)
	if len(positional) > 0 && positional[0] != "--" {
		out = append(out, "--")
	}
	return append(out, positional...)
}
