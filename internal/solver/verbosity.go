package solver

import "strings"

// Verbosity governs how much inbound/outbound traffic the session mirrors
// to its logger (spec.md §4.B).
type Verbosity int

const (
	// VerbositySilent logs nothing.
	VerbositySilent Verbosity = 0
	// VerbosityKinds logs command/response kinds only.
	VerbosityKinds Verbosity = 1
	// VerbosityFull logs full text, truncating anything longer than
	// truncateLen with an ellipsis.
	VerbosityFull Verbosity = 2
)

const truncateLen = 50

// truncate implements the level-2 50-character truncation rule.
func truncate(s string) string {
	if len(s) <= truncateLen {
		return s
	}
	return s[:truncateLen] + "..."
}

// commandKind extracts a command's leading token, used for level-1 logging.
func commandKind(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	cmd = strings.TrimPrefix(cmd, "(")
	if i := strings.IndexAny(cmd, " )"); i >= 0 {
		return cmd[:i]
	}
	return cmd
}
