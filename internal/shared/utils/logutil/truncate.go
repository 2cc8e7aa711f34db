package logutil

// TruncateForLog cuts s to maxLen bytes and marks the cut with "...".
// Rendered SQL and pasted alias text can be long; logs only need the start.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
