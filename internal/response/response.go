// Package response splits raw HTTP response text into its header block and
// body. It is a pure text operation; the status line is just the first line
// of the header block and gets no special treatment.
package response

import "strings"

// Split divides raw at the first empty line: everything before it is the
// header block, everything strictly after it is the body. Later empty lines
// belong to the body. When no empty line exists the whole input is treated
// as body and the header block is empty. Both CRLF and LF line endings are
// handled.
func Split(raw string) (headers, body string) {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, "\r") != "" {
			continue
		}
		headers = strings.TrimSuffix(strings.Join(lines[:i], "\n"), "\r")
		body = strings.Join(lines[i+1:], "\n")
		return headers, body
	}
	return "", raw
}
