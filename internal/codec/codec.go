// Package codec converts a request definition to and from the editable
// plain-text form used for free-form editing. Decoding is deliberately
// lenient: half-finished edits must never fail, so unmatched lines are
// dropped instead of reported.
package codec

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/reqmanhq/reqman/internal/types"
)

const bodyMarker = "# Body"

var banner = []string{
	"# Edit the request and save.",
	"# Lines starting with '#' are ignored outside the body.",
}

// bodyMarkerPattern tolerates spacing and case variations of "# Body".
var bodyMarkerPattern = regexp.MustCompile(`(?i)^#\s*body\s*$`)

// Encode renders def as editable text: comment banner, Name/Method/URL
// lines, one "Key: Value" line per header (sorted by name, so identical
// input always yields identical text), the body marker, then the body
// verbatim.
func Encode(def types.RequestDefinition) string {
	var b strings.Builder

	for _, line := range banner {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Name: %s\n", def.Name)
	fmt.Fprintf(&b, "Method: %s\n", def.Method)
	fmt.Fprintf(&b, "URL: %s\n", def.URL)

	names := make([]string, 0, len(def.Headers))
	for name := range def.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, def.Headers[name])
	}

	b.WriteString(bodyMarker)
	b.WriteString("\n")
	b.WriteString(def.Body)

	return b.String()
}

// Decode parses edited text back into a request definition. Rules, in
// precedence order:
//
//   - the first "Name:", "Method:" and "URL:" lines bind those fields;
//     repeats are ignored and never become headers
//   - a "# Body" line (case and spacing tolerant) switches to body capture
//   - before the marker, "key: value" lines become headers, split on the
//     first colon only, so values may contain colons
//   - after the marker, every non-comment line is appended to the body
//     verbatim, newline-joined
//
// Headers are rebuilt from scratch; decoding fully replaces the previous
// header set and body. Anything unmatched is silently dropped.
func Decode(text string) types.RequestDefinition {
	def := types.RequestDefinition{Headers: map[string]string{}}

	var bodyLines []string
	var nameSet, methodSet, urlSet, inBody bool

	for _, line := range strings.Split(text, "\n") {
		if inBody {
			if strings.HasPrefix(line, "#") {
				continue
			}
			bodyLines = append(bodyLines, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if bodyMarkerPattern.MatchString(trimmed) {
			inBody = true
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			if !nameSet {
				def.Name = value
				nameSet = true
			}
		case "Method":
			if !methodSet {
				def.Method = strings.ToUpper(value)
				methodSet = true
			}
		case "URL":
			if !urlSet {
				def.URL = value
				urlSet = true
			}
		case "":
			// no header name, drop the line
		default:
			def.Headers[key] = value
		}
	}

	if len(bodyLines) > 0 {
		def.Body = strings.Join(bodyLines, "\n")
	}

	return def
}
