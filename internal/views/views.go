// Package views builds display-ready line sequences from application state.
// Everything here is a pure function: same input, byte-identical output.
// No I/O, no styling; the display layer owns presentation.
package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/reqmanhq/reqman/internal/types"
)

// ListLegend is the fixed command legend appended to the list view.
var ListLegend = []string{
	"[n]ew  [d]elete  [enter] select  [r]un  [q]uit",
}

// DetailLegend is the fixed command legend appended to the detail view.
var DetailLegend = []string{
	"[e]dit  [r]un  [s]ave  [esc] back",
}

// RenderList renders the numbered request list: index, method and name on
// one line, the URL on the next, a blank separator between entries, then
// the command legend.
func RenderList(requests []types.RequestDefinition) []string {
	lines := make([]string, 0, len(requests)*3+len(ListLegend)+1)

	if len(requests) == 0 {
		lines = append(lines, "No requests. Create one to get started.", "")
		return append(lines, ListLegend...)
	}

	for i, req := range requests {
		lines = append(lines,
			fmt.Sprintf("%d. [%s] %s", i+1, req.Method, req.Name),
			"   "+req.URL,
			"")
	}

	return append(lines, ListLegend...)
}

// RenderDetail renders a single request: method and URL, headers one per
// line in sorted order, the body verbatim, then the command legend.
func RenderDetail(def types.RequestDefinition) []string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s", def.Method, def.URL))

	if len(def.Headers) > 0 {
		lines = append(lines, "")
		for _, name := range sortedHeaderNames(def.Headers) {
			lines = append(lines, fmt.Sprintf("%s: %s", name, def.Headers[name]))
		}
	}

	if def.Body != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(def.Body, "\n")...)
	}

	lines = append(lines, "")
	return append(lines, DetailLegend...)
}

// RenderResponse renders the last execution result. The full raw text is
// the authoritative source; a status summary line precedes it.
func RenderResponse(result *types.ResponseResult) []string {
	if result == nil {
		return []string{"No response yet."}
	}

	var summary string
	if result.Error != "" {
		summary = fmt.Sprintf("request failed after %dms: %s", result.Duration, result.Error)
	} else {
		summary = fmt.Sprintf("%s in %dms", result.StatusText, result.Duration)
	}

	lines := []string{summary, ""}
	return append(lines, strings.Split(result.Full, "\n")...)
}

// RenderHistory renders execution log entries, newest first as given.
func RenderHistory(entries []types.HistoryEntry) []string {
	if len(entries) == 0 {
		return []string{"No executions recorded."}
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		status := e.StatusText
		if e.Error != "" {
			status = "ERROR " + e.Error
		} else if status == "" {
			status = fmt.Sprintf("%d", e.Status)
		}
		lines = append(lines, fmt.Sprintf("%s  %-7s %s  %s (%dms)",
			e.Timestamp, e.Method, e.URL, status, e.Duration))
	}

	return lines
}

// FilterRequests returns the requests whose names fuzzy-match query,
// best match first. An empty query returns the input unchanged.
func FilterRequests(requests []types.RequestDefinition, query string) []types.RequestDefinition {
	if query == "" {
		return requests
	}

	names := make([]string, len(requests))
	for i, req := range requests {
		names[i] = req.Name
	}

	matches := fuzzy.Find(query, names)
	filtered := make([]types.RequestDefinition, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, requests[match.Index])
	}

	return filtered
}

func sortedHeaderNames(headers map[string]string) []string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
