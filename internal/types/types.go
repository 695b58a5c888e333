package types

// RequestDefinition is a named, persisted HTTP request template.
// ID is a generated identifier that stays stable across edits and
// reorderings; the display index is never used as a durable handle.
type RequestDefinition struct {
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name,omitempty"`
	Method   string            `json:"method"`
	URL      string            `json:"url"`
	Headers  map[string]string `json:"headers,omitempty"`
	Body     string            `json:"body,omitempty"`
	Response *ResponseResult   `json:"response,omitempty"`
}

// ResponseResult is the outcome of one execution. Full is the authoritative
// raw response text (status line + headers + blank line + body); Headers and
// Body are the split halves. Error carries a transport failure message and
// is empty on success.
type ResponseResult struct {
	Headers    string `json:"headers"`
	Body       string `json:"body"`
	Full       string `json:"full"`
	Status     int    `json:"status,omitempty"`
	StatusText string `json:"statusText,omitempty"`
	Duration   int64  `json:"duration,omitempty"` // milliseconds
	ExecutedAt string `json:"executedAt,omitempty"`
	Error      string `json:"error,omitempty"`
}

// HistoryEntry is one row of the execution log.
type HistoryEntry struct {
	ID          int64  `json:"id,omitempty"`
	Timestamp   string `json:"timestamp"`
	RequestID   string `json:"requestId,omitempty"`
	RequestName string `json:"requestName,omitempty"`
	Method      string `json:"method"`
	URL         string `json:"url"`
	Status      int    `json:"status"`
	StatusText  string `json:"statusText,omitempty"`
	Duration    int64  `json:"duration"`
	Error       string `json:"error,omitempty"`
	Body        string `json:"body,omitempty"`
}

// Session is the persisted, display-agnostic session state.
type Session struct {
	SelectedID     string `json:"selectedId,omitempty"`
	Mode           string `json:"mode,omitempty"` // "list" or "detail"
	HistoryEnabled *bool  `json:"historyEnabled,omitempty"`
}

// KnownMethods lists the HTTP verbs the tool recognizes. Methods outside
// this set are kept as-is; validation is advisory, not blocking.
var KnownMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// IsKnownMethod reports whether method is one of KnownMethods.
// The comparison is exact; callers uppercase first.
func IsKnownMethod(method string) bool {
	for _, m := range KnownMethods {
		if method == m {
			return true
		}
	}
	return false
}
