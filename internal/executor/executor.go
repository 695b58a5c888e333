// Package executor performs the network call for a request definition and
// returns the parsed result. Transport failures never abort the calling
// flow: the caller always gets a usable ResponseResult, with the failure
// additionally typed as *TransportError for notification purposes.
package executor

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/reqmanhq/reqman/internal/response"
	"github.com/reqmanhq/reqman/internal/types"
)

// HTTPClient is the shared client for all executions. It carries no timeout
// by default; the transport's own limits apply. The entry point may set
// HTTPClient.Timeout from user settings before the first execution.
var HTTPClient = &http.Client{}

// TransportError marks a failure to reach the server (DNS, TLS, connection,
// or a request that could not be built). A non-2xx status is not a
// TransportError.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Execute sends def and returns the parsed response. It blocks until the
// network operation finishes; there is no retry. On transport failure the
// returned result carries the error message as its body so the display
// layer can still render something, and the error is a *TransportError.
func Execute(def types.RequestDefinition) (*types.ResponseResult, error) {
	start := time.Now()

	var bodyReader io.Reader
	if def.Body != "" {
		bodyReader = strings.NewReader(def.Body)
	}

	req, err := http.NewRequest(def.Method, def.URL, bodyReader)
	if err != nil {
		slog.Warn("request could not be built", "method", def.Method, "url", def.URL, "error", err)
		return failureResult(start, err), &TransportError{Err: err}
	}
	for key, value := range def.Headers {
		req.Header.Set(key, value)
	}

	resp, err := HTTPClient.Do(req)
	if err != nil {
		slog.Warn("request failed", "method", def.Method, "url", def.URL, "error", err)
		return failureResult(start, err), &TransportError{Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("response body read failed", "url", def.URL, "error", err)
		return failureResult(start, fmt.Errorf("failed to read response body: %w", err)),
			&TransportError{Err: err}
	}

	raw := rawResponseText(resp, string(bodyBytes))
	headers, body := response.Split(raw)

	result := &types.ResponseResult{
		Headers:    headers,
		Body:       body,
		Full:       raw,
		Status:     resp.StatusCode,
		StatusText: resp.Status,
		Duration:   time.Since(start).Milliseconds(),
		ExecutedAt: time.Now().UTC().Format(time.RFC3339),
	}

	slog.Info("request completed",
		"method", def.Method,
		"url", def.URL,
		"status", resp.StatusCode,
		"duration_ms", result.Duration)

	return result, nil
}

// rawResponseText reconstructs the complete response text: status line,
// header lines sorted by name, blank separator, body. Sorting keeps the
// text deterministic; net/http does not preserve wire order.
func rawResponseText(resp *http.Response, body string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\r\n", resp.Proto, resp.Status)

	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range resp.Header[name] {
			fmt.Fprintf(&b, "%s: %s\r\n", name, value)
		}
	}

	b.WriteString("\r\n")
	b.WriteString(body)

	return b.String()
}

func failureResult(start time.Time, err error) *types.ResponseResult {
	msg := err.Error()
	return &types.ResponseResult{
		Body:       msg,
		Full:       msg,
		Duration:   time.Since(start).Milliseconds(),
		ExecutedAt: time.Now().UTC().Format(time.RFC3339),
		Error:      msg,
	}
}
