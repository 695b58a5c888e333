package executor

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reqmanhq/reqman/internal/types"
)

func TestExecute_CapturesStatusHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("X-Probe", "42")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "hello")
	}))
	defer server.Close()

	result, err := Execute(types.RequestDefinition{
		Method: "GET",
		URL:    server.URL,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Status != 200 {
		t.Errorf("Expected status 200, got %d", result.Status)
	}
	if !strings.HasPrefix(result.Full, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("Expected full text to start with the status line, got %q", result.Full)
	}
	if !strings.Contains(result.Headers, "X-Probe: 42") {
		t.Errorf("Expected X-Probe header in header block, got %q", result.Headers)
	}
	if strings.Contains(result.Body, "X-Probe") {
		t.Errorf("Expected headers excluded from body, got %q", result.Body)
	}
	if result.Body != "hello" {
		t.Errorf("Expected body \"hello\", got %q", result.Body)
	}
	if result.Error != "" {
		t.Errorf("Expected no error on success, got %q", result.Error)
	}
}

func TestExecute_FullIsHeadersBlankLineBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "payload")
	}))
	defer server.Close()

	result, err := Execute(types.RequestDefinition{Method: "GET", URL: server.URL})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := result.Headers + "\r\n\r\n" + result.Body
	if result.Full != want {
		t.Errorf("Expected full == headers + blank line + body\nfull: %q\nwant: %q", result.Full, want)
	}
}

func TestExecute_SendsHeadersAndBody(t *testing.T) {
	var gotBody string
	var gotHeader string
	var gotMethod string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		gotHeader = r.Header.Get("X-Token")
		gotMethod = r.Method
	}))
	defer server.Close()

	_, err := Execute(types.RequestDefinition{
		Method:  "POST",
		URL:     server.URL,
		Headers: map[string]string{"X-Token": "secret"},
		Body:    `{"n":1}`,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if gotMethod != "POST" {
		t.Errorf("Expected POST, got %s", gotMethod)
	}
	if gotHeader != "secret" {
		t.Errorf("Expected X-Token header, got %q", gotHeader)
	}
	if gotBody != `{"n":1}` {
		t.Errorf("Expected body forwarded, got %q", gotBody)
	}
}

func TestExecute_EmptyBodySendsNoPayload(t *testing.T) {
	var contentLength int64 = -1

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentLength = r.ContentLength
	}))
	defer server.Close()

	_, err := Execute(types.RequestDefinition{Method: "GET", URL: server.URL})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if contentLength != 0 {
		t.Errorf("Expected no request payload, got content length %d", contentLength)
	}
}

func TestExecute_NonSuccessStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	result, err := Execute(types.RequestDefinition{Method: "GET", URL: server.URL})

	if err != nil {
		t.Fatalf("Expected non-2xx to succeed at the transport level, got %v", err)
	}
	if result.Status != 500 {
		t.Errorf("Expected status 500, got %d", result.Status)
	}
	if result.Error != "" {
		t.Errorf("Expected no transport error, got %q", result.Error)
	}
}

func TestExecute_TransportFailureYieldsBestEffortResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	result, err := Execute(types.RequestDefinition{Method: "GET", URL: server.URL})

	if result == nil {
		t.Fatal("Expected a best-effort result on transport failure")
	}
	if result.Error == "" {
		t.Error("Expected error message captured in result")
	}
	if result.Body == "" || result.Full == "" {
		t.Error("Expected error message rendered as body/full text")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Errorf("Expected *TransportError, got %T (%v)", err, err)
	}
}

func TestExecute_InvalidMethodYieldsBestEffortResult(t *testing.T) {
	result, err := Execute(types.RequestDefinition{
		Method: "BAD METHOD",
		URL:    "https://example.com",
	})

	if result == nil {
		t.Fatal("Expected a best-effort result for an unbuildable request")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Errorf("Expected *TransportError, got %T", err)
	}
}
