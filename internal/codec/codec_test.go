package codec

import (
	"reflect"
	"strings"
	"testing"

	"github.com/reqmanhq/reqman/internal/types"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	def := types.RequestDefinition{
		Name:   "Create user",
		Method: "POST",
		URL:    "https://api.example.com/users?active=true",
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer abc123",
		},
		Body: "{\n  \"name\": \"test\"\n}",
	}

	decoded := Decode(Encode(def))

	if decoded.Name != def.Name {
		t.Errorf("Expected name %q, got %q", def.Name, decoded.Name)
	}
	if decoded.Method != def.Method {
		t.Errorf("Expected method %q, got %q", def.Method, decoded.Method)
	}
	if decoded.URL != def.URL {
		t.Errorf("Expected url %q, got %q", def.URL, decoded.URL)
	}
	if !reflect.DeepEqual(decoded.Headers, def.Headers) {
		t.Errorf("Expected headers %v, got %v", def.Headers, decoded.Headers)
	}
	if decoded.Body != def.Body {
		t.Errorf("Expected body %q, got %q", def.Body, decoded.Body)
	}
}

func TestEncodeDecode_RoundTripEmptyBody(t *testing.T) {
	def := types.RequestDefinition{
		Name:    "Ping",
		Method:  "GET",
		URL:     "https://example.com/ping",
		Headers: map[string]string{},
	}

	decoded := Decode(Encode(def))

	if decoded.Body != "" {
		t.Errorf("Expected empty body, got %q", decoded.Body)
	}
	if len(decoded.Headers) != 0 {
		t.Errorf("Expected no headers, got %v", decoded.Headers)
	}
}

func TestEncode_FieldOrder(t *testing.T) {
	def := types.RequestDefinition{
		Name:    "Ordered",
		Method:  "GET",
		URL:     "https://example.com",
		Headers: map[string]string{"B-Header": "2", "A-Header": "1"},
		Body:    "payload",
	}

	text := Encode(def)
	lines := strings.Split(text, "\n")

	var fieldLines []string
	for _, line := range lines {
		if strings.HasPrefix(line, "#") && !strings.EqualFold(strings.TrimSpace(line), "# Body") {
			continue
		}
		fieldLines = append(fieldLines, line)
	}

	want := []string{
		"Name: Ordered",
		"Method: GET",
		"URL: https://example.com",
		"A-Header: 1",
		"B-Header: 2",
		"# Body",
		"payload",
	}
	if !reflect.DeepEqual(fieldLines, want) {
		t.Errorf("Expected lines %v, got %v", want, fieldLines)
	}
}

func TestDecode_HeaderSplitsOnFirstColonOnly(t *testing.T) {
	decoded := Decode("X-Custom: a:b:c")

	if got := decoded.Headers["X-Custom"]; got != "a:b:c" {
		t.Errorf("Expected header value \"a:b:c\", got %q", got)
	}
}

func TestDecode_FirstOccurrenceBinds(t *testing.T) {
	text := strings.Join([]string{
		"Name: first",
		"Method: get",
		"URL: https://one.example.com",
		"Name: second",
		"URL: https://two.example.com",
	}, "\n")

	decoded := Decode(text)

	if decoded.Name != "first" {
		t.Errorf("Expected name \"first\", got %q", decoded.Name)
	}
	if decoded.URL != "https://one.example.com" {
		t.Errorf("Expected first URL to bind, got %q", decoded.URL)
	}
	// Repeated Name/URL lines must not leak into headers either.
	if len(decoded.Headers) != 0 {
		t.Errorf("Expected no headers, got %v", decoded.Headers)
	}
}

func TestDecode_MethodUppercased(t *testing.T) {
	decoded := Decode("Method: post")

	if decoded.Method != "POST" {
		t.Errorf("Expected method POST, got %q", decoded.Method)
	}
}

func TestDecode_BodyMarkerTolerant(t *testing.T) {
	for _, marker := range []string{"# Body", "#body", "#  BODY", "# body  "} {
		decoded := Decode(marker + "\nline one\nline two")
		if decoded.Body != "line one\nline two" {
			t.Errorf("Marker %q: expected body captured, got %q", marker, decoded.Body)
		}
	}
}

func TestDecode_CommentLinesInBodySkipped(t *testing.T) {
	decoded := Decode("# Body\nkeep\n# dropped comment\nalso keep")

	if decoded.Body != "keep\nalso keep" {
		t.Errorf("Expected comment lines dropped from body, got %q", decoded.Body)
	}
}

func TestDecode_BodyLinesWithColonsStayInBody(t *testing.T) {
	decoded := Decode("# Body\nkey: value")

	if decoded.Body != "key: value" {
		t.Errorf("Expected body \"key: value\", got %q", decoded.Body)
	}
	if len(decoded.Headers) != 0 {
		t.Errorf("Expected no headers after the marker, got %v", decoded.Headers)
	}
}

func TestDecode_MalformedLinesIgnored(t *testing.T) {
	text := strings.Join([]string{
		"this line has no colon",
		"Name: ok",
		": value without key",
		"",
		"URL: https://example.com",
	}, "\n")

	decoded := Decode(text)

	if decoded.Name != "ok" {
		t.Errorf("Expected name \"ok\", got %q", decoded.Name)
	}
	if decoded.URL != "https://example.com" {
		t.Errorf("Expected url bound, got %q", decoded.URL)
	}
	if len(decoded.Headers) != 0 {
		t.Errorf("Expected malformed lines ignored, got headers %v", decoded.Headers)
	}
}

func TestDecode_HeadersRebuiltFromScratch(t *testing.T) {
	decoded := Decode("Name: n\nX-Only: present")

	if len(decoded.Headers) != 1 {
		t.Fatalf("Expected exactly 1 header, got %v", decoded.Headers)
	}
	if decoded.Headers["X-Only"] != "present" {
		t.Errorf("Expected X-Only header, got %v", decoded.Headers)
	}
}
