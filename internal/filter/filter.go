// Package filter applies JMESPath expressions to JSON response bodies.
package filter

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Apply evaluates expr against body. The body must be valid JSON. String
// results are returned unquoted; everything else is re-marshaled with
// indentation. A nil result yields an empty string.
func Apply(body string, expr string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return "", fmt.Errorf("response body is not valid JSON: %w", err)
	}

	result, err := jmespath.Search(expr, data)
	if err != nil {
		return "", fmt.Errorf("failed to apply query %q: %w", expr, err)
	}
	if result == nil {
		return "", nil
	}

	if s, ok := result.(string); ok {
		return s, nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal query result: %w", err)
	}
	return string(out), nil
}
