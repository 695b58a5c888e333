package types

import "testing"

func TestIsKnownMethod(t *testing.T) {
	for _, method := range KnownMethods {
		if !IsKnownMethod(method) {
			t.Errorf("Expected %s to be known", method)
		}
	}

	for _, method := range []string{"get", "FETCH", ""} {
		if IsKnownMethod(method) {
			t.Errorf("Expected %q to be unknown", method)
		}
	}
}
