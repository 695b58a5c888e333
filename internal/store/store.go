package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tidwall/jsonc"

	"github.com/reqmanhq/reqman/internal/config"
	"github.com/reqmanhq/reqman/internal/types"
)

// Store owns the durable, ordered list of request definitions.
type Store struct {
	path string
}

// New creates a store backed by the JSON file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Seed returns the two example requests used when no storage exists.
func Seed() []types.RequestDefinition {
	return []types.RequestDefinition{
		{
			ID:      uuid.NewString(),
			Name:    "Example GET",
			Method:  "GET",
			URL:     "https://httpbin.org/get",
			Headers: map[string]string{},
		},
		{
			ID:     uuid.NewString(),
			Name:   "Example POST",
			Method: "POST",
			URL:    "https://httpbin.org/post",
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
			Body: `{"hello": "world"}`,
		},
	}
}

// Load reads the request list from disk. A missing or unparseable file
// falls back to the seed set; Load never fails. Hand-edited files may carry
// comments or trailing commas, so the content is normalized from JSONC
// before unmarshalling.
func (s *Store) Load() []types.RequestDefinition {
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Debug("request store unreadable, seeding", "path", s.path, "error", err)
		return Seed()
	}

	var requests []types.RequestDefinition
	if err := json.Unmarshal(jsonc.ToJSON(data), &requests); err != nil {
		slog.Debug("request store corrupt, seeding", "path", s.path, "error", err)
		return Seed()
	}

	ensureIDs(requests)
	return requests
}

// Save serializes the full request list to disk. The containing directory is
// created if absent, and the write goes through a temp file plus rename so a
// crash mid-write cannot leave a truncated store behind.
func (s *Store) Save(requests []types.RequestDefinition) error {
	if err := os.MkdirAll(filepath.Dir(s.path), config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal requests: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".requests-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close store file: %w", err)
	}
	if err := os.Chmod(tmpName, config.FilePermissions); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set store file permissions: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Insert appends def and returns the new list plus the index of the new
// entry. A blank name defaults to "Request N" where N is the new length;
// a blank ID gets a generated one.
func Insert(requests []types.RequestDefinition, def types.RequestDefinition) ([]types.RequestDefinition, int) {
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if def.Name == "" {
		def.Name = fmt.Sprintf("Request %d", len(requests)+1)
	}
	if def.Headers == nil {
		def.Headers = map[string]string{}
	}

	requests = append(requests, def)
	return requests, len(requests) - 1
}

// DeleteAt removes the entry at index. Out-of-bounds indexes are a silent
// no-op; stale indexes must never crash the caller.
func DeleteAt(requests []types.RequestDefinition, index int) []types.RequestDefinition {
	if index < 0 || index >= len(requests) {
		return requests
	}
	return append(requests[:index], requests[index+1:]...)
}

// ReplaceAt swaps the entry at index for def, keeping the existing entry's
// ID so edits never change identity. Out-of-bounds indexes are a no-op.
func ReplaceAt(requests []types.RequestDefinition, index int, def types.RequestDefinition) []types.RequestDefinition {
	if index < 0 || index >= len(requests) {
		return requests
	}
	def.ID = requests[index].ID
	requests[index] = def
	return requests
}

// IndexByID returns the position of the request with the given ID, or -1.
func IndexByID(requests []types.RequestDefinition, id string) int {
	if id == "" {
		return -1
	}
	for i := range requests {
		if requests[i].ID == id {
			return i
		}
	}
	return -1
}

func ensureIDs(requests []types.RequestDefinition) {
	for i := range requests {
		if requests[i].ID == "" {
			requests[i].ID = uuid.NewString()
		}
		if requests[i].Headers == nil {
			requests[i].Headers = map[string]string{}
		}
	}
}
