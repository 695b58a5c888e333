// Package app is the intent layer between a display surface and the core:
// it owns the loaded request list, the current selection and view mode, and
// turns discrete user intents into state transitions. The display layer
// renders the view models it hands back and never touches storage directly.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/reqmanhq/reqman/internal/codec"
	"github.com/reqmanhq/reqman/internal/config"
	"github.com/reqmanhq/reqman/internal/executor"
	"github.com/reqmanhq/reqman/internal/history"
	"github.com/reqmanhq/reqman/internal/store"
	"github.com/reqmanhq/reqman/internal/types"
	"github.com/reqmanhq/reqman/internal/views"
)

// Mode is the active view of the two-state machine. Select moves List to
// Detail; Escape moves back.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
)

// ErrExecutionInProgress is returned while a prior execution is still
// outstanding. At most one request is in flight at a time.
var ErrExecutionInProgress = errors.New("an execution is already in progress")

// App holds one editing session.
type App struct {
	store       *store.Store
	history     *history.Manager // nil disables logging
	sessionPath string

	requests   []types.RequestDefinition
	selectedID string
	mode       Mode
	executing  bool
}

// New loads the request list from st and restores the persisted session
// state from sessionPath. hist may be nil.
func New(st *store.Store, hist *history.Manager, sessionPath string) *App {
	a := &App{
		store:       st,
		history:     hist,
		sessionPath: sessionPath,
		requests:    st.Load(),
		mode:        ModeList,
	}
	a.loadSession()
	return a
}

// Requests returns the current ordered request list.
func (a *App) Requests() []types.RequestDefinition {
	return a.requests
}

// Mode returns the active view mode.
func (a *App) Mode() Mode {
	return a.mode
}

// Selected returns the currently selected request, if any. Selection is
// tracked by ID, so deletions elsewhere in the list never retarget it.
func (a *App) Selected() (*types.RequestDefinition, bool) {
	i := store.IndexByID(a.requests, a.selectedID)
	if i < 0 {
		return nil, false
	}
	return &a.requests[i], true
}

// ListView renders the request list view model.
func (a *App) ListView() []string {
	return views.RenderList(a.requests)
}

// DetailView renders the selected request, falling back to the list view
// when nothing is selected.
func (a *App) DetailView() []string {
	def, ok := a.Selected()
	if !ok {
		return a.ListView()
	}
	return views.RenderDetail(*def)
}

// OnNew appends a fresh GET request with a default name and persists the
// store. It returns the index of the new entry.
func (a *App) OnNew() (int, error) {
	def := types.RequestDefinition{
		Method:  "GET",
		Headers: map[string]string{},
	}

	requests, index := store.Insert(a.requests, def)
	a.requests = requests

	if err := a.store.Save(a.requests); err != nil {
		return index, fmt.Errorf("failed to save after insert: %w", err)
	}
	return index, nil
}

// OnDelete removes the request at index. A stale index is a no-op. Deleting
// the selected request clears the selection and returns to the list view.
func (a *App) OnDelete(index int) error {
	if index < 0 || index >= len(a.requests) {
		return nil
	}

	if a.requests[index].ID == a.selectedID {
		a.selectedID = ""
		a.mode = ModeList
		a.saveSession()
	}

	a.requests = store.DeleteAt(a.requests, index)
	if err := a.store.Save(a.requests); err != nil {
		return fmt.Errorf("failed to save after delete: %w", err)
	}
	return nil
}

// OnSelect marks the request at index as selected and switches to the
// detail view. A stale index is a no-op.
func (a *App) OnSelect(index int) {
	if index < 0 || index >= len(a.requests) {
		return
	}
	a.selectedID = a.requests[index].ID
	a.mode = ModeDetail
	a.saveSession()
}

// OnEscape leaves the detail view.
func (a *App) OnEscape() {
	a.mode = ModeList
	a.saveSession()
}

// OnExecute runs the request at index, stores the result on the entry,
// persists the store, and appends to the history log. The flow completes
// even when the transport fails: the returned result is always usable, and
// a *executor.TransportError signals that the failure should be shown as a
// notification. ErrExecutionInProgress is returned while a prior run is
// outstanding.
func (a *App) OnExecute(index int) (*types.ResponseResult, error) {
	if a.executing {
		return nil, ErrExecutionInProgress
	}
	if index < 0 || index >= len(a.requests) {
		return nil, nil
	}

	a.executing = true
	defer func() { a.executing = false }()

	// Hold the ID, not the index: the execution result must land on the
	// same entry even if the list shifted by the time it is stored.
	id := a.requests[index].ID
	def := a.requests[index]

	result, execErr := executor.Execute(def)

	if i := store.IndexByID(a.requests, id); i >= 0 {
		a.requests[i].Response = result
		if err := a.store.Save(a.requests); err != nil {
			slog.Warn("failed to persist execution result", "error", err)
		}
	}

	if a.history != nil {
		if err := a.history.Append(&def, result); err != nil {
			slog.Warn("failed to append history entry", "error", err)
		}
	}

	return result, execErr
}

// OnSave persists the current request list explicitly.
func (a *App) OnSave() error {
	if err := a.store.Save(a.requests); err != nil {
		return fmt.Errorf("failed to save requests: %w", err)
	}
	return nil
}

// OnTextEdited replaces the request at index with the decoded form of the
// edited text. The entry's ID and last response survive the edit; name,
// method, URL, headers and body are fully replaced by the decode.
func (a *App) OnTextEdited(index int, text string) error {
	if index < 0 || index >= len(a.requests) {
		return nil
	}

	def := codec.Decode(text)
	def.Response = a.requests[index].Response

	// Advisory only: unknown verbs are kept and sent as-is.
	if def.Method != "" && !types.IsKnownMethod(def.Method) {
		slog.Warn("unrecognized HTTP method", "method", def.Method)
	}

	a.requests = store.ReplaceAt(a.requests, index, def)
	if err := a.store.Save(a.requests); err != nil {
		return fmt.Errorf("failed to save after edit: %w", err)
	}
	return nil
}

func (a *App) loadSession() {
	data, err := os.ReadFile(a.sessionPath)
	if err != nil {
		return
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		slog.Debug("session file corrupt, ignoring", "path", a.sessionPath, "error", err)
		return
	}

	if store.IndexByID(a.requests, session.SelectedID) >= 0 {
		a.selectedID = session.SelectedID
		if session.Mode == "detail" {
			a.mode = ModeDetail
		}
	}
}

func (a *App) saveSession() {
	mode := "list"
	if a.mode == ModeDetail {
		mode = "detail"
	}
	session := types.Session{
		SelectedID: a.selectedID,
		Mode:       mode,
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(a.sessionPath, data, config.FilePermissions); err != nil {
		slog.Debug("failed to write session file", "path", a.sessionPath, "error", err)
	}
}
