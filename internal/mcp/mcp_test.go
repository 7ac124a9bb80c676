package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/noten/internal/config"
	"github.com/hpungsan/noten/internal/db"
	"github.com/hpungsan/noten/internal/persist"
	"github.com/hpungsan/noten/internal/store"
)

// testSetup creates a store backed by a temporary database.
func testSetup(t *testing.T) (*store.NoteStore, *config.Config, func()) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}

	cfg := config.DefaultConfig()
	clock := func() time.Time { return time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC) }
	s := store.Open(context.Background(),
		persist.NewCodec(db.NewKV(database)),
		store.WithConfig(cfg),
		store.WithClock(clock),
	)

	cleanup := func() {
		database.Close()
	}

	return s, cfg, cleanup
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// addNotes stores the given texts through the note_add handler.
func addNotes(t *testing.T, h *Handlers, texts ...string) {
	t.Helper()
	for _, text := range texts {
		result, err := h.HandleAdd(context.Background(), makeRequest(map[string]any{"text": text}))
		if err != nil {
			t.Fatalf("HandleAdd() error = %v", err)
		}
		if result.IsError {
			t.Fatalf("HandleAdd(%q) failed: %s", text, extractErrorMessage(result))
		}
	}
}

func decodeResult[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	var out T
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &out); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	return out
}

// TestHandleAdd tests the note_add handler.
func TestHandleAdd(t *testing.T) {
	s, _, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(s)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantAdded bool
		wantError bool
		errorCode string
	}{
		{
			name:      "add text",
			args:      map[string]any{"text": "Buy milk"},
			wantAdded: true,
		},
		{
			name:      "add trims",
			args:      map[string]any{"text": "  Call mom \n"},
			wantAdded: true,
		},
		{
			name:      "blank text is ignored",
			args:      map[string]any{"text": "   "},
			wantAdded: false,
		},
		{
			name:      "missing text is ignored",
			args:      map[string]any{},
			wantAdded: false,
		},
		{
			name:      "text of wrong type",
			args:      map[string]any{"text": 42},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleAdd(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}
			if result.IsError {
				t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
			}

			out := decodeResult[map[string]any](t, result)
			if out["added"] != tt.wantAdded {
				t.Errorf("added = %v, want %v", out["added"], tt.wantAdded)
			}
		})
	}

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if got, _ := s.GetAt(1); got.Text != "Call mom" {
		t.Errorf("GetAt(1).Text = %q, want %q", got.Text, "Call mom")
	}
}

// TestHandleGet tests the note_get handler.
func TestHandleGet(t *testing.T) {
	s, _, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(s)
	ctx := context.Background()
	addNotes(t, h, "A", "B")
	firstID := s.List()[0].ID

	tests := []struct {
		name      string
		args      map[string]any
		wantText  string
		wantError bool
		errorCode string
	}{
		{name: "by index", args: map[string]any{"index": 1}, wantText: "B"},
		{name: "by id", args: map[string]any{"id": firstID}, wantText: "A"},
		{name: "index out of range", args: map[string]any{"index": 2}, wantError: true, errorCode: "INDEX_OUT_OF_RANGE"},
		{name: "negative index", args: map[string]any{"index": -1}, wantError: true, errorCode: "INDEX_OUT_OF_RANGE"},
		{name: "unknown id", args: map[string]any{"id": "nope"}, wantError: true, errorCode: "NOT_FOUND"},
		{name: "both id and index", args: map[string]any{"id": firstID, "index": 0}, wantError: true, errorCode: "AMBIGUOUS_ADDRESSING"},
		{name: "no address", args: map[string]any{}, wantError: true, errorCode: "INVALID_REQUEST"},
		{name: "fractional index", args: map[string]any{"index": 0.5}, wantError: true, errorCode: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleGet(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}
			if result.IsError {
				t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
			}

			out := decodeResult[map[string]any](t, result)
			if out["text"] != tt.wantText {
				t.Errorf("text = %v, want %q", out["text"], tt.wantText)
			}
			if out["timestamp"] != "15 October 2026 09:30" {
				t.Errorf("timestamp = %v, want %q", out["timestamp"], "15 October 2026 09:30")
			}
		})
	}
}

// TestHandleListAndLatest tests note_list and note_latest.
func TestHandleListAndLatest(t *testing.T) {
	s, _, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(s)
	ctx := context.Background()

	result, err := h.HandleLatest(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "NOT_FOUND")

	addNotes(t, h, "first", "second", "third")

	result, err = h.HandleList(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	list := decodeResult[struct {
		Items []struct {
			Number  int    `json:"number"`
			Preview string `json:"preview"`
		} `json:"items"`
		Total      int  `json:"total"`
		Persistent bool `json:"persistent"`
	}](t, result)

	if list.Total != 3 || len(list.Items) != 3 {
		t.Fatalf("total = %d, items = %d, want 3", list.Total, len(list.Items))
	}
	if list.Items[2].Number != 3 || list.Items[2].Preview != "third" {
		t.Errorf("items[2] = %+v, want #3 third", list.Items[2])
	}
	if !list.Persistent {
		t.Error("persistent = false, want true")
	}

	result, err = h.HandleLatest(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	latest := decodeResult[map[string]any](t, result)
	if latest["text"] != "third" {
		t.Errorf("latest text = %v, want %q", latest["text"], "third")
	}
	if latest["number"] != float64(3) {
		t.Errorf("latest number = %v, want 3", latest["number"])
	}
}

// TestHandleUpdate tests the note_update handler.
func TestHandleUpdate(t *testing.T) {
	s, _, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(s)
	ctx := context.Background()
	addNotes(t, h, "A", "B")

	tests := []struct {
		name        string
		args        map[string]any
		wantUpdated bool
		wantError   bool
		errorCode   string
	}{
		{name: "update by index", args: map[string]any{"index": 0, "text": "Z"}, wantUpdated: true},
		{name: "blank text is ignored", args: map[string]any{"index": 1, "text": "  "}, wantUpdated: false},
		{name: "index out of range", args: map[string]any{"index": 5, "text": "X"}, wantError: true, errorCode: "INDEX_OUT_OF_RANGE"},
		{name: "unknown id", args: map[string]any{"id": "nope", "text": "X"}, wantError: true, errorCode: "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleUpdate(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}
			if result.IsError {
				t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
			}

			out := decodeResult[map[string]any](t, result)
			if out["updated"] != tt.wantUpdated {
				t.Errorf("updated = %v, want %v", out["updated"], tt.wantUpdated)
			}
		})
	}

	texts := []string{}
	for _, n := range s.List() {
		texts = append(texts, n.Text)
	}
	if strings.Join(texts, ",") != "Z,B" {
		t.Errorf("notes = %v, want [Z B]", texts)
	}
}

// TestHandleDeleteAndClear tests note_delete and note_clear.
func TestHandleDeleteAndClear(t *testing.T) {
	s, _, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(s)
	ctx := context.Background()
	addNotes(t, h, "A", "B", "C")

	result, err := h.HandleDelete(ctx, makeRequest(map[string]any{"index": 1}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	if got, _ := s.GetAt(1); got.Text != "C" {
		t.Errorf("GetAt(1).Text = %q, want %q after delete", got.Text, "C")
	}

	result, err = h.HandleDelete(ctx, makeRequest(map[string]any{"index": 2}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "INDEX_OUT_OF_RANGE")

	result, err = h.HandleClear(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out := decodeResult[map[string]any](t, result)
	if out["cleared"] != float64(2) {
		t.Errorf("cleared = %v, want 2", out["cleared"])
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

// TestHandleEditFlow tests begin, commit and cancel.
func TestHandleEditFlow(t *testing.T) {
	s, _, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(s)
	ctx := context.Background()
	addNotes(t, h, "A", "B")

	result, err := h.HandleEditCommit(ctx, makeRequest(map[string]any{"text": "X"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "NO_ACTIVE_EDIT")

	result, err = h.HandleEditBegin(ctx, makeRequest(map[string]any{"index": 1}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	draft := decodeResult[map[string]any](t, result)
	if draft["text"] != "B" {
		t.Errorf("draft text = %v, want %q", draft["text"], "B")
	}

	// Blank commit keeps the edit open
	result, err = h.HandleEditCommit(ctx, makeRequest(map[string]any{"text": " "}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if out := decodeResult[map[string]any](t, result); out["updated"] != false {
		t.Errorf("updated = %v, want false", out["updated"])
	}

	result, err = h.HandleEditCommit(ctx, makeRequest(map[string]any{"text": "B2"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if out := decodeResult[map[string]any](t, result); out["updated"] != true {
		t.Errorf("updated = %v, want true", out["updated"])
	}
	if got, _ := s.GetAt(1); got.Text != "B2" {
		t.Errorf("GetAt(1).Text = %q, want %q", got.Text, "B2")
	}

	result, err = h.HandleEditBegin(ctx, makeRequest(map[string]any{"index": 7}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "INDEX_OUT_OF_RANGE")

	if _, err := h.HandleEditBegin(ctx, makeRequest(map[string]any{"index": 0})); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	result, err = h.HandleEditCancel(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if out := decodeResult[map[string]any](t, result); out["cancelled"] != true {
		t.Errorf("cancelled = %v, want true", out["cancelled"])
	}
	if got, _ := s.GetAt(0); got.Text != "A" {
		t.Errorf("GetAt(0).Text = %q, want %q after cancel", got.Text, "A")
	}
}

// TestHandleExport tests the note_export handler.
func TestHandleExport(t *testing.T) {
	s, _, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(s)
	ctx := context.Background()
	addNotes(t, h, "exported")

	result, err := h.HandleExport(ctx, makeRequest(map[string]any{"format": "yaml"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	out := decodeResult[ExportResult](t, result)
	if out.Format != "yaml" {
		t.Errorf("format = %q, want yaml", out.Format)
	}
	if !strings.Contains(out.Document, "text: exported") {
		t.Errorf("document = %q, want yaml note entry", out.Document)
	}

	result, err = h.HandleExport(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if out := decodeResult[ExportResult](t, result); out.Format != "json" {
		t.Errorf("default format = %q, want json", out.Format)
	}

	result, err = h.HandleExport(ctx, makeRequest(map[string]any{"format": "xml"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestErrorResult_HidesInternalDetails(t *testing.T) {
	result := errorResult(context.DeadlineExceeded)
	if !result.IsError {
		t.Fatal("IsError = false, want true")
	}
	assertErrorCode(t, result, "INTERNAL")
	if strings.Contains(extractErrorMessage(result), "deadline") {
		t.Errorf("internal cause leaked: %s", extractErrorMessage(result))
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"note_clear", "capsule_store", "note_add"})
	if len(unknown) != 1 || unknown[0] != "capsule_store" {
		t.Errorf("ValidateDisabledTools() = %v, want [capsule_store]", unknown)
	}
}

func TestServerRegistration(t *testing.T) {
	s, cfg, cleanup := testSetup(t)
	defer cleanup()

	srv := NewServer(s, cfg, "test")
	tools := srv.ListTools()
	if tools == nil {
		t.Fatal("expected tools to be registered, got nil")
	}

	expectedTools := []string{
		"note_list",
		"note_add",
		"note_get",
		"note_latest",
		"note_update",
		"note_delete",
		"note_clear",
		"note_edit_begin",
		"note_edit_commit",
		"note_edit_cancel",
		"note_export",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}

	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	s, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = []string{"note_clear", "note_delete", "note_clear"}
	srv := NewServer(s, cfg, "test")
	tools := srv.ListTools()

	if len(tools) != len(AllToolNames())-2 {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(AllToolNames())-2)
	}

	for _, name := range []string{"note_clear", "note_delete"} {
		if _, ok := tools[name]; ok {
			t.Errorf("disabled tool %q should not be registered", name)
		}
	}
}

func TestServerRegistration_AllToolsDisabled(t *testing.T) {
	s, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = AllToolNames()
	srv := NewServer(s, cfg, "test")

	if tools := srv.ListTools(); len(tools) != 0 {
		t.Errorf("registered tool count = %d, want 0 (all disabled)", len(tools))
	}
}

// assertErrorCode checks that result is an error payload with the given code.
func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if !result.IsError {
		t.Errorf("expected error result, got success: %s", extractErrorMessage(result))
		return
	}

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}

	if code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
