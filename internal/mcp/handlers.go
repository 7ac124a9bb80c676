package mcp

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/ops"
	"github.com/hpungsan/noten/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *store.NoteStore
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(s *store.NoteStore) *Handlers {
	return &Handlers{store: s}
}

// Request types for each tool

// AddRequest represents the arguments for note_add.
type AddRequest struct {
	Text string `json:"text"`
}

// AddressRequest represents the arguments for tools that address one note.
type AddressRequest struct {
	ID    string `json:"id,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// UpdateRequest represents the arguments for note_update.
type UpdateRequest struct {
	ID    string `json:"id,omitempty"`
	Index *int   `json:"index,omitempty"`
	Text  string `json:"text"`
}

// CommitRequest represents the arguments for note_edit_commit.
type CommitRequest struct {
	Text string `json:"text"`
}

// ExportRequest represents the arguments for note_export.
type ExportRequest struct {
	Format string `json:"format,omitempty"`
}

// ExportResult is the note_export payload.
type ExportResult struct {
	Format   string `json:"format"`
	Document string `json:"document"`
}

// Handler implementations

// HandleList handles the note_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.List(h.store))
}

// HandleAdd handles the note_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(ops.Add(ctx, h.store, ops.AddInput{Text: input.Text}))
}

// HandleGet handles the note_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Fetch(h.store, ops.FetchInput{ID: input.ID, Index: input.Index})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleLatest handles the note_latest tool call.
func (h *Handlers) HandleLatest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Latest(h.store)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdate handles the note_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Update(ctx, h.store, ops.UpdateInput{
		ID:    input.ID,
		Index: input.Index,
		Text:  input.Text,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the note_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Delete(ctx, h.store, ops.DeleteInput{ID: input.ID, Index: input.Index})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleClear handles the note_clear tool call.
func (h *Handlers) HandleClear(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.Clear(ctx, h.store))
}

// HandleEditBegin handles the note_edit_begin tool call.
func (h *Handlers) HandleEditBegin(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddressRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	draft, err := ops.BeginEdit(h.store, ops.BeginEditInput{ID: input.ID, Index: input.Index})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(draft)
}

// HandleEditCommit handles the note_edit_commit tool call.
func (h *Handlers) HandleEditCommit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CommitRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.CommitEdit(ctx, h.store, input.Text)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleEditCancel handles the note_edit_cancel tool call.
func (h *Handlers) HandleEditCancel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.CancelEdit(h.store))
}

// HandleExport handles the note_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	format := input.Format
	if format == "" {
		format = "json"
	}

	var buf bytes.Buffer
	if err := ops.Export(&buf, h.store, format); err != nil {
		return errorResult(err), nil
	}

	return successResult(ExportResult{Format: format, Document: buf.String()})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if nErr, ok := errors.As(err); ok {
		errorObj := map[string]any{
			"code":    nErr.Code,
			"message": nErr.Message,
			"status":  nErr.Status,
		}
		if nErr.Code != errors.ErrInternal && nErr.Details != nil {
			errorObj["details"] = nErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
