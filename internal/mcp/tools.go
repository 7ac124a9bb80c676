package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listToolDef = mcp.NewTool("note_list",
	mcp.WithDescription("List all notes in insertion order. Each item carries its index, its 1-based number, a single-line preview and the timestamp."),
)

var addToolDef = mcp.NewTool("note_add",
	mcp.WithDescription("Append a note. Blank text is ignored and reported as added=false."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Note text. Leading and trailing whitespace is trimmed."),
	),
)

var getToolDef = mcp.NewTool("note_get",
	mcp.WithDescription("Get one note by id or by 0-based index. Specify exactly one."),
	mcp.WithString("id", mcp.Description("Note id")),
	mcp.WithNumber("index", mcp.Description("0-based position in the list")),
)

var latestToolDef = mcp.NewTool("note_latest",
	mcp.WithDescription("Get the most recently added note."),
)

var updateToolDef = mcp.NewTool("note_update",
	mcp.WithDescription("Replace the text of a note addressed by id or 0-based index. Blank text leaves the note unchanged and is reported as updated=false."),
	mcp.WithString("id", mcp.Description("Note id")),
	mcp.WithNumber("index", mcp.Description("0-based position in the list")),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("New note text"),
	),
)

var deleteToolDef = mcp.NewTool("note_delete",
	mcp.WithDescription("Delete a note addressed by id or 0-based index. Later notes shift down by one."),
	mcp.WithString("id", mcp.Description("Note id")),
	mcp.WithNumber("index", mcp.Description("0-based position in the list")),
)

var clearToolDef = mcp.NewTool("note_clear",
	mcp.WithDescription("Delete every note."),
)

var editBeginToolDef = mcp.NewTool("note_edit_begin",
	mcp.WithDescription("Start editing a note addressed by id or 0-based index. Returns the current text. Replaces any edit already in progress."),
	mcp.WithString("id", mcp.Description("Note id")),
	mcp.WithNumber("index", mcp.Description("0-based position in the list")),
)

var editCommitToolDef = mcp.NewTool("note_edit_commit",
	mcp.WithDescription("Apply new text to the note being edited and end the edit. Blank text keeps the edit open."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("New note text"),
	),
)

var editCancelToolDef = mcp.NewTool("note_edit_cancel",
	mcp.WithDescription("Abandon the edit in progress."),
)

var exportToolDef = mcp.NewTool("note_export",
	mcp.WithDescription("Export all notes as a json or yaml document."),
	mcp.WithString("format",
		mcp.Description("Document format"),
		mcp.Enum("json", "yaml"),
	),
)
