package web

import (
	"net/http"
	"strconv"

	"github.com/hpungsan/noten/internal/errors"
	"github.com/hpungsan/noten/internal/ops"
	"github.com/hpungsan/noten/internal/store"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	store    *store.NoteStore
	renderer *Renderer
}

// HandleList handles GET /notes: list every note.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	result := ops.List(h.store)

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "list", ListPageData{
		PageData: PageData{
			Title:   "Notes",
			Version: h.renderer.version,
			Nav:     "notes",
		},
		Items:      result.Items,
		Total:      result.Total,
		Persistent: result.Persistent,
	})
}

// HandleAdd handles POST /notes: append a note from the add form.
func (h *Handlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	result := ops.Add(r.Context(), h.store, ops.AddInput{Text: r.FormValue("text")})

	if wantsJSON(r) {
		status := http.StatusOK
		if result.Added {
			status = http.StatusCreated
		}
		renderJSON(w, status, result)
		return
	}

	h.redirect(w, r, "/notes")
}

// HandleDetail handles GET /notes/{id}: show one note.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("note ID is required"))
		return
	}

	view, err := ops.Fetch(h.store, ops.FetchInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderDetail(w, r, view, "notes")
}

// HandleDetailAt handles GET /at/{index}: show the note at a list position.
func (h *Handlers) HandleDetailAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("index must be an integer"))
		return
	}

	view, err := ops.Fetch(h.store, ops.FetchInput{Index: &index})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderDetail(w, r, view, "notes")
}

// HandleLatest handles GET /notes/latest: show the most recently added note.
func (h *Handlers) HandleLatest(w http.ResponseWriter, r *http.Request) {
	view, err := ops.Latest(h.store)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderDetail(w, r, view, "latest")
}

func (h *Handlers) renderDetail(w http.ResponseWriter, r *http.Request, view *ops.NoteView, nav string) {
	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, view)
		return
	}

	h.renderer.renderPage(w, r, "detail", DetailPageData{
		PageData: PageData{
			Title:   "Note #" + strconv.Itoa(view.Number),
			Version: h.renderer.version,
			Nav:     nav,
		},
		Note:         view,
		RenderedHTML: renderMarkdown(view.Text),
	})
}

// HandleEdit handles GET /notes/{id}/edit: begin an edit and show the form.
func (h *Handlers) HandleEdit(w http.ResponseWriter, r *http.Request) {
	draft, err := ops.BeginEdit(h.store, ops.BeginEditInput{ID: r.PathValue("id")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderEdit(w, r, draft, "")
}

// HandleCommit handles POST /notes/{id}: commit the pending edit of a note.
// The pending edit must be the one opened for this note.
func (h *Handlers) HandleCommit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	id := r.PathValue("id")
	result, err := ops.CommitEditFor(r.Context(), h.store, id, r.FormValue("text"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	if !result.Updated {
		draft := store.Draft{ID: result.Note.ID, Index: result.Note.Index, Text: result.Note.Text}
		h.renderEdit(w, r, &draft, "Note text cannot be empty.")
		return
	}

	h.redirect(w, r, "/notes/"+id)
}

func (h *Handlers) renderEdit(w http.ResponseWriter, r *http.Request, draft *store.Draft, notice string) {
	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, draft)
		return
	}

	h.renderer.renderPage(w, r, "edit", EditPageData{
		PageData: PageData{
			Title:   "Edit note #" + strconv.Itoa(draft.Index+1),
			Version: h.renderer.version,
			Nav:     "notes",
		},
		Draft:  draft,
		Notice: notice,
	})
}

// HandleCancelEdit handles POST /notes/edit/cancel: abandon the pending edit.
func (h *Handlers) HandleCancelEdit(w http.ResponseWriter, r *http.Request) {
	draft, editing := h.store.Editing()
	result := ops.CancelEdit(h.store)

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	if editing {
		h.redirect(w, r, "/notes/"+draft.ID)
		return
	}
	h.redirect(w, r, "/notes")
}

// HandleDelete handles POST /notes/{id}/delete and DELETE /notes/{id}.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("note ID is required"))
		return
	}

	result, err := ops.Delete(r.Context(), h.store, ops.DeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.redirect(w, r, "/notes")
}

// HandleClear handles POST /notes/clear: delete every note.
func (h *Handlers) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	result := ops.Clear(r.Context(), h.store)

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.redirect(w, r, "/notes")
}

// redirect sends the client to target, via HX-Redirect for htmx requests.
func (h *Handlers) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
