package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/marcus/ticklist/internal/store"
	"github.com/marcus/ticklist/internal/todo"
)

// filterFromPath derives the display filter from the page path. The
// routing layer owns this mapping; the projector only sees the value.
func filterFromPath(path string) todo.Filter {
	switch {
	case strings.HasSuffix(path, "/active"):
		return todo.FilterActive
	case strings.HasSuffix(path, "/complete"):
		return todo.FilterComplete
	default:
		return todo.FilterAll
	}
}

// handleTodosPage renders the reconciled todo list for the current user.
// All three filter variants share this handler and template.
func (s *Server) handleTodosPage(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	view, failures, err := s.dispatcher.View(user.ID, filterFromPath(r.URL.Path))
	if err != nil {
		logFor(r.Context()).Error("build view", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to load todos")
		return
	}
	s.metrics.RecordSnapshotRefresh()

	page := todosPage{
		Email:    user.Email,
		View:     view,
		Failures: failures,
		Flash:    r.URL.Query().Get("error"),
		NewID:    store.NewTodoID(),
	}
	// A failed create keeps the typed title so it can be corrected.
	for _, e := range failures {
		if e.Intent.Kind == todo.KindCreate {
			page.RetryTitle = e.Intent.Title
			break
		}
	}

	s.render(w, r, "todos.html", page)
}

// handleMutation is the single mutation endpoint. The form field
// "intent" selects the kind; the remaining fields depend on it.
func (s *Server) handleMutation(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		s.metrics.RecordMutationRejected()
		if wantsJSON(r) {
			writeJSON(w, http.StatusBadRequest, mutationResult{Type: "error", Error: "invalid form"})
			return
		}
		http.Redirect(w, r, "/todos?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
		return
	}

	in, err := intentFromForm(r)
	if err != nil {
		// Validation failed; the store is never called and nothing
		// is registered in flight.
		s.metrics.RecordMutationRejected()
		s.respondMutation(w, r, err)
		return
	}

	h, err := s.dispatcher.Apply(user.ID, in)
	if err != nil {
		s.metrics.RecordMutationRejected()
		logFor(r.Context()).Warn("mutation failed", "intent", string(in.Kind), "err", err)
		if wantsJSON(r) {
			// The JSON response surfaces the failure, so drop the
			// entry rather than reporting it again on the next render.
			s.dispatcher.Discard(user.ID, h)
			writeMutationErr(w, err)
			return
		}
		// Plain form post: leave the failed entry in flight so the
		// redirect target drains and displays it.
		s.redirectBack(w, r)
		return
	}

	s.metrics.RecordMutationAccepted()
	logFor(r.Context()).Info("mutation applied", "intent", string(in.Kind))
	if wantsJSON(r) {
		writeMutationOK(w)
		return
	}
	s.redirectBack(w, r)
}

// respondMutation reports a pre-application error: JSON envelope for
// fetch callers, redirect with a flash parameter for plain form posts.
func (s *Server) respondMutation(w http.ResponseWriter, r *http.Request, err error) {
	if wantsJSON(r) {
		writeMutationErr(w, err)
		return
	}
	http.Redirect(w, r, "/todos?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
}

// redirectBack returns a plain form post to the page it came from,
// defaulting to the unfiltered list.
func (s *Server) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := "/todos"
	if ref, err := url.Parse(r.Referer()); err == nil && strings.HasPrefix(ref.Path, "/todos") {
		target = ref.Path
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// intentFromForm builds and validates an intent from the posted form.
func intentFromForm(r *http.Request) (todo.Intent, error) {
	kind := todo.Kind(r.PostFormValue("intent"))
	switch kind {
	case todo.KindCreate:
		createdAt, err := todo.ParseCreatedAt(r.PostFormValue("createdAt"))
		if err != nil {
			return todo.Intent{}, err
		}
		return todo.NewCreate(r.PostFormValue("id"), r.PostFormValue("title"), createdAt)
	case todo.KindToggle:
		return todo.NewToggle(r.PostFormValue("id"), r.PostFormValue("complete") == "true")
	case todo.KindToggleAll:
		return todo.NewToggleAll(r.PostFormValue("complete") == "true"), nil
	case todo.KindUpdateTitle:
		return todo.NewUpdateTitle(r.PostFormValue("id"), r.PostFormValue("title"))
	case todo.KindDelete:
		return todo.NewDelete(r.PostFormValue("id"))
	case todo.KindDeleteCompleted:
		return todo.NewDeleteCompleted(), nil
	default:
		return todo.Intent{}, todo.ErrUnknownIntent
	}
}
