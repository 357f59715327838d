package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/marcus/ticklist/internal/todo"
)

//go:embed templates/*.html
var templateFS embed.FS

// parseTemplates loads the embedded page templates.
func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// authPage is the data for the login and signup templates.
type authPage struct {
	Email       string
	Error       string
	AllowSignup bool
}

// todosPage is the data for the todos template.
type todosPage struct {
	Email      string
	View       todo.View
	Failures   []todo.Entry
	Flash      string
	NewID      string
	RetryTitle string
}

// render executes a page template. Template execution errors after the
// header is written cannot be reported to the client, only logged.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		logFor(r.Context()).Error("render template", "name", name, "err", err)
	}
}
