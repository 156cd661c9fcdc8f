package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/andrebq/hackademy/internal/logutil"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home.html",
	"category_list.html",
	"subcategory_list.html",
	"quiz.html",
	"quiz_results.html",
	"search_results.html",
	"auth_register.html",
	"auth_login.html",
	"auth_profile.html",
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("unable to parse page %v, cause %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// render executes the page into a buffer first so a template failure never
// leaks a half written body to the client.
func (h *handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	var buf bytes.Buffer
	err := h.pages[page].ExecuteTemplate(&buf, page, data)
	if err != nil {
		log := logutil.GetOrDefault(r.Context())
		log.Error().Err(err).Str("page", page).Msg("unable to render page")
		http.Error(w, "something went wrong on our side", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
