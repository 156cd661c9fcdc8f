package webui

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/andrebq/hackademy/auth"
	"github.com/andrebq/hackademy/catalog"
	"github.com/andrebq/hackademy/internal/logutil"
	"github.com/andrebq/hackademy/quiz"
	"github.com/julienschmidt/httprouter"
)

type (
	handlers struct {
		store  *catalog.Store
		flow   *auth.Flow
		grader *quiz.Grader
		pages  map[string]*template.Template
	}

	Page struct {
		Title string
	}

	categoriesPage struct {
		Page
		Categories []catalog.Category
	}

	subcategoriesPage struct {
		Page
		CategoryID    string
		CategoryTitle string
		Subcategories []catalog.Subcategory
	}

	quizPage struct {
		Page
		Questions []catalog.Question
	}

	resultsPage struct {
		Page
		Summary quiz.Summary
	}

	searchPage struct {
		Page
		Query  string
		Result catalog.SearchResult
	}

	formPage struct {
		Page
		Error string
	}

	profilePage struct {
		Page
		Username string
	}
)

// AsHandler wires every route of the quiz site into a single handler.
func AsHandler(ctx context.Context, store *catalog.Store, flow *auth.Flow, grader *quiz.Grader) (http.Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	h := &handlers{store: store, flow: flow, grader: grader, pages: pages}

	router := httprouter.New()
	router.HandlerFunc("GET", "/", h.home)
	router.HandlerFunc("GET", "/categories", h.categories)
	router.Handle("GET", "/category/:id", h.subcategories)
	router.HandlerFunc("GET", "/quiz", h.quizForm)
	router.HandlerFunc("POST", "/quiz/submit", h.submitQuiz)
	router.HandlerFunc("GET", "/search", h.search)
	router.HandlerFunc("GET", "/api/search", h.searchAPI)
	router.HandlerFunc("GET", "/auth/register", h.registerForm)
	router.HandlerFunc("POST", "/auth/register", h.register)
	router.HandlerFunc("GET", "/auth/login", h.loginForm)
	router.HandlerFunc("POST", "/auth/login", h.login)
	router.HandlerFunc("GET", "/auth/profile", h.profile)
	router.HandlerFunc("GET", "/auth/logout", h.logout)
	return router, nil
}

// serverError logs the failure and hides the details from the client. The
// request dies here but the process keeps serving.
func (h *handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log := logutil.GetOrDefault(r.Context())
	log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, "something went wrong on our side", http.StatusInternalServerError)
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home.html", Page{Title: "Hackademy - Home"})
}

func (h *handlers) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.store.Categories(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "category_list.html", categoriesPage{
		Page:       Page{Title: "Hackademy - Categories"},
		Categories: cats,
	})
}

func (h *handlers) subcategories(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	ctx := r.Context()
	cat, err := h.store.CategoryByID(ctx, params.ByName("id"))
	var notFound catalog.CategoryNotFound
	if errors.As(err, &notFound) {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}
	subs, err := h.store.SubcategoriesByCategory(ctx, cat.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "subcategory_list.html", subcategoriesPage{
		Page:          Page{Title: "Hackademy - Subcategories"},
		CategoryID:    cat.ID,
		CategoryTitle: cat.Title,
		Subcategories: subs,
	})
}

func (h *handlers) quizForm(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category_id")
	if categoryID == "" {
		http.Error(w, "missing category_id parameter", http.StatusBadRequest)
		return
	}
	questions, err := h.grader.FetchQuestionSet(r.Context(), categoryID, r.URL.Query().Get("subcategory_id"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "quiz.html", quizPage{
		Page:      Page{Title: "Hackademy - Quiz"},
		Questions: questions,
	})
}

func (h *handlers) submitQuiz(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	answers := quiz.ParseSubmission(r.PostForm)
	summary, err := h.grader.Grade(r.Context(), answers)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "quiz_results.html", resultsPage{
		Page:    Page{Title: "Hackademy - Results"},
		Summary: summary,
	})
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	result, err := h.store.Search(r.Context(), query)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "search_results.html", searchPage{
		Page:   Page{Title: "Hackademy - Search"},
		Query:  query,
		Result: result,
	})
}

func (h *handlers) registerForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "auth_register.html", formPage{Page: Page{Title: "Hackademy - Register"}})
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = h.flow.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	var taken catalog.UsernameTaken
	var badHash auth.CredentialError
	switch {
	case errors.As(err, &taken):
		h.render(w, r, http.StatusOK, "auth_register.html", formPage{
			Page:  Page{Title: "Hackademy - Register"},
			Error: "Username already taken",
		})
	case errors.As(err, &badHash):
		h.render(w, r, http.StatusOK, "auth_register.html", formPage{
			Page:  Page{Title: "Hackademy - Register"},
			Error: "Error hashing password",
		})
	case err != nil:
		h.serverError(w, r, err)
	default:
		http.Redirect(w, r, "/auth/login", http.StatusFound)
	}
}

func (h *handlers) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "auth_login.html", formPage{Page: Page{Title: "Hackademy - Login"}})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := h.flow.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.render(w, r, http.StatusOK, "auth_login.html", formPage{
			Page:  Page{Title: "Hackademy - Login"},
			Error: "Invalid username or password",
		})
		return
	} else if err != nil {
		h.serverError(w, r, err)
		return
	}
	http.SetCookie(w, auth.SessionCookie(res.Token))
	http.Redirect(w, r, "/auth/profile", http.StatusFound)
}

func (h *handlers) profile(w http.ResponseWriter, r *http.Request) {
	res, err := h.flow.Profile(r.Context(), r)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if res.RedirectToLogin {
		http.Redirect(w, r, "/auth/login", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, "auth_profile.html", profilePage{
		Page:     Page{Title: "Hackademy - Profile"},
		Username: res.Username,
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.flow.Logout(r)
	http.SetCookie(w, auth.ClearSessionCookie())
	http.Redirect(w, r, "/", http.StatusFound)
}
