package webui

import (
	"encoding/json"
	"net/http"
)

type (
	searchResponse struct {
		Query         string              `json:"query"`
		Categories    []categoryEntry     `json:"categories"`
		Subcategories []subcategoryEntry  `json:"subcategories"`
		Questions     []questionTextEntry `json:"questions"`
	}

	categoryEntry struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	subcategoryEntry struct {
		ID             string `json:"id"`
		CategoryID     string `json:"category_id"`
		Title          string `json:"title"`
		Description    string `json:"description,omitempty"`
		ParentCategory string `json:"parent_category"`
	}

	questionTextEntry struct {
		ID           string `json:"id"`
		CategoryID   string `json:"category_id"`
		QuestionText string `json:"question_text"`
	}
)

// searchAPI exposes the same search surface as the HTML page but as JSON,
// for clients that want to embed the catalog elsewhere.
func (h *handlers) searchAPI(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	result, err := h.store.Search(r.Context(), query)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	resp := searchResponse{
		Query:         query,
		Categories:    []categoryEntry{},
		Subcategories: []subcategoryEntry{},
		Questions:     []questionTextEntry{},
	}
	for _, c := range result.Categories {
		resp.Categories = append(resp.Categories, categoryEntry(c))
	}
	for _, s := range result.Subcategories {
		resp.Subcategories = append(resp.Subcategories, subcategoryEntry{
			ID:             s.ID,
			CategoryID:     s.CategoryID,
			Title:          s.Title,
			Description:    s.Description,
			ParentCategory: s.ParentCategoryTitle,
		})
	}
	for _, q := range result.Questions {
		resp.Questions = append(resp.Questions, questionTextEntry{
			ID:           q.ID,
			CategoryID:   q.CategoryID,
			QuestionText: q.QuestionText,
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(resp)
}
