package catalog

import (
	"context"
	"fmt"
)

type (
	// SearchResult groups the matches of one free-form query across the
	// three searchable record kinds. Plain substring matching, no ranking.
	SearchResult struct {
		Categories    []Category
		Subcategories []SubcategoryMatch
		Questions     []QuestionMatch
	}

	SubcategoryMatch struct {
		Subcategory
		ParentCategoryTitle string
	}

	QuestionMatch struct {
		ID            string
		CategoryID    string
		SubcategoryID string
		QuestionText  string
	}
)

// Search runs a substring query over category titles, subcategory titles
// and descriptions, and question texts. An empty query yields an empty
// result without touching the database.
func (s *Store) Search(ctx context.Context, query string) (SearchResult, error) {
	var out SearchResult
	if query == "" {
		return out, nil
	}
	pattern := "%" + query + "%"

	rows, err := s.db.QueryContext(ctx, `select id, title from categories where title like ? order by title`, pattern)
	if err != nil {
		return out, fmt.Errorf("unable to search categories, cause %w", err)
	}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			rows.Close()
			return out, fmt.Errorf("unable to scan category match, cause %w", err)
		}
		out.Categories = append(out.Categories, c)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `select s.id, s.category_id, s.title, coalesce(s.description, ''), c.title
		from subcategories s
		inner join categories c on s.category_id = c.id
		where s.title like ? or s.description like ?
		order by s.title`, pattern, pattern)
	if err != nil {
		return out, fmt.Errorf("unable to search subcategories, cause %w", err)
	}
	for rows.Next() {
		var m SubcategoryMatch
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Title, &m.Description, &m.ParentCategoryTitle); err != nil {
			rows.Close()
			return out, fmt.Errorf("unable to scan subcategory match, cause %w", err)
		}
		out.Subcategories = append(out.Subcategories, m)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `select id, category_id, coalesce(subcategory_id, ''), question_text
		from questions where question_text like ? order by id`, pattern)
	if err != nil {
		return out, fmt.Errorf("unable to search questions, cause %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m QuestionMatch
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.SubcategoryID, &m.QuestionText); err != nil {
			return out, fmt.Errorf("unable to scan question match, cause %w", err)
		}
		out.Questions = append(out.Questions, m)
	}
	return out, rows.Err()
}
