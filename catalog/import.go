package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

type (
	// Seed is the document layout understood by ImportSeed. All records are
	// inserted in dependency order so foreign keys hold.
	Seed struct {
		Categories    []SeedCategory    `json:"categories"`
		Subcategories []SeedSubcategory `json:"subcategories"`
		Questions     []SeedQuestion    `json:"questions"`
	}

	SeedCategory struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	SeedSubcategory struct {
		ID          string `json:"id"`
		CategoryID  string `json:"category_id"`
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
	}

	SeedQuestion struct {
		ID               string   `json:"id"`
		CategoryID       string   `json:"category_id"`
		SubcategoryID    string   `json:"subcategory_id,omitempty"`
		QuestionText     string   `json:"question_text"`
		Options          []string `json:"options"`
		CorrectAnswerIdx int      `json:"correct_answer_idx"`
	}
)

// ImportSeed decodes a JSON seed document and loads it into the catalog.
// Returns how many records of each kind were inserted.
func (s *Store) ImportSeed(ctx context.Context, in io.Reader) (categories, subcategories, questions int, err error) {
	var seed Seed
	err = json.NewDecoder(in).Decode(&seed)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("unable to decode seed document, cause %w", err)
	}
	for _, c := range seed.Categories {
		if err = s.InsertCategory(ctx, Category(c)); err != nil {
			return categories, subcategories, questions, err
		}
		categories++
	}
	for _, sc := range seed.Subcategories {
		if err = s.InsertSubcategory(ctx, Subcategory(sc)); err != nil {
			return categories, subcategories, questions, err
		}
		subcategories++
	}
	for _, q := range seed.Questions {
		err = s.InsertQuestion(ctx, Question{
			ID:               q.ID,
			CategoryID:       q.CategoryID,
			SubcategoryID:    q.SubcategoryID,
			QuestionText:     q.QuestionText,
			Options:          q.Options,
			CorrectAnswerIdx: q.CorrectAnswerIdx,
		})
		if err != nil {
			return categories, subcategories, questions, err
		}
		questions++
	}
	return categories, subcategories, questions, nil
}
