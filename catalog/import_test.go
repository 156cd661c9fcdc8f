package catalog

import (
	"context"
	"strings"
	"testing"
)

func TestImportSeed(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempStore(ctx, t)
	defer cleanup()

	seed := `{
		"categories": [{"id": "c1", "title": "Algebra"}],
		"subcategories": [{"id": "s1", "category_id": "c1", "title": "Linear"}],
		"questions": [
			{"id": "q1", "category_id": "c1", "subcategory_id": "s1",
			 "question_text": "2+2?", "options": ["3", "4"], "correct_answer_idx": 1}
		]
	}`
	categories, subcategories, questions, err := store.ImportSeed(ctx, strings.NewReader(seed))
	if err != nil {
		t.Fatal(err)
	}
	if categories != 1 || subcategories != 1 || questions != 1 {
		t.Fatalf("unexpected import counts: %v/%v/%v", categories, subcategories, questions)
	}

	q, err := store.QuestionByID(ctx, "q1")
	if err != nil {
		t.Fatal(err)
	}
	if q.QuestionText != "2+2?" || len(q.Options) != 2 || q.CorrectAnswerIdx != 1 || q.SubcategoryID != "s1" {
		t.Fatalf("seeded question did not round trip: %+v", q)
	}

	if _, _, _, err := store.ImportSeed(ctx, strings.NewReader("not json")); err == nil {
		t.Fatal("a malformed seed document must fail")
	}
}
