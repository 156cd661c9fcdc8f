package catalog

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func tempStore(ctx context.Context, t *testing.T) (*Store, func()) {
	dir, err := ioutil.TempDir("", "hackademy-tests")
	if err != nil {
		t.Fatal(err)
	}
	store, err := Open(ctx, filepath.Join(dir, "catalog.db"), true)
	if err != nil {
		t.Fatal(err)
	}
	return store, func() {
		err := store.Close()
		if err != nil {
			t.Log("unable to close catalog", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}

func TestCategoryListing(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempStore(ctx, t)
	defer cleanup()

	for _, c := range []Category{
		{ID: "c2", Title: "Zoology"},
		{ID: "c1", Title: "Algebra"},
	} {
		if err := store.InsertCategory(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
	cats, err := store.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 || cats[0].Title != "Algebra" || cats[1].Title != "Zoology" {
		t.Fatalf("categories are not ordered by title: %v", cats)
	}

	_, err = store.CategoryByID(ctx, "nope")
	if _, ok := err.(CategoryNotFound); !ok {
		t.Fatalf("expecting CategoryNotFound, got %v", err)
	}
}

func TestQuestionFilter(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempStore(ctx, t)
	defer cleanup()

	if err := store.InsertCategory(ctx, Category{ID: "c1", Title: "Algebra"}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertSubcategory(ctx, Subcategory{ID: "s1", CategoryID: "c1", Title: "Linear"}); err != nil {
		t.Fatal(err)
	}
	questions := []Question{
		{ID: "qb", CategoryID: "c1", SubcategoryID: "s1", QuestionText: "b?", Options: []string{"x", "y"}, CorrectAnswerIdx: 0},
		{ID: "qa", CategoryID: "c1", QuestionText: "a?", Options: []string{"x", "y"}, CorrectAnswerIdx: 1},
	}
	for _, q := range questions {
		if err := store.InsertQuestion(ctx, q); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.QuestionsByFilter(ctx, "c1", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != "qa" || all[1].ID != "qb" {
		t.Fatalf("questions are not ordered by id: %v", all)
	}

	filtered, err := store.QuestionsByFilter(ctx, "c1", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 || filtered[0].ID != "qb" {
		t.Fatalf("subcategory filter did not apply: %v", filtered)
	}

	_, err = store.QuestionByID(ctx, "missing")
	if _, ok := err.(QuestionNotFound); !ok {
		t.Fatalf("expecting QuestionNotFound, got %v", err)
	}
}

func TestDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempStore(ctx, t)
	defer cleanup()

	err := store.InsertUser(ctx, User{ID: "u1", Username: "ana", PasswordHash: "h1"})
	if err != nil {
		t.Fatal(err)
	}
	err = store.InsertUser(ctx, User{ID: "u2", Username: "ana", PasswordHash: "h2"})
	if _, ok := err.(UsernameTaken); !ok {
		t.Fatalf("expecting UsernameTaken, got %v", err)
	}
	// the losing insert must not leave a second record behind
	u, err := store.UserByUsername(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != "u1" {
		t.Fatalf("wrong surviving record: %v", u)
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempStore(ctx, t)
	defer cleanup()

	if err := store.InsertCategory(ctx, Category{ID: "c1", Title: "Networking"}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertSubcategory(ctx, Subcategory{ID: "s1", CategoryID: "c1", Title: "Routing", Description: "paths across networks"}); err != nil {
		t.Fatal(err)
	}
	if err := store.InsertQuestion(ctx, Question{ID: "q1", CategoryID: "c1", QuestionText: "What is a network mask?", Options: []string{"a", "b"}, CorrectAnswerIdx: 0}); err != nil {
		t.Fatal(err)
	}

	res, err := store.Search(ctx, "network")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Categories) != 1 || len(res.Subcategories) != 1 || len(res.Questions) != 1 {
		t.Fatalf("unexpected search result: %+v", res)
	}
	if res.Subcategories[0].ParentCategoryTitle != "Networking" {
		t.Fatalf("missing parent category title: %+v", res.Subcategories[0])
	}

	empty, err := store.Search(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Categories)+len(empty.Subcategories)+len(empty.Questions) != 0 {
		t.Fatalf("empty query should match nothing: %+v", empty)
	}
}

func TestCorruptOptionsColumn(t *testing.T) {
	ctx := context.Background()
	store, cleanup := tempStore(ctx, t)
	defer cleanup()

	if err := store.InsertCategory(ctx, Category{ID: "c1", Title: "Algebra"}); err != nil {
		t.Fatal(err)
	}
	_, err := store.db.ExecContext(ctx, `insert into questions (id, category_id, question_text, options, correct_answer_idx)
		values ('q1', 'c1', 'broken?', 'not-json', 0)`)
	if err != nil {
		t.Fatal(err)
	}
	q, err := store.QuestionByID(ctx, "q1")
	if err != nil {
		t.Fatal(err)
	}
	if len(q.Options) != 0 {
		t.Fatalf("corrupt options should decode to an empty list, got %v", q.Options)
	}
}
