package testutil

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/andrebq/hackademy/catalog"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireCatalog opens a fresh writeable catalog in a temp directory,
// optionally seeded by loader, and returns it with its cleanup function.
func AcquireCatalog(ctx context.Context, t TestLog, loader func(context.Context, *catalog.Store) error) (*catalog.Store, func()) {
	dir, err := ioutil.TempDir("", "hackademy-tests")
	if err != nil {
		t.Fatal(err)
	}
	store, err := catalog.Open(ctx, filepath.Join(dir, "catalog.db"), true)
	if err != nil {
		t.Fatal(err)
	}
	if loader != nil {
		err = loader(ctx, store)
		if err != nil {
			t.Fatal(err)
		}
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

// SeedSampleQuiz loads a small two-category catalog used across handler
// and grading tests.
func SeedSampleQuiz(ctx context.Context, s *catalog.Store) error {
	cats := []catalog.Category{
		{ID: "cat-net", Title: "Networking"},
		{ID: "cat-sec", Title: "Security"},
	}
	for _, c := range cats {
		if err := s.InsertCategory(ctx, c); err != nil {
			return err
		}
	}
	subs := []catalog.Subcategory{
		{ID: "sub-tcp", CategoryID: "cat-net", Title: "TCP", Description: "Transport basics"},
		{ID: "sub-dns", CategoryID: "cat-net", Title: "DNS"},
	}
	for _, sc := range subs {
		if err := s.InsertSubcategory(ctx, sc); err != nil {
			return err
		}
	}
	questions := []catalog.Question{
		{
			ID:               "q1",
			CategoryID:       "cat-net",
			SubcategoryID:    "sub-tcp",
			QuestionText:     "Which flag opens a TCP connection?",
			Options:          []string{"FIN", "SYN", "RST"},
			CorrectAnswerIdx: 1,
		},
		{
			ID:               "q2",
			CategoryID:       "cat-net",
			SubcategoryID:    "sub-dns",
			QuestionText:     "Which record maps a name to an IPv4 address?",
			Options:          []string{"A", "MX"},
			CorrectAnswerIdx: 0,
		},
		{
			ID:               "q3",
			CategoryID:       "cat-sec",
			QuestionText:     "What does TLS provide?",
			Options:          []string{"Compression", "Confidentiality"},
			CorrectAnswerIdx: 1,
		},
	}
	for _, q := range questions {
		if err := s.InsertQuestion(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
