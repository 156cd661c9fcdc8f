package quiz

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/andrebq/hackademy/catalog"
)

type (
	// QuestionSource is the slice of the catalog the grader reads from.
	QuestionSource interface {
		QuestionByID(ctx context.Context, id string) (catalog.Question, error)
		QuestionsByFilter(ctx context.Context, categoryID, subcategoryID string) ([]catalog.Question, error)
	}

	// Answer is one typed entry extracted from the raw submission form.
	Answer struct {
		QuestionID string
		Raw        string
	}

	Feedback struct {
		QuestionText   string
		SelectedOption string
		CorrectOption  string
		IsCorrect      bool
	}

	Summary struct {
		TotalQuestions int
		CorrectCount   int
		Feedback       []Feedback
	}

	Grader struct {
		questions QuestionSource
	}
)

// Sentinel texts substituted when a submission or a stored record cannot
// supply the real option text.
const (
	NoAnswer      = "No Answer"
	UnknownOption = "Unknown"
)

const answerFieldPrefix = "question_"

func NewGrader(questions QuestionSource) *Grader {
	return &Grader{questions: questions}
}

// ParseSubmission extracts the answers from a raw form. Only fields named
// question_<id> take part, every other field is ignored. Answers come back
// sorted by question id so feedback order is deterministic regardless of
// form field order.
func ParseSubmission(form url.Values) []Answer {
	var out []Answer
	for key, values := range form {
		id := strings.TrimPrefix(key, answerFieldPrefix)
		if id == key || id == "" || len(values) == 0 {
			continue
		}
		out = append(out, Answer{QuestionID: id, Raw: values[0]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// Grade resolves each answer against the question source and computes the
// per-question feedback plus the aggregate score. Answers pointing at
// questions that no longer exist are skipped entirely, a bad or missing
// option index turns into the NoAnswer sentinel but still counts as a
// graded question. Only a storage failure aborts the whole grading run.
func (g *Grader) Grade(ctx context.Context, answers []Answer) (Summary, error) {
	var sum Summary
	for _, a := range answers {
		question, err := g.questions.QuestionByID(ctx, a.QuestionID)
		var notFound catalog.QuestionNotFound
		if errors.As(err, &notFound) {
			continue
		} else if err != nil {
			return Summary{}, fmt.Errorf("unable to grade answer for question %v, cause %w", a.QuestionID, err)
		}
		sum.Feedback = append(sum.Feedback, gradeOne(question, a.Raw))
		sum.TotalQuestions++
	}
	for _, f := range sum.Feedback {
		if f.IsCorrect {
			sum.CorrectCount++
		}
	}
	return sum, nil
}

func gradeOne(q catalog.Question, raw string) Feedback {
	selected, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		selected = -1
	}
	fb := Feedback{
		QuestionText: q.QuestionText,
		IsCorrect:    selected >= 0 && selected == q.CorrectAnswerIdx,
	}
	if q.CorrectAnswerIdx >= 0 && q.CorrectAnswerIdx < len(q.Options) {
		fb.CorrectOption = q.Options[q.CorrectAnswerIdx]
	} else {
		fb.CorrectOption = UnknownOption
	}
	if selected >= 0 && selected < len(q.Options) {
		fb.SelectedOption = q.Options[selected]
	} else {
		fb.SelectedOption = NoAnswer
	}
	return fb
}

// FetchQuestionSet lists the questions for one quiz page, filtered by
// category and, when non-empty, by subcategory.
func (g *Grader) FetchQuestionSet(ctx context.Context, categoryID, subcategoryID string) ([]catalog.Question, error) {
	return g.questions.QuestionsByFilter(ctx, categoryID, subcategoryID)
}
