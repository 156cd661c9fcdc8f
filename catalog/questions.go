package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type (
	Question struct {
		ID               string
		CategoryID       string
		SubcategoryID    string
		QuestionText     string
		Options          []string
		CorrectAnswerIdx int
	}
)

const questionColumns = `id, category_id, coalesce(subcategory_id, ''), question_text, options, correct_answer_idx`

func scanQuestion(row interface{ Scan(...interface{}) error }) (Question, error) {
	var q Question
	var rawOptions string
	err := row.Scan(&q.ID, &q.CategoryID, &q.SubcategoryID, &q.QuestionText, &rawOptions, &q.CorrectAnswerIdx)
	if err != nil {
		return Question{}, err
	}
	// a corrupt options column degrades to an empty list, the grader
	// substitutes sentinels instead of failing the request
	if json.Unmarshal([]byte(rawOptions), &q.Options) != nil {
		q.Options = nil
	}
	return q, nil
}

func (s *Store) QuestionByID(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `select `+questionColumns+` from questions where id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, QuestionNotFound{ID: id}
	} else if err != nil {
		return Question{}, fmt.Errorf("unable to load question %v, cause %w", id, err)
	}
	return q, nil
}

// QuestionsByFilter lists the questions of one category, optionally
// restricted to a subcategory, ordered by id so repeated fetches of the
// same filter are deterministic.
func (s *Store) QuestionsByFilter(ctx context.Context, categoryID, subcategoryID string) ([]Question, error) {
	query := `select ` + questionColumns + ` from questions where category_id = ?`
	args := []interface{}{categoryID}
	if subcategoryID != "" {
		query += ` and subcategory_id = ?`
		args = append(args, subcategoryID)
	}
	query += ` order by id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unable to list questions of %v, cause %w", categoryID, err)
	}
	defer rows.Close()
	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("unable to scan question, cause %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) InsertQuestion(ctx context.Context, q Question) error {
	rawOptions, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("unable to encode options of question %v, cause %w", q.ID, err)
	}
	var subcat interface{}
	if q.SubcategoryID != "" {
		subcat = q.SubcategoryID
	}
	_, err = s.db.ExecContext(ctx, `insert into questions (id, category_id, subcategory_id, question_text, options, correct_answer_idx)
		values (?, ?, ?, ?, ?, ?)`,
		q.ID, q.CategoryID, subcat, q.QuestionText, string(rawOptions), q.CorrectAnswerIdx)
	if err != nil {
		return fmt.Errorf("unable to insert question %v, cause %w", q.ID, err)
	}
	return nil
}
