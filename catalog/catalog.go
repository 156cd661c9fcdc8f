package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type (
	// Store gives access to the quiz catalog: users, categories,
	// subcategories and questions, all kept in a single sqlite file.
	Store struct {
		db        *sql.DB
		writeable bool
	}

	Category struct {
		ID    string
		Title string
	}

	Subcategory struct {
		ID          string
		CategoryID  string
		Title       string
		Description string
	}
)

func openCatalogDatabase(ctx context.Context, path string, readwrite bool) (*sql.DB, error) {
	var connstr string
	if readwrite {
		connstr = fmt.Sprintf("file:%v?_journal=wal&_fk=true&mode=rwc", path)
	} else {
		connstr = fmt.Sprintf("file:%v?_fk=true&mode=ro", path)
	}
	conn, err := sql.Open("sqlite3", connstr)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %v", path, err)
	}
	err = conn.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to ping catalog %v, cause %v", path, err)
	}
	return conn, nil
}

// Open loads the catalog stored at path, creating the schema when opened
// in readwrite mode.
func Open(ctx context.Context, path string, readwrite bool) (*Store, error) {
	conn, err := openCatalogDatabase(ctx, path, readwrite)
	if err != nil {
		return nil, err
	}
	s := &Store{db: conn, writeable: readwrite}
	if readwrite {
		err = s.init(ctx)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("unable to init catalog %v, cause %v", path, err)
		}
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	stmts := []string{
		`create table if not exists users(
			id text primary key,
			username text not null unique,
			password_hash text not null)`,
		`create table if not exists categories(
			id text primary key,
			title text not null)`,
		`create table if not exists subcategories(
			id text primary key,
			category_id text not null references categories(id),
			title text not null,
			description text)`,
		`create table if not exists questions(
			id text primary key,
			category_id text not null references categories(id),
			subcategory_id text references subcategories(id),
			question_text text not null,
			options text not null,
			correct_answer_idx integer not null)`,
	}
	for _, stmt := range stmts {
		_, err := s.db.ExecContext(ctx, stmt)
		if err != nil {
			return fmt.Errorf("unable to apply catalog schema, cause %w", err)
		}
	}
	return nil
}

func (s *Store) Writeable() bool { return s.writeable }

func (s *Store) Close() error {
	return s.db.Close()
}

// Categories lists every category ordered by title.
func (s *Store) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `select id, title from categories order by title`)
	if err != nil {
		return nil, fmt.Errorf("unable to list categories, cause %w", err)
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		err = rows.Scan(&c.ID, &c.Title)
		if err != nil {
			return nil, fmt.Errorf("unable to scan category, cause %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CategoryByID(ctx context.Context, id string) (Category, error) {
	var c Category
	err := s.db.QueryRowContext(ctx, `select id, title from categories where id = ?`, id).Scan(&c.ID, &c.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, CategoryNotFound{ID: id}
	} else if err != nil {
		return Category{}, fmt.Errorf("unable to load category %v, cause %w", id, err)
	}
	return c, nil
}

// SubcategoriesByCategory lists the subcategories of one category ordered
// by title. A category without subcategories yields an empty list.
func (s *Store) SubcategoriesByCategory(ctx context.Context, categoryID string) ([]Subcategory, error) {
	rows, err := s.db.QueryContext(ctx, `select id, category_id, title, coalesce(description, '')
		from subcategories where category_id = ? order by title`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("unable to list subcategories of %v, cause %w", categoryID, err)
	}
	defer rows.Close()
	var out []Subcategory
	for rows.Next() {
		var sc Subcategory
		err = rows.Scan(&sc.ID, &sc.CategoryID, &sc.Title, &sc.Description)
		if err != nil {
			return nil, fmt.Errorf("unable to scan subcategory, cause %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *Store) InsertCategory(ctx context.Context, c Category) error {
	_, err := s.db.ExecContext(ctx, `insert into categories (id, title) values (?, ?)`, c.ID, c.Title)
	if err != nil {
		return fmt.Errorf("unable to insert category %v, cause %w", c.ID, err)
	}
	return nil
}

func (s *Store) InsertSubcategory(ctx context.Context, sc Subcategory) error {
	var desc interface{}
	if sc.Description != "" {
		desc = sc.Description
	}
	_, err := s.db.ExecContext(ctx, `insert into subcategories (id, category_id, title, description) values (?, ?, ?, ?)`,
		sc.ID, sc.CategoryID, sc.Title, desc)
	if err != nil {
		return fmt.Errorf("unable to insert subcategory %v, cause %w", sc.ID, err)
	}
	return nil
}
