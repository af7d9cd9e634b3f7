package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/mindengage-papergen/internal/exam"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidSubject = errors.New("subject name required")
)

// SubjectStore keeps named subject/syllabus definitions.
type SubjectStore interface {
	ListSubjects(ctx context.Context) ([]exam.Subject, error)
	GetSubjectByName(ctx context.Context, name string) (exam.Subject, error)
	PutSubject(ctx context.Context, s exam.Subject) (exam.Subject, error)
	DeleteSubject(ctx context.Context, id string) error
	SaveSubjects(ctx context.Context, subjects []exam.Subject) ([]exam.Subject, error) // replaces everything
}

type SQLSubjectStore struct {
	db *sql.DB
}

func NewSQLSubjectStore(db *sql.DB) *SQLSubjectStore {
	return &SQLSubjectStore{db: db}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func normalizeSubject(s exam.Subject) (exam.Subject, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return s, ErrInvalidSubject
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Syllabus == nil {
		s.Syllabus = []exam.Syllabus{}
	}
	for i := range s.Syllabus {
		if s.Syllabus[i].ID == "" {
			s.Syllabus[i].ID = s.ID + "-" + uuid.NewString()[:8]
		}
	}
	return s, nil
}

func upsertSubject(ctx context.Context, ex execer, s exam.Subject, pos int) error {
	sj, err := json.Marshal(s.Syllabus)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `INSERT INTO subjects (id,name,syllabus_json,position,updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, syllabus_json=EXCLUDED.syllabus_json, updated_at=EXCLUDED.updated_at`,
		s.ID, s.Name, string(sj), pos, time.Now().Unix())
	return err
}

func (s *SQLSubjectStore) PutSubject(ctx context.Context, sub exam.Subject) (exam.Subject, error) {
	sub, err := normalizeSubject(sub)
	if err != nil {
		return exam.Subject{}, err
	}
	var pos int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position),-1)+1 FROM subjects`).Scan(&pos); err != nil {
		return exam.Subject{}, err
	}
	if err := upsertSubject(ctx, s.db, sub, pos); err != nil {
		return exam.Subject{}, fmt.Errorf("put subject %q: %w", sub.Name, err)
	}
	return sub, nil
}

func (s *SQLSubjectStore) SaveSubjects(ctx context.Context, subjects []exam.Subject) ([]exam.Subject, error) {
	out := make([]exam.Subject, 0, len(subjects))
	for _, sub := range subjects {
		n, err := normalizeSubject(sub)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subjects`); err != nil {
		return nil, err
	}
	for i, sub := range out {
		if err := upsertSubject(ctx, tx, sub, i); err != nil {
			return nil, fmt.Errorf("save subject %q: %w", sub.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSubject(sc interface{ Scan(...any) error }) (exam.Subject, error) {
	var sub exam.Subject
	var sj string
	if err := sc.Scan(&sub.ID, &sub.Name, &sj); err != nil {
		return exam.Subject{}, err
	}
	if err := json.Unmarshal([]byte(sj), &sub.Syllabus); err != nil {
		return exam.Subject{}, fmt.Errorf("subject %s: bad syllabus json: %w", sub.ID, err)
	}
	return sub, nil
}

func (s *SQLSubjectStore) ListSubjects(ctx context.Context) ([]exam.Subject, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,syllabus_json FROM subjects ORDER BY position, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []exam.Subject{}
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *SQLSubjectStore) GetSubjectByName(ctx context.Context, name string) (exam.Subject, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,syllabus_json FROM subjects WHERE name=$1`, strings.TrimSpace(name))
	sub, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return exam.Subject{}, fmt.Errorf("subject %q: %w", name, ErrNotFound)
	}
	return sub, err
}

func (s *SQLSubjectStore) DeleteSubject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subject %s: %w", id, ErrNotFound)
	}
	return nil
}
