package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/maruel/natural"

	"tutorbot/internal/domain"
)

// Materials persists one bank of titled links. The same store serves
// tasks and notes; the table name is fixed at construction.
type Materials struct {
	db    *sqlx.DB
	kind  domain.MaterialKind
	table string
}

// NewMaterials builds a store for the given bank.
func NewMaterials(db *sqlx.DB, kind domain.MaterialKind) (*Materials, error) {
	var table string
	switch kind {
	case domain.KindTask:
		table = "tasks"
	case domain.KindNote:
		table = "notes"
	default:
		return nil, fmt.Errorf("unknown material kind %q", string(kind))
	}
	return &Materials{db: db, kind: kind, table: table}, nil
}

// Kind reports which bank this store serves.
func (m *Materials) Kind() domain.MaterialKind { return m.kind }

// Create inserts a material. Titles are unique per course.
func (m *Materials) Create(ctx context.Context, mat domain.Material) (int64, error) {
	q := fmt.Sprintf(`INSERT INTO %s (title, link, exam) VALUES ($1, $2, $3) RETURNING id`, m.table)
	var id int64
	err := m.db.QueryRowContext(ctx, q, mat.Title, mat.Link, mat.Exam).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrDuplicateTitle
	}
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", m.table, err)
	}
	return id, nil
}

// ListByExam returns the bank for a course in natural title order, so
// "Задание 2" sorts before "Задание 10".
func (m *Materials) ListByExam(ctx context.Context, exam domain.Exam) ([]domain.Material, error) {
	var out []domain.Material
	q := fmt.Sprintf(`SELECT id, title, link, exam FROM %s WHERE exam = $1`, m.table)
	if err := m.db.SelectContext(ctx, &out, q, exam); err != nil {
		return nil, fmt.Errorf("list %s: %w", m.table, err)
	}
	sort.Slice(out, func(i, j int) bool {
		return natural.Less(out[i].Title, out[j].Title)
	})
	for i := range out {
		out[i].Kind = m.kind
	}
	return out, nil
}

// Get returns one material by id.
func (m *Materials) Get(ctx context.Context, id int64) (domain.Material, error) {
	var mat domain.Material
	q := fmt.Sprintf(`SELECT id, title, link, exam FROM %s WHERE id = $1`, m.table)
	err := m.db.GetContext(ctx, &mat, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Material{}, ErrNotFound
	}
	if err != nil {
		return domain.Material{}, fmt.Errorf("get %s %d: %w", m.table, id, err)
	}
	mat.Kind = m.kind
	return mat, nil
}

// UpdateTitle renames a material. Titles stay unique per course.
func (m *Materials) UpdateTitle(ctx context.Context, id int64, title string) error {
	q := fmt.Sprintf(`UPDATE %s SET title = $1 WHERE id = $2`, m.table)
	res, err := m.db.ExecContext(ctx, q, title, id)
	if isUniqueViolation(err) {
		return ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("update %s %d title: %w", m.table, id, err)
	}
	return requireRow(res, id)
}

// UpdateLink replaces a material's link.
func (m *Materials) UpdateLink(ctx context.Context, id int64, link string) error {
	q := fmt.Sprintf(`UPDATE %s SET link = $1 WHERE id = $2`, m.table)
	res, err := m.db.ExecContext(ctx, q, link, id)
	if err != nil {
		return fmt.Errorf("update %s %d link: %w", m.table, id, err)
	}
	return requireRow(res, id)
}

// Delete removes a material by id.
func (m *Materials) Delete(ctx context.Context, id int64) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, m.table)
	res, err := m.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", m.table, id, err)
	}
	return requireRow(res, id)
}
