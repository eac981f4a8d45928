package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tutorbot/core/logger"
	"tutorbot/internal/domain"
)

// Students persists pupil records.
type Students struct {
	db *sqlx.DB
}

// NewStudents builds the students store.
func NewStudents(db *sqlx.DB) *Students { return &Students{db: db} }

// Create inserts a new student and returns the generated id.
func (s *Students) Create(ctx context.Context, st domain.Student) (int64, error) {
	started := time.Now()
	const q = `
		INSERT INTO students (name, exam, class_date, class_link, description, homework, password, telegram_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	var id int64
	err := s.db.QueryRowContext(ctx, q,
		st.Name, st.Exam, st.ClassDate, st.ClassLink,
		st.Description, st.Homework, st.Password, st.TelegramID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert student: %w", err)
	}
	logger.DB.Info("students.create",
		"rid", logger.RIDFrom(ctx),
		"student_id", id,
		"exam", string(st.Exam),
		"duration_ms", logger.RoundMS(time.Since(started)),
	)
	return id, nil
}

// List returns all students ordered by name.
func (s *Students) List(ctx context.Context) ([]domain.Student, error) {
	var out []domain.Student
	const q = `
		SELECT id, name, exam, class_date, class_link, description, homework, password, telegram_id
		FROM students ORDER BY name, id`
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return out, nil
}

// Get returns one student by id.
func (s *Students) Get(ctx context.Context, id int64) (domain.Student, error) {
	var st domain.Student
	const q = `
		SELECT id, name, exam, class_date, class_link, description, homework, password, telegram_id
		FROM students WHERE id = $1`
	err := s.db.GetContext(ctx, &st, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Student{}, ErrNotFound
	}
	if err != nil {
		return domain.Student{}, fmt.Errorf("get student %d: %w", id, err)
	}
	return st, nil
}

// GetByPassword returns the student currently holding the given password.
func (s *Students) GetByPassword(ctx context.Context, password string) (domain.Student, error) {
	var st domain.Student
	const q = `
		SELECT id, name, exam, class_date, class_link, description, homework, password, telegram_id
		FROM students WHERE password = $1`
	err := s.db.GetContext(ctx, &st, q, password)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Student{}, ErrNotFound
	}
	if err != nil {
		return domain.Student{}, fmt.Errorf("get student by password: %w", err)
	}
	return st, nil
}

// GetByTelegramID returns the student bound to the given Telegram account.
func (s *Students) GetByTelegramID(ctx context.Context, tgID int64) (domain.Student, error) {
	var st domain.Student
	const q = `
		SELECT id, name, exam, class_date, class_link, description, homework, password, telegram_id
		FROM students WHERE telegram_id = $1`
	err := s.db.GetContext(ctx, &st, q, tgID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Student{}, ErrNotFound
	}
	if err != nil {
		return domain.Student{}, fmt.Errorf("get student by telegram id: %w", err)
	}
	return st, nil
}

// ListByExamBound returns students of the course that completed login.
func (s *Students) ListByExamBound(ctx context.Context, exam domain.Exam) ([]domain.Student, error) {
	var out []domain.Student
	const q = `
		SELECT id, name, exam, class_date, class_link, description, homework, password, telegram_id
		FROM students WHERE exam = $1 AND telegram_id <> 0 ORDER BY name, id`
	if err := s.db.SelectContext(ctx, &out, q, exam); err != nil {
		return nil, fmt.Errorf("list students by exam: %w", err)
	}
	return out, nil
}

// UpdateField sets a single editable column in one statement.
func (s *Students) UpdateField(ctx context.Context, id int64, field domain.StudentField, value string) error {
	col, err := field.Column()
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`UPDATE students SET %s = $1 WHERE id = $2`, col)
	res, err := s.db.ExecContext(ctx, q, value, id)
	if err != nil {
		return fmt.Errorf("update student %d field %s: %w", id, field, err)
	}
	return requireRow(res, id)
}

// Bind records the Telegram account and consumes the password: the
// password column is rewritten to the Telegram id so the issued
// credential cannot be replayed.
func (s *Students) Bind(ctx context.Context, id, tgID int64) error {
	const q = `UPDATE students SET telegram_id = $1, password = $2 WHERE id = $3`
	res, err := s.db.ExecContext(ctx, q, tgID, fmt.Sprintf("%d", tgID), id)
	if err != nil {
		return fmt.Errorf("bind student %d: %w", id, err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	logger.DB.Info("students.bind", "rid", logger.RIDFrom(ctx), "student_id", id)
	return nil
}

// Delete removes the student row.
func (s *Students) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	logger.DB.Info("students.delete", "rid", logger.RIDFrom(ctx), "student_id", id)
	return nil
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
