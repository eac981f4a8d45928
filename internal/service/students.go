// Package service implements the business rules between dialogs and storage.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"tutorbot/core/logger"
	"tutorbot/internal/domain"
	"tutorbot/internal/storage"
)

const passwordLength = 10

// NewStudentPassword generates a one-time login credential.
func NewStudentPassword() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:passwordLength]
}

// Students implements student management and login.
type Students struct {
	store *storage.Students
}

// NewStudents builds the student service.
func NewStudents(store *storage.Students) *Students { return &Students{store: store} }

// NewStudentInput carries the fields collected by the add-student dialog.
type NewStudentInput struct {
	Name      string
	Exam      domain.Exam
	ClassDate string
	ClassLink string
}

// Create inserts a student with a freshly generated password and
// returns the stored record, password included.
func (s *Students) Create(ctx context.Context, in NewStudentInput) (domain.Student, error) {
	st := domain.Student{
		Name:      in.Name,
		Exam:      in.Exam,
		ClassDate: in.ClassDate,
		ClassLink: in.ClassLink,
		Password:  NewStudentPassword(),
	}
	id, err := s.store.Create(ctx, st)
	if err != nil {
		return domain.Student{}, err
	}
	st.ID = id
	logger.SVCStudents.Info("student.created",
		"rid", logger.RIDFrom(ctx),
		"student_id", id,
		"exam", string(st.Exam),
	)
	return st, nil
}

// List returns all students.
func (s *Students) List(ctx context.Context) ([]domain.Student, error) {
	return s.store.List(ctx)
}

// Get returns one student.
func (s *Students) Get(ctx context.Context, id int64) (domain.Student, error) {
	return s.store.Get(ctx, id)
}

// Delete removes a student.
func (s *Students) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// UpdateField writes a single editable attribute.
func (s *Students) UpdateField(ctx context.Context, id int64, field domain.StudentField, value string) error {
	started := time.Now()
	if err := s.store.UpdateField(ctx, id, field, value); err != nil {
		return err
	}
	logger.SVCStudents.Info("student.updated",
		"rid", logger.RIDFrom(ctx),
		"student_id", id,
		"field", string(field),
		"duration_ms", logger.RoundMS(time.Since(started)),
	)
	return nil
}

// AssignHomework records the task title on the student and returns the
// updated record so the caller can notify the pupil.
func (s *Students) AssignHomework(ctx context.Context, id int64, task domain.Material) (domain.Student, error) {
	if err := s.store.UpdateField(ctx, id, domain.FieldHomework, task.Title); err != nil {
		return domain.Student{}, err
	}
	st, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Student{}, err
	}
	logger.SVCStudents.Info("student.homework_assigned",
		"rid", logger.RIDFrom(ctx),
		"student_id", id,
		"material_id", task.ID,
	)
	return st, nil
}

// Login binds a Telegram account to the student holding the password.
// The first successful login consumes the credential: afterwards the
// same password no longer matches any row.
func (s *Students) Login(ctx context.Context, password string, tgID int64) (domain.Student, error) {
	st, err := s.store.GetByPassword(ctx, strings.TrimSpace(password))
	if err != nil {
		return domain.Student{}, err
	}
	if err := s.store.Bind(ctx, st.ID, tgID); err != nil {
		return domain.Student{}, err
	}
	st.TelegramID = tgID
	logger.SVCStudents.Info("student.login",
		"rid", logger.RIDFrom(ctx),
		"student_id", st.ID,
	)
	return st, nil
}

// ByTelegramID returns the student bound to the account, if any.
func (s *Students) ByTelegramID(ctx context.Context, tgID int64) (domain.Student, error) {
	return s.store.GetByTelegramID(ctx, tgID)
}
