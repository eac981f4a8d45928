package service

import (
	"context"

	"tutorbot/core/logger"
	"tutorbot/internal/domain"
	"tutorbot/internal/storage"
)

// Variants manages the per-course mock-exam link and its audience.
type Variants struct {
	store    *storage.Variants
	students *storage.Students
}

// NewVariants builds the variant service.
func NewVariants(store *storage.Variants, students *storage.Students) *Variants {
	return &Variants{store: store, students: students}
}

// Publish replaces the course link and returns the students that should
// be notified: everyone on the course that completed login.
func (v *Variants) Publish(ctx context.Context, exam domain.Exam, link string) ([]domain.Student, error) {
	if err := v.store.Set(ctx, exam, link); err != nil {
		return nil, err
	}
	recipients, err := v.students.ListByExamBound(ctx, exam)
	if err != nil {
		return nil, err
	}
	logger.SVCVariants.Info("variant.published",
		"rid", logger.RIDFrom(ctx),
		"exam", string(exam),
		"recipients", len(recipients),
	)
	return recipients, nil
}

// Get returns the current link for the course.
func (v *Variants) Get(ctx context.Context, exam domain.Exam) (domain.Variant, error) {
	return v.store.Get(ctx, exam)
}
