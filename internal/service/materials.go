package service

import (
	"context"

	"tutorbot/core/logger"
	"tutorbot/internal/domain"
	"tutorbot/internal/storage"
)

// Materials manages one bank of titled links (tasks or notes).
type Materials struct {
	store *storage.Materials
}

// NewMaterials builds a material service over its store.
func NewMaterials(store *storage.Materials) *Materials { return &Materials{store: store} }

// Kind reports which bank this service serves.
func (m *Materials) Kind() domain.MaterialKind { return m.store.Kind() }

// Add inserts a material. Returns storage.ErrDuplicateTitle when the
// title is already taken for the course.
func (m *Materials) Add(ctx context.Context, title, link string, exam domain.Exam) (domain.Material, error) {
	mat := domain.Material{Title: title, Link: link, Exam: exam, Kind: m.Kind()}
	id, err := m.store.Create(ctx, mat)
	if err != nil {
		return domain.Material{}, err
	}
	mat.ID = id
	logger.SVCMaterials.Info("material.added",
		"rid", logger.RIDFrom(ctx),
		"kind", string(mat.Kind),
		"material_id", id,
		"exam", string(exam),
	)
	return mat, nil
}

// ListByExam returns the course bank in natural title order.
func (m *Materials) ListByExam(ctx context.Context, exam domain.Exam) ([]domain.Material, error) {
	return m.store.ListByExam(ctx, exam)
}

// Get returns one material.
func (m *Materials) Get(ctx context.Context, id int64) (domain.Material, error) {
	return m.store.Get(ctx, id)
}

// Rename changes the title. Returns storage.ErrDuplicateTitle when the
// new title collides within the course.
func (m *Materials) Rename(ctx context.Context, id int64, title string) error {
	if err := m.store.UpdateTitle(ctx, id, title); err != nil {
		return err
	}
	logger.SVCMaterials.Info("material.renamed",
		"rid", logger.RIDFrom(ctx),
		"kind", string(m.Kind()),
		"material_id", id,
	)
	return nil
}

// Relink replaces the link.
func (m *Materials) Relink(ctx context.Context, id int64, link string) error {
	if err := m.store.UpdateLink(ctx, id, link); err != nil {
		return err
	}
	logger.SVCMaterials.Info("material.relinked",
		"rid", logger.RIDFrom(ctx),
		"kind", string(m.Kind()),
		"material_id", id,
	)
	return nil
}

// Delete removes a material.
func (m *Materials) Delete(ctx context.Context, id int64) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.SVCMaterials.Info("material.deleted",
		"rid", logger.RIDFrom(ctx),
		"kind", string(m.Kind()),
		"material_id", id,
	)
	return nil
}
