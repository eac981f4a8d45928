package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tutorbot/internal/domain"
)

// Variants persists the single mock-exam link per course.
type Variants struct {
	db *sqlx.DB
}

// NewVariants builds the variants store.
func NewVariants(db *sqlx.DB) *Variants { return &Variants{db: db} }

// Set replaces the variant link for the course.
func (v *Variants) Set(ctx context.Context, exam domain.Exam, link string) error {
	const q = `
		INSERT INTO variants (exam, link) VALUES ($1, $2)
		ON CONFLICT (exam) DO UPDATE SET link = EXCLUDED.link`
	if _, err := v.db.ExecContext(ctx, q, exam, link); err != nil {
		return fmt.Errorf("set variant for %s: %w", exam, err)
	}
	return nil
}

// Get returns the current variant link for the course.
func (v *Variants) Get(ctx context.Context, exam domain.Exam) (domain.Variant, error) {
	var out domain.Variant
	err := v.db.GetContext(ctx, &out, `SELECT exam, link FROM variants WHERE exam = $1`, exam)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Variant{}, ErrNotFound
	}
	if err != nil {
		return domain.Variant{}, fmt.Errorf("get variant for %s: %w", exam, err)
	}
	return out, nil
}
