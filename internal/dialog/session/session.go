// Package session stores per-user dialogue state between updates.
package session

import (
	"tutorbot/internal/domain"
)

// Phase is a named point in the per-user dialogue.
type Phase string

// Flow holds the values collected so far in the active flow. Fields are
// typed; a phase reads only the fields its flow wrote.
type Flow struct {
	// Add student.
	NewName      string      `json:"new_name,omitempty"`
	NewExam      domain.Exam `json:"new_exam,omitempty"`
	NewClassDate string      `json:"new_class_date,omitempty"`

	// Selection targets.
	StudentID  int64 `json:"student_id,omitempty"`
	MaterialID int64 `json:"material_id,omitempty"`

	// Edit student. An empty NewValue at confirmation blanks the field;
	// value entry rejects empty input everywhere except the explicit
	// clear-description action.
	EditField domain.StudentField `json:"edit_field,omitempty"`
	NewValue  string              `json:"new_value,omitempty"`

	// Materials.
	MaterialKind  domain.MaterialKind `json:"material_kind,omitempty"`
	MaterialExam  domain.Exam         `json:"material_exam,omitempty"`
	MaterialTitle string              `json:"material_title,omitempty"`
	// MaterialField is "title" or "link" while editing a material.
	MaterialField string `json:"material_field,omitempty"`

	// Add variant.
	VariantExam domain.Exam `json:"variant_exam,omitempty"`
}

// Session is the complete per-user dialogue state.
type Session struct {
	Phase Phase `json:"phase"`
	Flow  Flow  `json:"flow"`
}

// Store keeps sessions keyed by Telegram user id. Get returns a zero
// Session when the user has none; a zero Phase means "no session".
type Store interface {
	Get(userID int64) (Session, bool)
	Set(userID int64, s Session)
	Clear(userID int64)
}
