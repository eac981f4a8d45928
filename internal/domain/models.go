// Package domain holds the data model shared by storage, services and dialogs.
package domain

import "fmt"

// Exam is the course a student is prepared for.
type Exam string

const (
	ExamOGE    Exam = "OGE"
	ExamEGE    Exam = "EGE"
	ExamSchool Exam = "SchoolCurriculum"
)

// Exams lists all valid courses in menu order.
var Exams = []Exam{ExamOGE, ExamEGE, ExamSchool}

// MaterialExams lists the courses that carry task and note banks.
var MaterialExams = []Exam{ExamOGE, ExamEGE}

// Label returns the human readable Russian name shown on keyboards.
func (e Exam) Label() string {
	switch e {
	case ExamOGE:
		return "ОГЭ"
	case ExamEGE:
		return "ЕГЭ"
	case ExamSchool:
		return "Школьная программа"
	}
	return string(e)
}

// Valid reports whether e is a known course.
func (e Exam) Valid() bool {
	switch e {
	case ExamOGE, ExamEGE, ExamSchool:
		return true
	}
	return false
}

// HasMaterials reports whether the course carries task and note banks.
func (e Exam) HasMaterials() bool {
	return e == ExamOGE || e == ExamEGE
}

// ParseExamLabel resolves a keyboard label back to its course.
func ParseExamLabel(label string) (Exam, error) {
	for _, e := range Exams {
		if e.Label() == label {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown exam label %q", label)
}

// Student is a pupil record. Password doubles as the login credential
// until first use; after login it holds the Telegram id as text.
type Student struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Exam        Exam   `db:"exam"`
	ClassDate   string `db:"class_date"`
	ClassLink   string `db:"class_link"`
	Description string `db:"description"`
	Homework    string `db:"homework"`
	Password    string `db:"password"`
	TelegramID  int64  `db:"telegram_id"`
}

// Label formats the student for selection keyboards.
func (s Student) Label() string {
	l := fmt.Sprintf("%s (%s)", s.Name, s.Exam.Label())
	if s.Description != "" {
		l += " " + s.Description
	}
	return l
}

// MaterialKind distinguishes the two material banks.
type MaterialKind string

const (
	KindTask MaterialKind = "task"
	KindNote MaterialKind = "note"
)

// Valid reports whether k names a known bank.
func (k MaterialKind) Valid() bool { return k == KindTask || k == KindNote }

// Material is a titled link in one of the banks, scoped to a course.
type Material struct {
	ID    int64        `db:"id"`
	Title string       `db:"title"`
	Link  string       `db:"link"`
	Exam  Exam         `db:"exam"`
	Kind  MaterialKind `db:"-"`
}

// Variant is the single current mock-exam link per course.
type Variant struct {
	Exam Exam   `db:"exam"`
	Link string `db:"link"`
}
