package domain

import "fmt"

// StudentField is an editable student attribute. Fields map to fixed
// column names; free-form field input never reaches SQL.
type StudentField string

const (
	FieldName        StudentField = "name"
	FieldExam        StudentField = "exam"
	FieldClassDate   StudentField = "class_date"
	FieldClassLink   StudentField = "class_link"
	FieldDescription StudentField = "description"
	FieldHomework    StudentField = "homework"
)

// EditableFields lists fields offered in the edit menu, in display order.
var EditableFields = []StudentField{
	FieldName,
	FieldExam,
	FieldClassDate,
	FieldClassLink,
	FieldDescription,
	FieldHomework,
}

// Column returns the database column for the field, or an error for
// anything outside the allow list.
func (f StudentField) Column() (string, error) {
	switch f {
	case FieldName:
		return "name", nil
	case FieldExam:
		return "exam", nil
	case FieldClassDate:
		return "class_date", nil
	case FieldClassLink:
		return "class_link", nil
	case FieldDescription:
		return "description", nil
	case FieldHomework:
		return "homework", nil
	}
	return "", fmt.Errorf("unknown student field %q", string(f))
}

// Label returns the Russian name shown on the edit keyboard.
func (f StudentField) Label() string {
	switch f {
	case FieldName:
		return "Имя"
	case FieldExam:
		return "Экзамен"
	case FieldClassDate:
		return "Дата занятия"
	case FieldClassLink:
		return "Ссылка на занятие"
	case FieldDescription:
		return "Описание"
	case FieldHomework:
		return "Домашнее задание"
	}
	return string(f)
}

// ParseFieldLabel resolves an edit keyboard label back to its field.
func ParseFieldLabel(label string) (StudentField, error) {
	for _, f := range EditableFields {
		if f.Label() == label {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field label %q", label)
}
