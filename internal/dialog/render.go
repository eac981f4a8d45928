package dialog

import (
	"fmt"
	"strconv"

	"tutorbot/internal/domain"
)

// Row widths for selection keyboards. Presentation only, the state
// machine never depends on them.
const (
	studentsPerRow  = 2
	materialsPerRow = 3
)

func adminMenuKeyboard() *Keyboard {
	return &Keyboard{
		Menu:   true,
		PerRow: 2,
		Buttons: []Button{
			{Label: LabelGiveHomework},
			{Label: LabelAddVariant},
			{Label: LabelEditStudent},
			{Label: LabelStudentInfo},
			{Label: LabelAddStudent},
			{Label: LabelDeleteStudent},
			{Label: LabelTasks},
			{Label: LabelNotes},
		},
	}
}

func studentHomeKeyboard() *Keyboard {
	return &Keyboard{
		Menu:   true,
		PerRow: 2,
		Buttons: []Button{
			{Label: LabelMyHomework},
			{Label: LabelMyNotes},
			{Label: LabelMyVariant},
			{Label: LabelMyClass},
		},
	}
}

func labelsKeyboard(labels ...string) *Keyboard {
	kb := &Keyboard{Menu: true, PerRow: 1}
	for _, l := range labels {
		kb.Buttons = append(kb.Buttons, Button{Label: l})
	}
	kb.Buttons = append(kb.Buttons, Button{Label: LabelBackToMenu})
	return kb
}

func examKeyboard(exams []domain.Exam) *Keyboard {
	labels := make([]string, 0, len(exams))
	for _, e := range exams {
		labels = append(labels, e.Label())
	}
	return labelsKeyboard(labels...)
}

func yesNoKeyboard() *Keyboard {
	kb := &Keyboard{Menu: true, PerRow: 2}
	kb.Buttons = []Button{{Label: LabelYes}, {Label: LabelNo}}
	return kb
}

func fieldKeyboard() *Keyboard {
	labels := make([]string, 0, len(domain.EditableFields))
	for _, f := range domain.EditableFields {
		labels = append(labels, f.Label())
	}
	kb := labelsKeyboard(labels...)
	kb.PerRow = 2
	return kb
}

func studentsKeyboard(students []domain.Student) *Keyboard {
	kb := &Keyboard{PerRow: studentsPerRow}
	for _, s := range students {
		kb.Buttons = append(kb.Buttons, Button{
			Label:   s.Label(),
			Action:  ActionStudent,
			Payload: strconv.FormatInt(s.ID, 10),
		})
	}
	return withBackButton(kb)
}

func materialsKeyboard(materials []domain.Material) *Keyboard {
	kb := &Keyboard{PerRow: materialsPerRow}
	for _, m := range materials {
		kb.Buttons = append(kb.Buttons, Button{
			Label:   m.Title,
			Action:  ActionMaterial,
			Payload: strconv.FormatInt(m.ID, 10),
		})
	}
	return withBackButton(kb)
}

// withBackButton appends the inline return-to-menu button; every
// selection keyboard carries one.
func withBackButton(kb *Keyboard) *Keyboard {
	kb.Buttons = append(kb.Buttons, Button{Label: LabelBackToMenu, Action: ActionMenu})
	return kb
}

func materialLinksKeyboard(materials []domain.Material) *Keyboard {
	kb := &Keyboard{PerRow: materialsPerRow}
	for _, m := range materials {
		kb.Buttons = append(kb.Buttons, Button{Label: m.Title, URL: m.Link})
	}
	return kb
}

// renderStudentInfo formats a full student card for the admin.
func renderStudentInfo(s domain.Student) string {
	val := func(v string) string {
		if v == "" {
			return "—"
		}
		return v
	}
	login := "нет"
	if s.TelegramID != 0 {
		login = "да"
	}
	return fmt.Sprintf(
		"Имя: %s\nЭкзамен: %s\nДата занятия: %s\nСсылка на занятие: %s\nОписание: %s\nДомашнее задание: %s\nВыполнен вход: %s",
		s.Name, s.Exam.Label(), val(s.ClassDate), val(s.ClassLink),
		val(s.Description), val(s.Homework), login,
	)
}

func materialKindTitle(kind domain.MaterialKind) string {
	if kind == domain.KindNote {
		return "Конспекты"
	}
	return "Задания"
}

func materialKindOne(kind domain.MaterialKind) string {
	if kind == domain.KindNote {
		return "конспект"
	}
	return "задание"
}
