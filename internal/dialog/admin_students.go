package dialog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tutorbot/core/logger"
	"tutorbot/internal/dialog/session"
	"tutorbot/internal/domain"
	"tutorbot/internal/service"
)

func backKeyboard() *Keyboard { return labelsKeyboard() }

// selectionID extracts the entity id from a button press with the
// expected action key.
func selectionID(ev Event, action string) (int64, bool) {
	if ev.Kind != EventButton || ev.Action != action {
		return 0, false
	}
	id, err := strconv.ParseInt(ev.Payload, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (e *Engine) handleChoosing(ctx context.Context, ev Event, sess *session.Session) []Reply {
	if ev.Kind != EventText {
		return []Reply{{Text: "Выберите действие из меню.", Keyboard: adminMenuKeyboard()}}
	}
	switch strings.TrimSpace(ev.Text) {
	case LabelAddStudent:
		sess.Phase = PhaseAddStudentName
		sess.Flow = session.Flow{}
		return []Reply{{Text: "Введите имя ученика:", Keyboard: backKeyboard()}}

	case LabelDeleteStudent:
		return e.startStudentSelection(ctx, ev.UserID, sess, PhaseDeleteStudent, "Выберите ученика для удаления:")

	case LabelGiveHomework:
		return e.startStudentSelection(ctx, ev.UserID, sess, PhaseHomeworkStudent, "Кому выдать домашнее задание?")

	case LabelEditStudent:
		return e.startStudentSelection(ctx, ev.UserID, sess, PhaseEditStudent, "Какого ученика изменить?")

	case LabelStudentInfo:
		return e.startStudentSelection(ctx, ev.UserID, sess, PhaseStudentInfo, "Какой ученик вас интересует?")

	case LabelAddVariant:
		sess.Phase = PhaseVariantExam
		sess.Flow = session.Flow{}
		return []Reply{{Text: "Для какого экзамена вариант?", Keyboard: examKeyboard(domain.Exams)}}

	case LabelTasks:
		return e.startMaterialMenu(sess, domain.KindTask)

	case LabelNotes:
		return e.startMaterialMenu(sess, domain.KindNote)
	}
	return []Reply{{Text: "Не понимаю. Выберите действие из меню.", Keyboard: adminMenuKeyboard()}}
}

func (e *Engine) startStudentSelection(ctx context.Context, userID int64, sess *session.Session, next session.Phase, prompt string) []Reply {
	students, err := e.students.List(ctx)
	if err != nil {
		return e.failToMenu(ctx, userID, sess, err)
	}
	if len(students) == 0 {
		return []Reply{{Text: "Учеников пока нет.", Keyboard: adminMenuKeyboard()}}
	}
	sess.Phase = next
	sess.Flow = session.Flow{}
	return []Reply{{Text: prompt, Keyboard: studentsKeyboard(students)}}
}

// Add student: name, exam, class date, class link, then commit.

func (e *Engine) handleAddStudentName(_ context.Context, ev Event, sess *session.Session) []Reply {
	name := strings.TrimSpace(ev.Text)
	if ev.Kind != EventText || name == "" {
		return []Reply{{Text: "Введите имя ученика:", Keyboard: backKeyboard()}}
	}
	sess.Flow.NewName = name
	sess.Phase = PhaseAddStudentExam
	return []Reply{{Text: "Выберите экзамен:", Keyboard: examKeyboard(domain.Exams)}}
}

func (e *Engine) handleAddStudentExam(_ context.Context, ev Event, sess *session.Session) []Reply {
	exam, err := domain.ParseExamLabel(strings.TrimSpace(ev.Text))
	if ev.Kind != EventText || err != nil {
		return []Reply{{Text: "Выберите экзамен с клавиатуры:", Keyboard: examKeyboard(domain.Exams)}}
	}
	sess.Flow.NewExam = exam
	sess.Phase = PhaseAddStudentDate
	return []Reply{{Text: "Введите дату занятия в формате ДД.ММ.ГГГГ:", Keyboard: backKeyboard()}}
}

func (e *Engine) handleAddStudentDate(_ context.Context, ev Event, sess *session.Session) []Reply {
	date := strings.TrimSpace(ev.Text)
	if ev.Kind != EventText || ValidateClassDate(date) != nil {
		return []Reply{{Text: "Неверный формат даты. Пример: 01.09.2026", Keyboard: backKeyboard()}}
	}
	sess.Flow.NewClassDate = date
	sess.Phase = PhaseAddStudentLink
	return []Reply{{Text: "Отправьте ссылку на занятие:", Keyboard: backKeyboard()}}
}

func (e *Engine) handleAddStudentLink(ctx context.Context, ev Event, sess *session.Session) []Reply {
	link := strings.TrimSpace(ev.Text)
	if ev.Kind != EventText || ValidateLink(link) != nil {
		return []Reply{{Text: "Ссылка должна начинаться с http:// или https://", Keyboard: backKeyboard()}}
	}
	if sess.Flow.NewName == "" || !sess.Flow.NewExam.Valid() {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	st, err := e.students.Create(ctx, service.NewStudentInput{
		Name:      sess.Flow.NewName,
		Exam:      sess.Flow.NewExam,
		ClassDate: sess.Flow.NewClassDate,
		ClassLink: link,
	})
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	replies := []Reply{{Text: fmt.Sprintf("Ученик %s добавлен.\nПароль для входа: %s", st.Name, st.Password)}}
	sess.Phase = PhaseChoosing
	sess.Flow = session.Flow{}
	return append(replies, Reply{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()})
}

// Delete student: commits immediately on selection.

func (e *Engine) handleDeleteStudent(ctx context.Context, ev Event, sess *session.Session) []Reply {
	id, ok := selectionID(ev, ActionStudent)
	if !ok {
		return []Reply{{Text: "Выберите ученика из списка."}}
	}
	if err := e.students.Delete(ctx, id); err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	sess.Phase = PhaseChoosing
	sess.Flow = session.Flow{}
	return []Reply{
		{Text: "Ученик удалён.", Edit: true},
		{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()},
	}
}

// Assign homework: pick student, pick task of the student's course,
// commit immediately and notify the pupil if reachable.

func (e *Engine) handleHomeworkStudent(ctx context.Context, ev Event, sess *session.Session) []Reply {
	id, ok := selectionID(ev, ActionStudent)
	if !ok {
		return []Reply{{Text: "Выберите ученика из списка."}}
	}
	st, err := e.students.Get(ctx, id)
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	tasks, err := e.tasks.ListByExam(ctx, st.Exam)
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	if len(tasks) == 0 {
		sess.Phase = PhaseChoosing
		sess.Flow = session.Flow{}
		return []Reply{{
			Text:     fmt.Sprintf("Для экзамена %s нет заданий.", st.Exam.Label()),
			Keyboard: adminMenuKeyboard(),
		}}
	}
	sess.Flow.StudentID = id
	sess.Phase = PhaseHomeworkTask
	return []Reply{{Text: "Выберите задание:", Keyboard: materialsKeyboard(tasks), Edit: true}}
}

func (e *Engine) handleHomeworkTask(ctx context.Context, ev Event, sess *session.Session) []Reply {
	taskID, ok := selectionID(ev, ActionMaterial)
	if !ok {
		return []Reply{{Text: "Выберите задание из списка."}}
	}
	if sess.Flow.StudentID == 0 {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	task, err := e.tasks.Get(ctx, taskID)
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	st, err := e.students.AssignHomework(ctx, sess.Flow.StudentID, task)
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	sess.Phase = PhaseChoosing
	sess.Flow = session.Flow{}
	replies := []Reply{
		{Text: fmt.Sprintf("Домашнее задание %q выдано ученику %s.", task.Title, st.Name), Edit: true},
		{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()},
	}
	if st.TelegramID != 0 {
		replies = append(replies, Reply{
			To:       st.TelegramID,
			Text:     fmt.Sprintf("Вам выдано новое домашнее задание: %s", task.Title),
			Keyboard: &Keyboard{Buttons: []Button{{Label: "Открыть задание", URL: task.Link}}},
		})
	} else {
		logger.Dialog.Info("homework.student_unreachable",
			"rid", logger.RIDFrom(ctx),
			"student_id", st.ID,
		)
	}
	return replies
}

// Edit student: select, choose field, enter value, confirm.

func (e *Engine) handleEditStudent(ctx context.Context, ev Event, sess *session.Session) []Reply {
	id, ok := selectionID(ev, ActionStudent)
	if !ok {
		return []Reply{{Text: "Выберите ученика из списка."}}
	}
	if _, err := e.students.Get(ctx, id); err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	sess.Flow.StudentID = id
	sess.Phase = PhaseEditField
	return []Reply{{Text: "Что изменить?", Keyboard: fieldKeyboard()}}
}

func (e *Engine) handleEditField(_ context.Context, ev Event, sess *session.Session) []Reply {
	field, err := domain.ParseFieldLabel(strings.TrimSpace(ev.Text))
	if ev.Kind != EventText || err != nil {
		return []Reply{{Text: "Выберите поле с клавиатуры:", Keyboard: fieldKeyboard()}}
	}
	sess.Flow.EditField = field
	sess.Phase = PhaseEditValue
	switch field {
	case domain.FieldExam:
		return []Reply{{Text: "Выберите новый экзамен:", Keyboard: examKeyboard(domain.Exams)}}
	case domain.FieldClassDate:
		return []Reply{{Text: "Введите новую дату в формате ДД.ММ.ГГГГ:", Keyboard: backKeyboard()}}
	case domain.FieldClassLink:
		return []Reply{{Text: "Отправьте новую ссылку на занятие:", Keyboard: backKeyboard()}}
	case domain.FieldDescription:
		return []Reply{{
			Text:     fmt.Sprintf("Отправьте новое описание или нажмите %q:", LabelClearDescription),
			Keyboard: labelsKeyboard(LabelClearDescription),
		}}
	}
	return []Reply{{Text: fmt.Sprintf("Введите новое значение поля %q:", field.Label()), Keyboard: backKeyboard()}}
}

func (e *Engine) handleEditValue(ctx context.Context, ev Event, sess *session.Session) []Reply {
	if ev.Kind != EventText {
		return []Reply{{Text: "Введите новое значение."}}
	}
	if sess.Flow.StudentID == 0 || sess.Flow.EditField == "" {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	value := strings.TrimSpace(ev.Text)
	display := value
	switch sess.Flow.EditField {
	case domain.FieldExam:
		exam, err := domain.ParseExamLabel(value)
		if err != nil {
			return []Reply{{Text: "Выберите экзамен с клавиатуры:", Keyboard: examKeyboard(domain.Exams)}}
		}
		value = string(exam)
		display = exam.Label()
	case domain.FieldClassDate:
		if ValidateClassDate(value) != nil {
			return []Reply{{Text: "Неверный формат даты. Пример: 01.09.2026", Keyboard: backKeyboard()}}
		}
	case domain.FieldClassLink:
		if ValidateLink(value) != nil {
			return []Reply{{Text: "Ссылка должна начинаться с http:// или https://", Keyboard: backKeyboard()}}
		}
	case domain.FieldDescription:
		if value == LabelClearDescription {
			value = ""
			display = "(пусто)"
		}
	default:
		if value == "" {
			return []Reply{{Text: "Значение не может быть пустым.", Keyboard: backKeyboard()}}
		}
	}
	sess.Flow.NewValue = value
	sess.Phase = PhaseEditConfirm
	return []Reply{{
		Text:     fmt.Sprintf("Заменить %s на %q?", sess.Flow.EditField.Label(), display),
		Keyboard: yesNoKeyboard(),
	}}
}

func (e *Engine) handleEditConfirm(ctx context.Context, ev Event, sess *session.Session) []Reply {
	if ev.Kind != EventText {
		return []Reply{{Text: "Ответьте Да или Нет.", Keyboard: yesNoKeyboard()}}
	}
	if sess.Flow.StudentID == 0 || sess.Flow.EditField == "" {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	switch strings.TrimSpace(ev.Text) {
	case LabelYes:
		err := e.students.UpdateField(ctx, sess.Flow.StudentID, sess.Flow.EditField, sess.Flow.NewValue)
		if err != nil {
			return e.failToMenu(ctx, ev.UserID, sess, err)
		}
		sess.Phase = PhaseChoosing
		sess.Flow = session.Flow{}
		return []Reply{
			{Text: "Изменения сохранены."},
			{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()},
		}
	case LabelNo:
		sess.Phase = PhaseChoosing
		sess.Flow = session.Flow{}
		return []Reply{
			{Text: "Изменения отменены."},
			{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()},
		}
	}
	return []Reply{{Text: "Ответьте Да или Нет.", Keyboard: yesNoKeyboard()}}
}

// Student info: render the full card.

func (e *Engine) handleStudentInfo(ctx context.Context, ev Event, sess *session.Session) []Reply {
	id, ok := selectionID(ev, ActionStudent)
	if !ok {
		return []Reply{{Text: "Выберите ученика из списка."}}
	}
	st, err := e.students.Get(ctx, id)
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	sess.Phase = PhaseChoosing
	sess.Flow = session.Flow{}
	return []Reply{
		{Text: renderStudentInfo(st), Edit: true},
		{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()},
	}
}
