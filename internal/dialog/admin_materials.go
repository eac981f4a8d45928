package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tutorbot/internal/dialog/session"
	"tutorbot/internal/domain"
	"tutorbot/internal/storage"
)

func (e *Engine) startMaterialMenu(sess *session.Session, kind domain.MaterialKind) []Reply {
	sess.Phase = PhaseMaterialMenu
	sess.Flow = session.Flow{MaterialKind: kind}
	return []Reply{{
		Text:     materialKindTitle(kind) + ". Выберите действие:",
		Keyboard: labelsKeyboard(LabelMaterialAdd, LabelMaterialDelete, LabelMaterialEdit),
	}}
}

func (e *Engine) handleMaterialMenu(ctx context.Context, ev Event, sess *session.Session) []Reply {
	if !sess.Flow.MaterialKind.Valid() {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	if ev.Kind != EventText {
		return []Reply{{Text: "Выберите действие из меню.", Keyboard: labelsKeyboard(LabelMaterialAdd, LabelMaterialDelete, LabelMaterialEdit)}}
	}
	switch strings.TrimSpace(ev.Text) {
	case LabelMaterialAdd:
		sess.Phase = PhaseMaterialAddExam
		return []Reply{{Text: "Для какого экзамена?", Keyboard: examKeyboard(domain.MaterialExams)}}
	case LabelMaterialDelete:
		sess.Phase = PhaseMaterialDeleteExam
		return []Reply{{Text: "Для какого экзамена?", Keyboard: examKeyboard(domain.MaterialExams)}}
	case LabelMaterialEdit:
		sess.Phase = PhaseMaterialEditExam
		return []Reply{{Text: "Для какого экзамена?", Keyboard: examKeyboard(domain.MaterialExams)}}
	}
	return []Reply{{Text: "Выберите действие из меню.", Keyboard: labelsKeyboard(LabelMaterialAdd, LabelMaterialDelete, LabelMaterialEdit)}}
}

func parseMaterialExam(ev Event) (domain.Exam, bool) {
	if ev.Kind != EventText {
		return "", false
	}
	exam, err := domain.ParseExamLabel(strings.TrimSpace(ev.Text))
	if err != nil || !exam.HasMaterials() {
		return "", false
	}
	return exam, true
}

// Add material: exam, unique title, link.

func (e *Engine) handleMaterialAddExam(ctx context.Context, ev Event, sess *session.Session) []Reply {
	exam, ok := parseMaterialExam(ev)
	if !ok {
		return []Reply{{Text: "Выберите экзамен с клавиатуры:", Keyboard: examKeyboard(domain.MaterialExams)}}
	}
	if !sess.Flow.MaterialKind.Valid() {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	sess.Flow.MaterialExam = exam
	sess.Phase = PhaseMaterialAddTitle
	return []Reply{{Text: "Введите название:", Keyboard: backKeyboard()}}
}

func (e *Engine) handleMaterialAddTitle(ctx context.Context, ev Event, sess *session.Session) []Reply {
	title := strings.TrimSpace(ev.Text)
	if ev.Kind != EventText || title == "" {
		return []Reply{{Text: "Введите название:", Keyboard: backKeyboard()}}
	}
	if !sess.Flow.MaterialKind.Valid() || !sess.Flow.MaterialExam.HasMaterials() {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	svc := e.materialSvc(sess.Flow.MaterialKind)
	taken, err := e.titleTaken(ctx, svc, sess.Flow.MaterialExam, title)
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	if taken {
		return []Reply{{
			Text:     fmt.Sprintf("Название %q уже занято. Введите другое название:", title),
			Keyboard: backKeyboard(),
		}}
	}
	sess.Flow.MaterialTitle = title
	sess.Phase = PhaseMaterialAddLink
	return []Reply{{Text: "Отправьте ссылку:", Keyboard: backKeyboard()}}
}

func (e *Engine) handleMaterialAddLink(ctx context.Context, ev Event, sess *session.Session) []Reply {
	link := strings.TrimSpace(ev.Text)
	if ev.Kind != EventText || ValidateLink(link) != nil {
		return []Reply{{Text: "Ссылка должна начинаться с http:// или https://", Keyboard: backKeyboard()}}
	}
	if !sess.Flow.MaterialKind.Valid() || sess.Flow.MaterialTitle == "" {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	svc := e.materialSvc(sess.Flow.MaterialKind)
	mat, err := svc.Add(ctx, sess.Flow.MaterialTitle, link, sess.Flow.MaterialExam)
	if errors.Is(err, storage.ErrDuplicateTitle) {
		// Lost a race since the title check; collect a new title.
		sess.Phase = PhaseMaterialAddTitle
		sess.Flow.MaterialTitle = ""
		return []Reply{{Text: "Такое название уже занято. Введите другое название:", Keyboard: backKeyboard()}}
	}
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	kind := sess.Flow.MaterialKind
	sess.Phase = PhaseChoosing
	sess.Flow = session.Flow{}
	return []Reply{
		{Text: fmt.Sprintf("Добавлено: %s (%s).", mat.Title, materialKindOne(kind))},
		{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()},
	}
}

func (e *Engine) titleTaken(ctx context.Context, svc MaterialService, exam domain.Exam, title string) (bool, error) {
	existing, err := svc.ListByExam(ctx, exam)
	if err != nil {
		return false, err
	}
	for _, m := range existing {
		if m.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// Delete material: exam, selection, immediate delete.

func (e *Engine) handleMaterialDeleteExam(ctx context.Context, ev Event, sess *session.Session) []Reply {
	return e.startMaterialSelection(ctx, ev, sess, PhaseMaterialDelete, "Что удалить?")
}

func (e *Engine) handleMaterialDelete(ctx context.Context, ev Event, sess *session.Session) []Reply {
	id, ok := selectionID(ev, ActionMaterial)
	if !ok {
		return []Reply{{Text: "Выберите из списка."}}
	}
	if !sess.Flow.MaterialKind.Valid() {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	if err := e.materialSvc(sess.Flow.MaterialKind).Delete(ctx, id); err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	sess.Phase = PhaseChoosing
	sess.Flow = session.Flow{}
	return []Reply{
		{Text: "Удалено.", Edit: true},
		{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()},
	}
}

// Edit material: exam, selection, field, value, confirm.

func (e *Engine) handleMaterialEditExam(ctx context.Context, ev Event, sess *session.Session) []Reply {
	return e.startMaterialSelection(ctx, ev, sess, PhaseMaterialEditSelect, "Что изменить?")
}

func (e *Engine) startMaterialSelection(ctx context.Context, ev Event, sess *session.Session, next session.Phase, prompt string) []Reply {
	exam, ok := parseMaterialExam(ev)
	if !ok {
		return []Reply{{Text: "Выберите экзамен с клавиатуры:", Keyboard: examKeyboard(domain.MaterialExams)}}
	}
	if !sess.Flow.MaterialKind.Valid() {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	kind := sess.Flow.MaterialKind
	materials, err := e.materialSvc(kind).ListByExam(ctx, exam)
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	if len(materials) == 0 {
		sess.Phase = PhaseChoosing
		sess.Flow = session.Flow{}
		return []Reply{{
			Text:     fmt.Sprintf("Для экзамена %s список пуст.", exam.Label()),
			Keyboard: adminMenuKeyboard(),
		}}
	}
	sess.Flow.MaterialExam = exam
	sess.Phase = next
	return []Reply{{Text: prompt, Keyboard: materialsKeyboard(materials)}}
}

func (e *Engine) handleMaterialEditSelect(ctx context.Context, ev Event, sess *session.Session) []Reply {
	id, ok := selectionID(ev, ActionMaterial)
	if !ok {
		return []Reply{{Text: "Выберите из списка."}}
	}
	if !sess.Flow.MaterialKind.Valid() {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	if _, err := e.materialSvc(sess.Flow.MaterialKind).Get(ctx, id); err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	sess.Flow.MaterialID = id
	sess.Phase = PhaseMaterialEditField
	return []Reply{{Text: "Что изменить?", Keyboard: labelsKeyboard(LabelMaterialTitle, LabelMaterialLink)}}
}

func (e *Engine) handleMaterialEditField(ctx context.Context, ev Event, sess *session.Session) []Reply {
	if sess.Flow.MaterialID == 0 {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	switch strings.TrimSpace(ev.Text) {
	case LabelMaterialTitle:
		sess.Flow.MaterialField = "title"
		sess.Phase = PhaseMaterialEditValue
		return []Reply{{Text: "Введите новое название:", Keyboard: backKeyboard()}}
	case LabelMaterialLink:
		sess.Flow.MaterialField = "link"
		sess.Phase = PhaseMaterialEditValue
		return []Reply{{Text: "Отправьте новую ссылку:", Keyboard: backKeyboard()}}
	}
	return []Reply{{Text: "Выберите поле с клавиатуры:", Keyboard: labelsKeyboard(LabelMaterialTitle, LabelMaterialLink)}}
}

func (e *Engine) handleMaterialEditValue(ctx context.Context, ev Event, sess *session.Session) []Reply {
	value := strings.TrimSpace(ev.Text)
	if ev.Kind != EventText || value == "" {
		return []Reply{{Text: "Введите новое значение.", Keyboard: backKeyboard()}}
	}
	if sess.Flow.MaterialID == 0 || !sess.Flow.MaterialKind.Valid() {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	switch sess.Flow.MaterialField {
	case "title":
		svc := e.materialSvc(sess.Flow.MaterialKind)
		taken, err := e.titleTaken(ctx, svc, sess.Flow.MaterialExam, value)
		if err != nil {
			return e.failToMenu(ctx, ev.UserID, sess, err)
		}
		if taken {
			return []Reply{{Text: "Такое название уже занято. Введите другое:", Keyboard: backKeyboard()}}
		}
	case "link":
		if ValidateLink(value) != nil {
			return []Reply{{Text: "Ссылка должна начинаться с http:// или https://", Keyboard: backKeyboard()}}
		}
	default:
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	sess.Flow.NewValue = value
	sess.Phase = PhaseMaterialEditConfirm
	label := LabelMaterialTitle
	if sess.Flow.MaterialField == "link" {
		label = LabelMaterialLink
	}
	return []Reply{{
		Text:     fmt.Sprintf("Заменить %s на %q?", strings.ToLower(label), value),
		Keyboard: yesNoKeyboard(),
	}}
}

func (e *Engine) handleMaterialEditConfirm(ctx context.Context, ev Event, sess *session.Session) []Reply {
	if ev.Kind != EventText {
		return []Reply{{Text: "Ответьте Да или Нет.", Keyboard: yesNoKeyboard()}}
	}
	if sess.Flow.MaterialID == 0 || !sess.Flow.MaterialKind.Valid() || sess.Flow.NewValue == "" {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	switch strings.TrimSpace(ev.Text) {
	case LabelYes:
		svc := e.materialSvc(sess.Flow.MaterialKind)
		var err error
		if sess.Flow.MaterialField == "link" {
			err = svc.Relink(ctx, sess.Flow.MaterialID, sess.Flow.NewValue)
		} else {
			err = svc.Rename(ctx, sess.Flow.MaterialID, sess.Flow.NewValue)
		}
		if errors.Is(err, storage.ErrDuplicateTitle) {
			sess.Phase = PhaseMaterialEditValue
			return []Reply{{Text: "Такое название уже занято. Введите другое:", Keyboard: backKeyboard()}}
		}
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
