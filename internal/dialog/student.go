package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tutorbot/core/logger"
	"tutorbot/internal/dialog/session"
	"tutorbot/internal/storage"
)

// Student login: every text message is one password attempt. The first
// successful attempt binds the Telegram account permanently; the
// consumed password stops matching afterwards.

func (e *Engine) handleStudentLogin(ctx context.Context, ev Event, sess *session.Session) []Reply {
	if ev.Kind != EventText || strings.TrimSpace(ev.Text) == "" {
		return []Reply{{Text: "Введите пароль для входа."}}
	}
	st, err := e.students.Login(ctx, ev.Text, ev.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return []Reply{{Text: "Неверный пароль. Попробуйте ещё раз."}}
	}
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	sess.Phase = PhaseStudentHome
	sess.Flow = session.Flow{}
	return []Reply{{
		Text:     fmt.Sprintf("Здравствуйте, %s! Выберите действие:", st.Name),
		Keyboard: studentHomeKeyboard(),
	}}
}

// Student home: pure reads of the student's own record.

func (e *Engine) handleStudentHome(ctx context.Context, ev Event, sess *session.Session) []Reply {
	if ev.Kind != EventText {
		return []Reply{{Text: "Выберите действие из меню.", Keyboard: studentHomeKeyboard()}}
	}
	st, err := e.students.ByTelegramID(ctx, ev.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		// The record was deleted since login.
		logger.Dialog.Warn("student.unbound",
			"rid", logger.RIDFrom(ctx),
			"user_id", ev.UserID,
		)
		sess.Phase = PhaseStudentLogin
		sess.Flow = session.Flow{}
		return []Reply{{Text: "Введите пароль для входа.", Keyboard: &Keyboard{Remove: true}}}
	}
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}

	switch strings.TrimSpace(ev.Text) {
	case LabelMyHomework:
		if st.Homework == "" {
			return []Reply{{Text: "Домашнее задание пока не выдано.", Keyboard: studentHomeKeyboard()}}
		}
		tasks, err := e.tasks.ListByExam(ctx, st.Exam)
		if err == nil {
			for _, t := range tasks {
				if t.Title == st.Homework {
					return []Reply{{
						Text:     "Ваше домашнее задание:",
						Keyboard: &Keyboard{Buttons: []Button{{Label: t.Title, URL: t.Link}}},
					}}
				}
			}
		}
		return []Reply{{Text: fmt.Sprintf("Ваше домашнее задание: %s", st.Homework), Keyboard: studentHomeKeyboard()}}

	case LabelMyNotes:
		notes, err := e.notes.ListByExam(ctx, st.Exam)
		if err != nil {
			return e.failToMenu(ctx, ev.UserID, sess, err)
		}
		if len(notes) == 0 {
			return []Reply{{Text: "Конспектов пока нет.", Keyboard: studentHomeKeyboard()}}
		}
		return []Reply{{Text: "Конспекты:", Keyboard: materialLinksKeyboard(notes)}}

	case LabelMyVariant:
		v, err := e.variants.Get(ctx, st.Exam)
		if errors.Is(err, storage.ErrNotFound) {
			return []Reply{{Text: "Вариант пока не добавлен.", Keyboard: studentHomeKeyboard()}}
		}
		if err != nil {
			return e.failToMenu(ctx, ev.UserID, sess, err)
		}
		return []Reply{{Text: fmt.Sprintf("Актуальный вариант:\n%s", v.Link), Keyboard: studentHomeKeyboard()}}

	case LabelMyClass:
		if st.ClassLink == "" {
			return []Reply{{Text: "Ссылка на занятие не указана.", Keyboard: studentHomeKeyboard()}}
		}
		text := fmt.Sprintf("Ссылка на занятие:\n%s", st.ClassLink)
		if st.ClassDate != "" {
			text = fmt.Sprintf("Занятие %s.\n%s", st.ClassDate, text)
		}
		return []Reply{{Text: text, Keyboard: studentHomeKeyboard()}}
	}
	return []Reply{{Text: "Не понимаю. Выберите действие из меню.", Keyboard: studentHomeKeyboard()}}
}
