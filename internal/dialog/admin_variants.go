package dialog

import (
	"context"
	"fmt"
	"strings"

	"tutorbot/core/logger"
	"tutorbot/internal/dialog/session"
	"tutorbot/internal/domain"
)

// Add variant: exam, link, upsert, broadcast to the course.

func (e *Engine) handleVariantExam(_ context.Context, ev Event, sess *session.Session) []Reply {
	exam, err := domain.ParseExamLabel(strings.TrimSpace(ev.Text))
	if ev.Kind != EventText || err != nil {
		return []Reply{{Text: "Выберите экзамен с клавиатуры:", Keyboard: examKeyboard(domain.Exams)}}
	}
	sess.Flow.VariantExam = exam
	sess.Phase = PhaseVariantLink
	return []Reply{{Text: "Отправьте ссылку на вариант:", Keyboard: backKeyboard()}}
}

func (e *Engine) handleVariantLink(ctx context.Context, ev Event, sess *session.Session) []Reply {
	link := strings.TrimSpace(ev.Text)
	if ev.Kind != EventText || ValidateLink(link) != nil {
		return []Reply{{Text: "Ссылка должна начинаться с http:// или https://", Keyboard: backKeyboard()}}
	}
	if !sess.Flow.VariantExam.Valid() {
		return e.abortToMenu(ctx, ev.UserID, sess)
	}
	exam := sess.Flow.VariantExam
	recipients, err := e.variants.Publish(ctx, exam, link)
	if err != nil {
		return e.failToMenu(ctx, ev.UserID, sess, err)
	}
	sess.Phase = PhaseChoosing
	sess.Flow = session.Flow{}
	replies := []Reply{
		{Text: fmt.Sprintf("Вариант для %s обновлён. Уведомлений: %d.", exam.Label(), len(recipients))},
		{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()},
	}
	// Independent reply per recipient: one failed delivery must not
	// affect the others or the admin response.
	for _, st := range recipients {
		replies = append(replies, Reply{
			To:       st.TelegramID,
			Text:     fmt.Sprintf("Появился новый вариант для подготовки к %s.", exam.Label()),
			Keyboard: &Keyboard{Buttons: []Button{{Label: "Открыть вариант", URL: link}}},
		})
	}
	logger.BCast.Info("variant.fanout",
		"rid", logger.RIDFrom(ctx),
		"exam", string(exam),
		"recipients", len(recipients),
	)
	return replies
}
