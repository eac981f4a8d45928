package bot

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v4"

	tghelpers "tutorbot/core/telegram/helpers"
	"tutorbot/internal/dialog"
	"tutorbot/internal/domain"
)

// StatsHandler serves the admin-only /stats command with store totals.
type StatsHandler struct {
	adminIDs []int64
	students dialog.StudentService
	tasks    dialog.MaterialService
	notes    dialog.MaterialService
}

// NewStats builds the /stats handler.
func NewStats(adminIDs []int64, students dialog.StudentService, tasks, notes dialog.MaterialService) *StatsHandler {
	return &StatsHandler{adminIDs: adminIDs, students: students, tasks: tasks, notes: notes}
}

func (s *StatsHandler) handle(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "stats")

	students, err := s.students.List(ctx)
	if err != nil {
		return err
	}
	bound := 0
	for _, st := range students {
		if st.TelegramID != 0 {
			bound++
		}
	}
	taskCount, err := s.countMaterials(ctx, s.tasks)
	if err != nil {
		return err
	}
	noteCount, err := s.countMaterials(ctx, s.notes)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf(
		"Учеников: %d (вошли: %d)\nЗаданий: %d\nКонспектов: %d",
		len(students), bound, taskCount, noteCount,
	))
}

func (s *StatsHandler) countMaterials(ctx context.Context, svc dialog.MaterialService) (int, error) {
	total := 0
	for _, exam := range domain.MaterialExams {
		items, err := svc.ListByExam(ctx, exam)
		if err != nil {
			return 0, err
		}
		total += len(items)
	}
	return total, nil
}
