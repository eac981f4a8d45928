package dialog

import (
	"context"
	"errors"
	"strings"

	"tutorbot/core/logger"
	"tutorbot/internal/dialog/session"
	"tutorbot/internal/domain"
	"tutorbot/internal/service"
	"tutorbot/internal/storage"
)

// StudentService is the student-facing slice of the service layer.
type StudentService interface {
	Create(ctx context.Context, in service.NewStudentInput) (domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
	Get(ctx context.Context, id int64) (domain.Student, error)
	Delete(ctx context.Context, id int64) error
	UpdateField(ctx context.Context, id int64, field domain.StudentField, value string) error
	AssignHomework(ctx context.Context, id int64, task domain.Material) (domain.Student, error)
	Login(ctx context.Context, password string, tgID int64) (domain.Student, error)
	ByTelegramID(ctx context.Context, tgID int64) (domain.Student, error)
}

// MaterialService manages one bank of titled links.
type MaterialService interface {
	Kind() domain.MaterialKind
	Add(ctx context.Context, title, link string, exam domain.Exam) (domain.Material, error)
	ListByExam(ctx context.Context, exam domain.Exam) ([]domain.Material, error)
	Get(ctx context.Context, id int64) (domain.Material, error)
	Rename(ctx context.Context, id int64, title string) error
	Relink(ctx context.Context, id int64, link string) error
	Delete(ctx context.Context, id int64) error
}

// VariantService manages the per-course mock-exam link.
type VariantService interface {
	Publish(ctx context.Context, exam domain.Exam, link string) ([]domain.Student, error)
	Get(ctx context.Context, exam domain.Exam) (domain.Variant, error)
}

type handlerFunc func(ctx context.Context, ev Event, sess *session.Session) []Reply

// Options wires an Engine.
type Options struct {
	Sessions session.Store
	Students StudentService
	Tasks    MaterialService
	Notes    MaterialService
	Variants VariantService
	AdminIDs []int64
}

// Engine drives one conversation step per inbound event. Each user's
// conversation is strictly sequential; users never share session state.
type Engine struct {
	sessions session.Store
	students StudentService
	tasks    MaterialService
	notes    MaterialService
	variants VariantService
	admins   map[int64]struct{}

	handlers map[session.Phase]handlerFunc
}

// NewEngine builds the engine with its phase dispatch table.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		sessions: opts.Sessions,
		students: opts.Students,
		tasks:    opts.Tasks,
		notes:    opts.Notes,
		variants: opts.Variants,
		admins:   make(map[int64]struct{}, len(opts.AdminIDs)),
	}
	for _, id := range opts.AdminIDs {
		e.admins[id] = struct{}{}
	}
	e.handlers = map[session.Phase]handlerFunc{
		PhaseChoosing: e.handleChoosing,

		PhaseAddStudentName: e.handleAddStudentName,
		PhaseAddStudentExam: e.handleAddStudentExam,
		PhaseAddStudentDate: e.handleAddStudentDate,
		PhaseAddStudentLink: e.handleAddStudentLink,

		PhaseDeleteStudent: e.handleDeleteStudent,

		PhaseHomeworkStudent: e.handleHomeworkStudent,
		PhaseHomeworkTask:    e.handleHomeworkTask,

		PhaseEditStudent: e.handleEditStudent,
		PhaseEditField:   e.handleEditField,
		PhaseEditValue:   e.handleEditValue,
		PhaseEditConfirm: e.handleEditConfirm,

		PhaseStudentInfo: e.handleStudentInfo,

		PhaseMaterialMenu:        e.handleMaterialMenu,
		PhaseMaterialAddExam:     e.handleMaterialAddExam,
		PhaseMaterialAddTitle:    e.handleMaterialAddTitle,
		PhaseMaterialAddLink:     e.handleMaterialAddLink,
		PhaseMaterialDeleteExam:  e.handleMaterialDeleteExam,
		PhaseMaterialDelete:      e.handleMaterialDelete,
		PhaseMaterialEditExam:    e.handleMaterialEditExam,
		PhaseMaterialEditSelect:  e.handleMaterialEditSelect,
		PhaseMaterialEditField:   e.handleMaterialEditField,
		PhaseMaterialEditValue:   e.handleMaterialEditValue,
		PhaseMaterialEditConfirm: e.handleMaterialEditConfirm,

		PhaseVariantExam: e.handleVariantExam,
		PhaseVariantLink: e.handleVariantLink,

		PhaseStudentLogin: e.handleStudentLogin,
		PhaseStudentHome:  e.handleStudentHome,
	}
	return e
}

// IsAdmin reports whether the user id belongs to an administrator.
func (e *Engine) IsAdmin(userID int64) bool {
	_, ok := e.admins[userID]
	return ok
}

// Handle runs one conversation step and returns the replies to send.
// Errors are resolved inside the phase boundary; every path ends in a
// navigable phase.
func (e *Engine) Handle(ctx context.Context, ev Event) []Reply {
	var (
		sess    session.Session
		replies []Reply
	)
	switch {
	case ev.Kind == EventStart:
		replies = e.enterHome(ctx, ev.UserID, &sess)
	case ev.Kind == EventText && strings.TrimSpace(ev.Text) == LabelBackToMenu:
		replies = e.enterHome(ctx, ev.UserID, &sess)
	case ev.Kind == EventButton && ev.Action == ActionMenu:
		replies = e.enterHome(ctx, ev.UserID, &sess)
	default:
		var found bool
		sess, found = e.sessions.Get(ev.UserID)
		if !found {
			e.setHomePhase(ctx, ev.UserID, &sess)
		}
		h := e.handlers[sess.Phase]
		if h == nil {
			logger.Dialog.Warn("dialog.unknown_phase",
				"rid", logger.RIDFrom(ctx),
				"user_id", ev.UserID,
				"phase", string(sess.Phase),
			)
			sess = session.Session{}
			replies = e.enterHome(ctx, ev.UserID, &sess)
		} else {
			logger.Dialog.Debug("dialog.step",
				"rid", logger.RIDFrom(ctx),
				"user_id", ev.UserID,
				"phase", string(sess.Phase),
			)
			replies = h(ctx, ev, &sess)
		}
	}
	e.sessions.Set(ev.UserID, sess)
	return replies
}

// setHomePhase picks the resting phase for the user's identity without
// producing any output.
func (e *Engine) setHomePhase(ctx context.Context, userID int64, sess *session.Session) {
	sess.Flow = session.Flow{}
	if e.IsAdmin(userID) {
		sess.Phase = PhaseChoosing
		return
	}
	if _, err := e.students.ByTelegramID(ctx, userID); err == nil {
		sess.Phase = PhaseStudentHome
		return
	}
	sess.Phase = PhaseStudentLogin
}

// enterHome resets the session and greets with the matching menu.
func (e *Engine) enterHome(ctx context.Context, userID int64, sess *session.Session) []Reply {
	e.setHomePhase(ctx, userID, sess)
	switch sess.Phase {
	case PhaseChoosing:
		return []Reply{{Text: "Выберите действие:", Keyboard: adminMenuKeyboard()}}
	case PhaseStudentHome:
		return []Reply{{Text: "Выберите действие:", Keyboard: studentHomeKeyboard()}}
	default:
		return []Reply{{Text: "Введите пароль для входа.", Keyboard: &Keyboard{Remove: true}}}
	}
}

// failToMenu reports a store problem and resets the flow.
func (e *Engine) failToMenu(ctx context.Context, userID int64, sess *session.Session, err error) []Reply {
	msg := "Что-то пошло не так. Попробуйте ещё раз."
	if errors.Is(err, storage.ErrNotFound) {
		msg = "Запись не найдена."
	}
	logger.Dialog.Error("dialog.flow_failed",
		"rid", logger.RIDFrom(ctx),
		"user_id", userID,
		"phase", string(sess.Phase),
		"error", err.Error(),
	)
	replies := []Reply{{Text: msg}}
	return append(replies, e.enterHome(ctx, userID, sess)...)
}

// abortToMenu handles broken session state: report and reset.
func (e *Engine) abortToMenu(ctx context.Context, userID int64, sess *session.Session) []Reply {
	logger.Dialog.Warn("dialog.session_incomplete",
		"rid", logger.RIDFrom(ctx),
		"user_id", userID,
		"phase", string(sess.Phase),
	)
	replies := []Reply{{Text: "Диалог прерван, начнём сначала."}}
	return append(replies, e.enterHome(ctx, userID, sess)...)
}

// materialSvc resolves the bank recorded in the session flow.
func (e *Engine) materialSvc(kind domain.MaterialKind) MaterialService {
	if kind == domain.KindNote {
		return e.notes
	}
	return e.tasks
}
