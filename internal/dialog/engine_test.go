package dialog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"tutorbot/internal/dialog/session"
	"tutorbot/internal/domain"
	"tutorbot/internal/service"
	"tutorbot/internal/storage"
)

// In-memory fakes for the service interfaces.

type fakeStudents struct {
	seq  int64
	byID map[int64]domain.Student
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{byID: make(map[int64]domain.Student)}
}

func (f *fakeStudents) Create(_ context.Context, in service.NewStudentInput) (domain.Student, error) {
	f.seq++
	st := domain.Student{
		ID:        f.seq,
		Name:      in.Name,
		Exam:      in.Exam,
		ClassDate: in.ClassDate,
		ClassLink: in.ClassLink,
		Password:  fmt.Sprintf("pw%d", f.seq),
	}
	f.byID[st.ID] = st
	return st, nil
}

func (f *fakeStudents) List(_ context.Context) ([]domain.Student, error) {
	out := make([]domain.Student, 0, len(f.byID))
	for id := int64(1); id <= f.seq; id++ {
		if st, ok := f.byID[id]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeStudents) Get(_ context.Context, id int64) (domain.Student, error) {
	st, ok := f.byID[id]
	if !ok {
		return domain.Student{}, storage.ErrNotFound
	}
	return st, nil
}

func (f *fakeStudents) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeStudents) UpdateField(_ context.Context, id int64, field domain.StudentField, value string) error {
	st, ok := f.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	if _, err := field.Column(); err != nil {
		return err
	}
	switch field {
	case domain.FieldName:
		st.Name = value
	case domain.FieldExam:
		st.Exam = domain.Exam(value)
	case domain.FieldClassDate:
		st.ClassDate = value
	case domain.FieldClassLink:
		st.ClassLink = value
	case domain.FieldDescription:
		st.Description = value
	case domain.FieldHomework:
		st.Homework = value
	}
	f.byID[id] = st
	return nil
}

func (f *fakeStudents) AssignHomework(ctx context.Context, id int64, task domain.Material) (domain.Student, error) {
	if err := f.UpdateField(ctx, id, domain.FieldHomework, task.Title); err != nil {
		return domain.Student{}, err
	}
	return f.byID[id], nil
}

func (f *fakeStudents) Login(_ context.Context, password string, tgID int64) (domain.Student, error) {
	password = strings.TrimSpace(password)
	for id, st := range f.byID {
		if st.Password == password {
			st.TelegramID = tgID
			st.Password = strconv.FormatInt(tgID, 10)
			f.byID[id] = st
			return st, nil
		}
	}
	return domain.Student{}, storage.ErrNotFound
}

func (f *fakeStudents) ByTelegramID(_ context.Context, tgID int64) (domain.Student, error) {
	for _, st := range f.byID {
		if st.TelegramID == tgID {
			return st, nil
		}
	}
	return domain.Student{}, storage.ErrNotFound
}

type fakeMaterials struct {
	kind domain.MaterialKind
	seq  int64
	byID map[int64]domain.Material
}

func newFakeMaterials(kind domain.MaterialKind) *fakeMaterials {
	return &fakeMaterials{kind: kind, byID: make(map[int64]domain.Material)}
}

func (f *fakeMaterials) Kind() domain.MaterialKind { return f.kind }

func (f *fakeMaterials) Add(_ context.Context, title, link string, exam domain.Exam) (domain.Material, error) {
	for _, m := range f.byID {
		if m.Title == title && m.Exam == exam {
			return domain.Material{}, storage.ErrDuplicateTitle
		}
	}
	f.seq++
	m := domain.Material{ID: f.seq, Title: title, Link: link, Exam: exam, Kind: f.kind}
	f.byID[m.ID] = m
	return m, nil
}

func (f *fakeMaterials) ListByExam(_ context.Context, exam domain.Exam) ([]domain.Material, error) {
	var out []domain.Material
	for id := int64(1); id <= f.seq; id++ {
		if m, ok := f.byID[id]; ok && m.Exam == exam {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMaterials) Get(_ context.Context, id int64) (domain.Material, error) {
	m, ok := f.byID[id]
	if !ok {
		return domain.Material{}, storage.ErrNotFound
	}
	return m, nil
}

func (f *fakeMaterials) Rename(_ context.Context, id int64, title string) error {
	m, ok := f.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	for otherID, other := range f.byID {
		if otherID != id && other.Title == title && other.Exam == m.Exam {
			return storage.ErrDuplicateTitle
		}
	}
	m.Title = title
	f.byID[id] = m
	return nil
}

func (f *fakeMaterials) Relink(_ context.Context, id int64, link string) error {
	m, ok := f.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	m.Link = link
	f.byID[id] = m
	return nil
}

func (f *fakeMaterials) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeVariants struct {
	links    map[domain.Exam]string
	students *fakeStudents
}

func newFakeVariants(students *fakeStudents) *fakeVariants {
	return &fakeVariants{links: make(map[domain.Exam]string), students: students}
}

func (f *fakeVariants) Publish(ctx context.Context, exam domain.Exam, link string) ([]domain.Student, error) {
	f.links[exam] = link
	all, _ := f.students.List(ctx)
	var out []domain.Student
	for _, st := range all {
		if st.Exam == exam && st.TelegramID != 0 {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeVariants) Get(_ context.Context, exam domain.Exam) (domain.Variant, error) {
	link, ok := f.links[exam]
	if !ok {
		return domain.Variant{}, storage.ErrNotFound
	}
	return domain.Variant{Exam: exam, Link: link}, nil
}

type fixture struct {
	engine   *Engine
	students *fakeStudents
	tasks    *fakeMaterials
	notes    *fakeMaterials
	variants *fakeVariants
	sessions *session.MemoryStore
}

const adminID int64 = 100

func newFixture(t *testing.T) *fixture {
	t.Helper()
	students := newFakeStudents()
	tasks := newFakeMaterials(domain.KindTask)
	notes := newFakeMaterials(domain.KindNote)
	variants := newFakeVariants(students)
	sessions := session.NewMemoryStore(0)
	t.Cleanup(sessions.Close)
	return &fixture{
		engine: NewEngine(Options{
			Sessions: sessions,
			Students: students,
			Tasks:    tasks,
			Notes:    notes,
			Variants: variants,
			AdminIDs: []int64{adminID},
		}),
		students: students,
		tasks:    tasks,
		notes:    notes,
		variants: variants,
		sessions: sessions,
	}
}

func start(uid int64) Event { return Event{Kind: EventStart, UserID: uid} }
func text(uid int64, s string) Event {
	return Event{Kind: EventText, UserID: uid, Text: s}
}
func press(uid int64, action string, id int64) Event {
	return Event{Kind: EventButton, UserID: uid, Action: action, Payload: strconv.FormatInt(id, 10)}
}

func firstText(t *testing.T, replies []Reply) string {
	t.Helper()
	if len(replies) == 0 {
		t.Fatal("no replies")
	}
	return replies[0].Text
}

func (f *fixture) phase(t *testing.T, uid int64) session.Phase {
	t.Helper()
	sess, ok := f.sessions.Get(uid)
	if !ok {
		t.Fatal("no session")
	}
	return sess.Phase
}

// addStudent drives the full add flow and returns the created record.
func (f *fixture) addStudent(t *testing.T, name string, exam domain.Exam) domain.Student {
	t.Helper()
	ctx := context.Background()
	f.engine.Handle(ctx, start(adminID))
	f.engine.Handle(ctx, text(adminID, LabelAddStudent))
	f.engine.Handle(ctx, text(adminID, name))
	f.engine.Handle(ctx, text(adminID, exam.Label()))
	f.engine.Handle(ctx, text(adminID, "01.09.2026"))
	f.engine.Handle(ctx, text(adminID, "https://zoom.us/j/1"))
	for _, st := range f.students.byID {
		if st.Name == name {
			return st
		}
	}
	t.Fatalf("student %s not created", name)
	return domain.Student{}
}

func TestStartShowsAdminMenu(t *testing.T) {
	f := newFixture(t)
	replies := f.engine.Handle(context.Background(), start(adminID))
	if len(replies) != 1 || replies[0].Keyboard == nil || !replies[0].Keyboard.Menu {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if got := f.phase(t, adminID); got != PhaseChoosing {
		t.Fatalf("phase = %s, want %s", got, PhaseChoosing)
	}
}

func TestChoosingUnknownInputLoops(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.engine.Handle(ctx, start(adminID))
	replies := f.engine.Handle(ctx, text(adminID, "сделай красиво"))
	if !strings.Contains(firstText(t, replies), "Не понимаю") {
		t.Fatalf("unexpected reply: %q", firstText(t, replies))
	}
	if got := f.phase(t, adminID); got != PhaseChoosing {
		t.Fatalf("phase changed to %s", got)
	}
}

func TestAddStudentFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.engine.Handle(ctx, start(adminID))
	f.engine.Handle(ctx, text(adminID, LabelAddStudent))
	f.engine.Handle(ctx, text(adminID, "Иван"))

	// Unknown exam label re-prompts without advancing.
	f.engine.Handle(ctx, text(adminID, "IELTS"))
	if got := f.phase(t, adminID); got != PhaseAddStudentExam {
		t.Fatalf("phase = %s after invalid exam", got)
	}
	f.engine.Handle(ctx, text(adminID, domain.ExamEGE.Label()))

	// Malformed date re-prompts without advancing.
	f.engine.Handle(ctx, text(adminID, "завтра"))
	if got := f.phase(t, adminID); got != PhaseAddStudentDate {
		t.Fatalf("phase = %s after invalid date", got)
	}
	f.engine.Handle(ctx, text(adminID, "01.09.2026"))

	// Non-URL link re-prompts without advancing.
	f.engine.Handle(ctx, text(adminID, "zoom.us"))
	if got := f.phase(t, adminID); got != PhaseAddStudentLink {
		t.Fatalf("phase = %s after invalid link", got)
	}

	replies := f.engine.Handle(ctx, text(adminID, "https://zoom.us/j/1"))
	if !strings.Contains(firstText(t, replies), "Пароль для входа") {
		t.Fatalf("missing password in reply: %q", firstText(t, replies))
	}
	if got := f.phase(t, adminID); got != PhaseChoosing {
		t.Fatalf("phase = %s after commit", got)
	}

	if len(f.students.byID) != 1 {
		t.Fatalf("students stored: %d", len(f.students.byID))
	}
	st := f.students.byID[1]
	if st.Name != "Иван" || st.Exam != domain.ExamEGE || st.ClassDate != "01.09.2026" {
		t.Fatalf("stored student %+v", st)
	}
	if st.Password == "" {
		t.Fatal("student has no password")
	}
}

func TestLoginBindsFirstAndConsumesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamEGE)

	const studentTG int64 = 500
	replies := f.engine.Handle(ctx, text(studentTG, st.Password))
	if !strings.Contains(firstText(t, replies), "Здравствуйте, Иван") {
		t.Fatalf("login reply: %q", firstText(t, replies))
	}
	if got := f.phase(t, studentTG); got != PhaseStudentHome {
		t.Fatalf("phase = %s after login", got)
	}
	bound := f.students.byID[st.ID]
	if bound.TelegramID != studentTG {
		t.Fatalf("telegram id not bound: %+v", bound)
	}

	// Re-sending the consumed password is unrecognized text, not a login.
	replies = f.engine.Handle(ctx, text(studentTG, st.Password))
	if !strings.Contains(firstText(t, replies), "Не понимаю") {
		t.Fatalf("replayed password reply: %q", firstText(t, replies))
	}

	// Another user cannot log in with the consumed password.
	replies = f.engine.Handle(ctx, text(501, st.Password))
	if !strings.Contains(firstText(t, replies), "Неверный пароль") {
		t.Fatalf("second-user reply: %q", firstText(t, replies))
	}
	if f.students.byID[st.ID].TelegramID != studentTG {
		t.Fatal("binding changed by second login attempt")
	}
}

func TestDeleteStudentCommitsImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamOGE)

	f.engine.Handle(ctx, text(adminID, LabelDeleteStudent))
	replies := f.engine.Handle(ctx, press(adminID, ActionStudent, st.ID))
	if !strings.Contains(firstText(t, replies), "удалён") {
		t.Fatalf("delete reply: %q", firstText(t, replies))
	}
	if _, ok := f.students.byID[st.ID]; ok {
		t.Fatal("student still stored after delete")
	}
}

func TestEditRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamOGE)

	enterValue := func() {
		f.engine.Handle(ctx, text(adminID, LabelEditStudent))
		f.engine.Handle(ctx, press(adminID, ActionStudent, st.ID))
		f.engine.Handle(ctx, text(adminID, domain.FieldName.Label()))
		f.engine.Handle(ctx, text(adminID, "Пётр"))
	}

	enterValue()
	if got := f.phase(t, adminID); got != PhaseEditConfirm {
		t.Fatalf("phase = %s before confirmation", got)
	}
	f.engine.Handle(ctx, text(adminID, LabelNo))
	if f.students.byID[st.ID].Name != "Иван" {
		t.Fatal("record changed despite Нет")
	}

	enterValue()
	f.engine.Handle(ctx, text(adminID, LabelYes))
	if f.students.byID[st.ID].Name != "Пётр" {
		t.Fatalf("record not updated after Да: %+v", f.students.byID[st.ID])
	}
}

func TestEditConfirmGarbageReprompts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamOGE)

	f.engine.Handle(ctx, text(adminID, LabelEditStudent))
	f.engine.Handle(ctx, press(adminID, ActionStudent, st.ID))
	f.engine.Handle(ctx, text(adminID, domain.FieldName.Label()))
	f.engine.Handle(ctx, text(adminID, "Пётр"))

	replies := f.engine.Handle(ctx, text(adminID, "возможно"))
	if !strings.Contains(firstText(t, replies), "Да или Нет") {
		t.Fatalf("reply: %q", firstText(t, replies))
	}
	if got := f.phase(t, adminID); got != PhaseEditConfirm {
		t.Fatalf("phase = %s", got)
	}
	if f.students.byID[st.ID].Name != "Иван" {
		t.Fatal("record mutated without confirmation")
	}
}

func TestClearDescription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamOGE)
	f.students.UpdateField(ctx, st.ID, domain.FieldDescription, "суббота")

	f.engine.Handle(ctx, text(adminID, LabelEditStudent))
	f.engine.Handle(ctx, press(adminID, ActionStudent, st.ID))
	f.engine.Handle(ctx, text(adminID, domain.FieldDescription.Label()))
	f.engine.Handle(ctx, text(adminID, LabelClearDescription))
	f.engine.Handle(ctx, text(adminID, LabelYes))

	if got := f.students.byID[st.ID].Description; got != "" {
		t.Fatalf("description = %q after clearing", got)
	}
}

func TestStartResetsMidFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.engine.Handle(ctx, start(adminID))
	f.engine.Handle(ctx, text(adminID, LabelAddStudent))
	f.engine.Handle(ctx, text(adminID, "Иван"))

	f.engine.Handle(ctx, start(adminID))
	if got := f.phase(t, adminID); got != PhaseChoosing {
		t.Fatalf("phase = %s after /start", got)
	}
	sess, _ := f.sessions.Get(adminID)
	if sess.Flow != (session.Flow{}) {
		t.Fatalf("pending fields survived /start: %+v", sess.Flow)
	}
	if len(f.students.byID) != 0 {
		t.Fatal("partial flow committed a student")
	}
}

func TestBackToMenuFromDeepFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamOGE)

	f.engine.Handle(ctx, text(adminID, LabelEditStudent))
	f.engine.Handle(ctx, press(adminID, ActionStudent, st.ID))
	f.engine.Handle(ctx, text(adminID, domain.FieldName.Label()))

	replies := f.engine.Handle(ctx, text(adminID, LabelBackToMenu))
	if got := f.phase(t, adminID); got != PhaseChoosing {
		t.Fatalf("phase = %s after back-to-menu", got)
	}
	if len(replies) == 0 || replies[0].Keyboard == nil {
		t.Fatalf("no menu shown: %+v", replies)
	}
	sess, _ := f.sessions.Get(adminID)
	if sess.Flow != (session.Flow{}) {
		t.Fatalf("pending fields survived: %+v", sess.Flow)
	}
}

func TestSelectionKeyboardBackButtonReturnsToMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamOGE)

	replies := f.engine.Handle(ctx, text(adminID, LabelDeleteStudent))
	kb := replies[0].Keyboard
	if kb == nil || len(kb.Buttons) == 0 {
		t.Fatalf("no selection keyboard: %+v", replies)
	}
	back := kb.Buttons[len(kb.Buttons)-1]
	if back.Label != LabelBackToMenu || back.Action != ActionMenu {
		t.Fatalf("last button = %+v, want inline %q", back, LabelBackToMenu)
	}

	replies = f.engine.Handle(ctx, Event{Kind: EventButton, UserID: adminID, Action: ActionMenu})
	if got := f.phase(t, adminID); got != PhaseChoosing {
		t.Fatalf("phase = %s after back button", got)
	}
	if len(replies) == 0 || replies[0].Keyboard == nil {
		t.Fatalf("no menu shown: %+v", replies)
	}
	if _, ok := f.students.byID[st.ID]; !ok {
		t.Fatal("back button deleted the student")
	}
}

func TestAssignHomeworkNotifiesBoundStudent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamEGE)
	const studentTG int64 = 500
	f.engine.Handle(ctx, text(studentTG, st.Password))

	f.tasks.Add(ctx, "Задание 1", "https://tasks/1", domain.ExamEGE)

	f.engine.Handle(ctx, start(adminID))
	f.engine.Handle(ctx, text(adminID, LabelGiveHomework))
	f.engine.Handle(ctx, press(adminID, ActionStudent, st.ID))
	replies := f.engine.Handle(ctx, press(adminID, ActionMaterial, 1))

	var notified bool
	for _, r := range replies {
		if r.To != studentTG || !strings.Contains(r.Text, "Задание 1") {
			continue
		}
		notified = true
		if r.Keyboard == nil || len(r.Keyboard.Buttons) != 1 || r.Keyboard.Buttons[0].URL != "https://tasks/1" {
			t.Fatalf("notification lacks task link button: %+v", r)
		}
	}
	if !notified {
		t.Fatalf("student not notified: %+v", replies)
	}
	if f.students.byID[st.ID].Homework != "Задание 1" {
		t.Fatalf("homework not stored: %+v", f.students.byID[st.ID])
	}
}

func TestVariantFanoutTargetsCourseOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ege1 := f.addStudent(t, "Иван", domain.ExamEGE)
	ege2 := f.addStudent(t, "Мария", domain.ExamEGE)
	oge := f.addStudent(t, "Олег", domain.ExamOGE)

	f.engine.Handle(ctx, text(501, ege1.Password))
	f.engine.Handle(ctx, text(502, ege2.Password))
	f.engine.Handle(ctx, text(503, oge.Password))

	f.engine.Handle(ctx, start(adminID))
	f.engine.Handle(ctx, text(adminID, LabelAddVariant))
	f.engine.Handle(ctx, text(adminID, domain.ExamEGE.Label()))
	replies := f.engine.Handle(ctx, text(adminID, "https://variants/ege-1"))

	recipients := map[int64]bool{}
	for _, r := range replies {
		if r.To == 0 {
			continue
		}
		recipients[r.To] = true
		if r.Keyboard == nil || len(r.Keyboard.Buttons) != 1 || r.Keyboard.Buttons[0].URL != "https://variants/ege-1" {
			t.Fatalf("notification lacks variant link button: %+v", r)
		}
	}
	if len(recipients) != 2 || !recipients[501] || !recipients[502] {
		t.Fatalf("fan-out recipients = %v", recipients)
	}
	if recipients[503] {
		t.Fatal("OGE student received EGE variant")
	}
}

func TestMaterialDuplicateTitleReprompts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.tasks.Add(ctx, "Задание 1", "https://tasks/1", domain.ExamOGE)

	f.engine.Handle(ctx, start(adminID))
	f.engine.Handle(ctx, text(adminID, LabelTasks))
	f.engine.Handle(ctx, text(adminID, LabelMaterialAdd))
	f.engine.Handle(ctx, text(adminID, domain.ExamOGE.Label()))
	replies := f.engine.Handle(ctx, text(adminID, "Задание 1"))
	if !strings.Contains(firstText(t, replies), "занято") {
		t.Fatalf("duplicate title reply: %q", firstText(t, replies))
	}
	if got := f.phase(t, adminID); got != PhaseMaterialAddTitle {
		t.Fatalf("phase = %s after duplicate title", got)
	}
	if len(f.tasks.byID) != 1 {
		t.Fatal("duplicate insert altered the store")
	}
}

func TestMaterialAddAndStudentSeesNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamOGE)
	const studentTG int64 = 500
	f.engine.Handle(ctx, text(studentTG, st.Password))

	f.engine.Handle(ctx, start(adminID))
	f.engine.Handle(ctx, text(adminID, LabelNotes))
	f.engine.Handle(ctx, text(adminID, LabelMaterialAdd))
	f.engine.Handle(ctx, text(adminID, domain.ExamOGE.Label()))
	f.engine.Handle(ctx, text(adminID, "Конспект 1"))
	f.engine.Handle(ctx, text(adminID, "https://notes/1"))

	if len(f.notes.byID) != 1 {
		t.Fatalf("notes stored: %d", len(f.notes.byID))
	}

	replies := f.engine.Handle(ctx, text(studentTG, LabelMyNotes))
	if len(replies) == 0 || replies[0].Keyboard == nil || len(replies[0].Keyboard.Buttons) != 1 {
		t.Fatalf("notes reply: %+v", replies)
	}
	if replies[0].Keyboard.Buttons[0].URL != "https://notes/1" {
		t.Fatalf("note button: %+v", replies[0].Keyboard.Buttons[0])
	}
}

func TestMaterialEditRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.tasks.Add(ctx, "Задание 1", "https://tasks/1", domain.ExamOGE)

	run := func(answer string) {
		f.engine.Handle(ctx, start(adminID))
		f.engine.Handle(ctx, text(adminID, LabelTasks))
		f.engine.Handle(ctx, text(adminID, LabelMaterialEdit))
		f.engine.Handle(ctx, text(adminID, domain.ExamOGE.Label()))
		f.engine.Handle(ctx, press(adminID, ActionMaterial, 1))
		f.engine.Handle(ctx, text(adminID, LabelMaterialLink))
		f.engine.Handle(ctx, text(adminID, "https://tasks/updated"))
		f.engine.Handle(ctx, text(adminID, answer))
	}

	run(LabelNo)
	if f.tasks.byID[1].Link != "https://tasks/1" {
		t.Fatal("link changed despite Нет")
	}
	run(LabelYes)
	if f.tasks.byID[1].Link != "https://tasks/updated" {
		t.Fatalf("link not updated after Да: %+v", f.tasks.byID[1])
	}
}

func TestStudentMenuReadsOwnRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamEGE)
	const studentTG int64 = 500
	f.engine.Handle(ctx, text(studentTG, st.Password))

	replies := f.engine.Handle(ctx, text(studentTG, LabelMyHomework))
	if !strings.Contains(firstText(t, replies), "не выдано") {
		t.Fatalf("homework reply: %q", firstText(t, replies))
	}

	replies = f.engine.Handle(ctx, text(studentTG, LabelMyVariant))
	if !strings.Contains(firstText(t, replies), "не добавлен") {
		t.Fatalf("variant reply: %q", firstText(t, replies))
	}

	replies = f.engine.Handle(ctx, text(studentTG, LabelMyClass))
	if !strings.Contains(firstText(t, replies), "https://zoom.us/j/1") {
		t.Fatalf("class link reply: %q", firstText(t, replies))
	}
}

func TestSelectionVanishedEntityAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.addStudent(t, "Иван", domain.ExamOGE)

	f.engine.Handle(ctx, text(adminID, LabelStudentInfo))
	// The record disappears between listing and selection.
	delete(f.students.byID, st.ID)

	replies := f.engine.Handle(ctx, press(adminID, ActionStudent, st.ID))
	if !strings.Contains(firstText(t, replies), "не найдена") {
		t.Fatalf("reply: %q", firstText(t, replies))
	}
	if got := f.phase(t, adminID); got != PhaseChoosing {
		t.Fatalf("phase = %s after vanished entity", got)
	}
}

func TestConfirmWithoutPendingEditAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.engine.Handle(ctx, start(adminID))
	f.sessions.Set(adminID, session.Session{Phase: PhaseEditConfirm})

	replies := f.engine.Handle(ctx, text(adminID, LabelYes))
	if !strings.Contains(firstText(t, replies), "прерван") {
		t.Fatalf("reply: %q", firstText(t, replies))
	}
	if got := f.phase(t, adminID); got != PhaseChoosing {
		t.Fatalf("phase = %s", got)
	}
}
