package domain

import "testing"

func TestStudentFieldColumnAllowList(t *testing.T) {
	want := map[StudentField]string{
		FieldName:        "name",
		FieldExam:        "exam",
		FieldClassDate:   "class_date",
		FieldClassLink:   "class_link",
		FieldDescription: "description",
		FieldHomework:    "homework",
	}
	for f, col := range want {
		got, err := f.Column()
		if err != nil {
			t.Fatalf("Column(%s): %v", f, err)
		}
		if got != col {
			t.Errorf("Column(%s) = %q, want %q", f, got, col)
		}
	}
}

func TestStudentFieldColumnRejectsUnknown(t *testing.T) {
	for _, bad := range []StudentField{"password", "telegram_id", "id", "name; DROP TABLE students"} {
		if _, err := bad.Column(); err == nil {
			t.Errorf("Column(%q) accepted, want error", string(bad))
		}
	}
}

func TestParseFieldLabelRoundTrip(t *testing.T) {
	for _, f := range EditableFields {
		got, err := ParseFieldLabel(f.Label())
		if err != nil {
			t.Fatalf("ParseFieldLabel(%q): %v", f.Label(), err)
		}
		if got != f {
			t.Errorf("ParseFieldLabel(%q) = %s, want %s", f.Label(), got, f)
		}
	}
	if _, err := ParseFieldLabel("Пароль"); err == nil {
		t.Error("ParseFieldLabel accepted a non-editable label")
	}
}

func TestParseExamLabel(t *testing.T) {
	for _, e := range Exams {
		got, err := ParseExamLabel(e.Label())
		if err != nil {
			t.Fatalf("ParseExamLabel(%q): %v", e.Label(), err)
		}
		if got != e {
			t.Errorf("ParseExamLabel(%q) = %s, want %s", e.Label(), got, e)
		}
	}
	if _, err := ParseExamLabel("IELTS"); err == nil {
		t.Error("ParseExamLabel accepted an unknown label")
	}
}

func TestStudentLabel(t *testing.T) {
	s := Student{Name: "Иван", Exam: ExamOGE}
	if got, want := s.Label(), "Иван (ОГЭ)"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
	s.Description = "суббота"
	if got, want := s.Label(), "Иван (ОГЭ) суббота"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestExamHasMaterials(t *testing.T) {
	if !ExamOGE.HasMaterials() || !ExamEGE.HasMaterials() {
		t.Error("OGE and EGE must carry material banks")
	}
	if ExamSchool.HasMaterials() {
		t.Error("SchoolCurriculum must not carry material banks")
	}
}
