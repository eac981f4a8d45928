package dialog

import "tutorbot/internal/dialog/session"

// Admin phases.
const (
	PhaseChoosing session.Phase = "choosing"

	PhaseAddStudentName session.Phase = "add_student_name"
	PhaseAddStudentExam session.Phase = "add_student_exam"
	PhaseAddStudentDate session.Phase = "add_student_date"
	PhaseAddStudentLink session.Phase = "add_student_link"

	PhaseDeleteStudent session.Phase = "delete_student"

	PhaseHomeworkStudent session.Phase = "homework_student"
	PhaseHomeworkTask    session.Phase = "homework_task"

	PhaseEditStudent session.Phase = "edit_student"
	PhaseEditField   session.Phase = "edit_field"
	PhaseEditValue   session.Phase = "edit_value"
	PhaseEditConfirm session.Phase = "edit_confirm"

	PhaseStudentInfo session.Phase = "student_info"

	PhaseMaterialMenu        session.Phase = "material_menu"
	PhaseMaterialAddExam     session.Phase = "material_add_exam"
	PhaseMaterialAddTitle    session.Phase = "material_add_title"
	PhaseMaterialAddLink     session.Phase = "material_add_link"
	PhaseMaterialDeleteExam  session.Phase = "material_delete_exam"
	PhaseMaterialDelete      session.Phase = "material_delete"
	PhaseMaterialEditExam    session.Phase = "material_edit_exam"
	PhaseMaterialEditSelect  session.Phase = "material_edit_select"
	PhaseMaterialEditField   session.Phase = "material_edit_field"
	PhaseMaterialEditValue   session.Phase = "material_edit_value"
	PhaseMaterialEditConfirm session.Phase = "material_edit_confirm"

	PhaseVariantExam session.Phase = "variant_exam"
	PhaseVariantLink session.Phase = "variant_link"
)

// Student phases.
const (
	PhaseStudentLogin session.Phase = "student_login"
	PhaseStudentHome  session.Phase = "student_home"
)

// Menu labels shown to the admin.
const (
	LabelGiveHomework  = "Выдать домашнее задание"
	LabelAddVariant    = "Добавить вариант"
	LabelEditStudent   = "Внести изменения"
	LabelStudentInfo   = "Информация об ученике"
	LabelAddStudent    = "Добавить ученика"
	LabelDeleteStudent = "Удалить ученика"
	LabelTasks         = "Задания"
	LabelNotes         = "Конспекты"
)

// Material submenu labels.
const (
	LabelMaterialAdd    = "Добавить"
	LabelMaterialDelete = "Удалить"
	LabelMaterialEdit   = "Изменить"

	LabelMaterialTitle = "Название"
	LabelMaterialLink  = "Ссылка"
)

// Student home labels.
const (
	LabelMyHomework = "Домашнее задание"
	LabelMyNotes    = "Конспекты"
	LabelMyVariant  = "Актуальный вариант"
	LabelMyClass    = "Подключиться к занятию"
)

// Universal labels.
const (
	LabelBackToMenu       = "Вернуться в меню"
	LabelYes              = "Да"
	LabelNo               = "Нет"
	LabelClearDescription = "Удалить описание"
)

// Callback actions.
const (
	ActionStudent  = "student"
	ActionMaterial = "material"
	ActionMenu     = "menu"
)
