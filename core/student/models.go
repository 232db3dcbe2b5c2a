package student

import (
	"github.com/pkg/errors"

	"github.com/trezcool/escola/core"
)

// Entity names students in errors.
const Entity = "student"

type Student struct {
	ID             int
	Name           string
	EnrollmentCode string
	BirthDate      string
	GuardianPhone  string
	GuardianName   string
	GradeLevel     string
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name           string `label:"nome" validate:"required"`
	EnrollmentCode string `label:"matrícula" validate:"required"`
	BirthDate      string `label:"data de nascimento"`
	GuardianPhone  string `label:"telefone do responsável"`
	GuardianName   string `label:"nome do responsável"`
	GradeLevel     string `label:"série"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.EnrollmentCode = core.CleanString(ns.EnrollmentCode)
	ns.BirthDate = core.CleanString(ns.BirthDate)
	ns.GuardianPhone = core.CleanString(ns.GuardianPhone)
	ns.GuardianName = core.CleanString(ns.GuardianName)
	ns.GradeLevel = core.CleanString(ns.GradeLevel)
	return core.Validate.Struct(ns)
}

var errNothingToUpdate = errors.New("nothing to update")

// UpdateStudent defines what may be changed on an existing Student.
// Only non-nil fields are written.
type UpdateStudent struct {
	Name       *string `label:"nome" validate:"omitnil,min=1"`
	GradeLevel *string `label:"série"`
}

func (us *UpdateStudent) IsEmpty() bool {
	return us.Name == nil && us.GradeLevel == nil
}

func (us *UpdateStudent) Validate() error {
	us.Name = core.CleanStringPtr(us.Name)
	us.GradeLevel = core.CleanStringPtr(us.GradeLevel)
	if us.IsEmpty() {
		return core.NewValidationError(errNothingToUpdate, core.FieldError{
			Field: "aluno",
			Error: "informe ao menos um campo para atualizar",
		})
	}
	return core.Validate.Struct(us)
}
