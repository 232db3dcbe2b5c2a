package subject

import (
	"github.com/pkg/errors"

	"github.com/trezcool/escola/core"
)

// Entity names subjects in errors.
const Entity = "subject"

type Subject struct {
	ID   int
	Name string
	Code string
}

// NewSubject contains information needed to register a new Subject.
type NewSubject struct {
	Name string `label:"nome" validate:"required"`
	Code string `label:"código" validate:"required"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanString(ns.Code)
	return core.Validate.Struct(ns)
}

type UpdateSubject struct {
	Name *string `label:"nome" validate:"omitnil,min=1"`
}

func (us *UpdateSubject) Validate() error {
	us.Name = core.CleanStringPtr(us.Name)
	if us.Name == nil {
		return core.NewValidationError(errors.New("nothing to update"), core.FieldError{
			Field: "matéria",
			Error: "informe ao menos um campo para atualizar",
		})
	}
	return core.Validate.Struct(us)
}
