package grade

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/escola/core"
)

var (
	termTag   = "term"
	termText  = fmt.Sprintf("trimestre inválido, use um de: %s", joinTerms(Terms))
	scoreText = "nota deve ser um número finito"

	errInvalidTerm  = errors.New("invalid term")
	errInvalidScore = errors.New("score is not a finite number")
)

// register custom validators
func init() {
	_ = core.Validate.RegisterValidation(termTag, termValidation)
	core.RegisterCustomTranslation(termTag, termText)
}

// termValidation only allows terms from the fixed set.
func termValidation(fl validator.FieldLevel) bool {
	return Term(fl.Field().Int()).Valid()
}

func joinTerms(terms []Term) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}
