package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/grade"
	"github.com/trezcool/escola/core/student"
	"github.com/trezcool/escola/core/subject"
)

// describeErr turns a service error into a Portuguese message.
func describeErr(err error) string {
	switch core.KindOf(err) {
	case core.KindNotFound:
		var nfErr *core.NotFoundError
		if errors.As(err, &nfErr) {
			switch nfErr.Entity {
			case student.Entity:
				return fmt.Sprintf("Erro: Matrícula %s não encontrada.", nfErr.Key)
			case subject.Entity:
				return fmt.Sprintf("Erro: Matéria com código %s não encontrada.", nfErr.Key)
			case grade.Entity:
				return "Erro: Nota não encontrada."
			}
		}
		return "Erro: Registro não encontrado."

	case core.KindDuplicateKey:
		var dupErr *core.DuplicateKeyError
		if errors.As(err, &dupErr) {
			switch dupErr.Entity {
			case student.Entity:
				return fmt.Sprintf("Erro: A matrícula %s já está no sistema.", dupErr.Key)
			case subject.Entity:
				return fmt.Sprintf("Erro: O código %s já está no sistema.", dupErr.Key)
			}
		}
		return "Erro: Registro duplicado."

	case core.KindNoData:
		return "Nenhuma nota encontrada para este aluno."

	case core.KindValidation:
		return "Erro: " + strings.Join(core.TranslateErrors(err), "; ")

	default:
		return fmt.Sprintf("Ocorreu um erro. %v", err)
	}
}
