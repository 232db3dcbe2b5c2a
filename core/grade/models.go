package grade

import (
	"math"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/escola/core"
)

// Entity names grades in errors.
const Entity = "grade"

// Term is a grading period of the school year.
type Term int

const (
	FirstTerm Term = iota + 1
	SecondTerm
	ThirdTerm
)

// Terms is the fixed set of valid terms, in order.
var Terms = []Term{FirstTerm, SecondTerm, ThirdTerm}

func (t Term) Valid() bool {
	return t >= FirstTerm && t <= ThirdTerm
}

func (t Term) String() string {
	return strconv.Itoa(int(t))
}

// ParseTerm parses a term number, rejecting anything outside Terms.
func ParseTerm(s string) (Term, error) {
	n, err := strconv.Atoi(core.CleanString(s))
	if err != nil || !Term(n).Valid() {
		return 0, core.NewValidationError(errInvalidTerm, core.FieldError{Field: "trimestre", Error: termText})
	}
	return Term(n), nil
}

type Grade struct {
	ID        int
	StudentID int
	SubjectID int
	Term      Term
	Score     float64
}

// Entry is one grade row of a student joined with its subject name.
// Score is invalid for rows stored without a value.
type Entry struct {
	SubjectName string       `db:"subject_name"`
	Term        Term         `db:"term"`
	Score       null.Float64 `db:"score"`
}

// RecordGrade contains what is needed to record a grade by natural keys.
type RecordGrade struct {
	Enrollment  string  `label:"matrícula" validate:"required"`
	SubjectCode string  `label:"código da matéria" validate:"required"`
	Term        Term    `label:"trimestre" validate:"term"`
	Score       float64 `label:"nota"`
}

func (rg *RecordGrade) Validate() error {
	rg.Enrollment = core.CleanString(rg.Enrollment)
	rg.SubjectCode = core.CleanString(rg.SubjectCode)
	if err := core.Validate.Struct(rg); err != nil {
		return err
	}
	// NaN and infinities cannot be stored or averaged
	if math.IsNaN(rg.Score) || math.IsInf(rg.Score, 0) {
		return core.NewValidationError(errInvalidScore, core.FieldError{Field: "nota", Error: scoreText})
	}
	return nil
}
