package grade

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/escola/core"
)

// Status is the final outcome of a subject once every term is graded.
type Status string

const (
	StatusFailed   Status = "Reprovado"
	StatusRemedial Status = "Recuperação"
	StatusPassed   Status = "Aprovado"
)

// DefaultThresholds: pass from 7.0, fail up to 4.9, remedial in between.
var DefaultThresholds = Thresholds{Pass: 7.0, Fail: 4.9}

var errThresholdsInverted = errors.New("pass threshold must be greater than fail threshold")

type Thresholds struct {
	Pass float64
	Fail float64
}

func (th Thresholds) Validate() error {
	if th.Pass <= th.Fail {
		return core.NewValidationError(errThresholdsInverted, core.FieldError{
			Field: "limiares",
			Error: "a média de aprovação deve ser maior que a de reprovação",
		})
	}
	return nil
}

// Classify maps a final mean onto a Status.
// mean <= Fail fails, mean >= Pass passes, anything strictly between goes to remedial.
func (th Thresholds) Classify(mean float64) Status {
	switch {
	case mean <= th.Fail:
		return StatusFailed
	case mean >= th.Pass:
		return StatusPassed
	default:
		return StatusRemedial
	}
}

type TermScore struct {
	Term  Term
	Score float64
}

// SubjectReport holds the scores of one subject.
// Mean and Status are only set when Complete.
type SubjectReport struct {
	Subject  string
	Scores   []TermScore
	Complete bool
	Mean     float64
	Status   Status
}

type Report struct {
	Enrollment string
	Thresholds Thresholds
	Subjects   []SubjectReport
}

// GenerateReport builds the report card of a student: subjects by name, terms in order, and a
// final status for the subjects graded in every term.
// It fails with core.ErrNoData when the student has no grades.
func (svc *Service) GenerateReport(ctx context.Context, enrollment string, th Thresholds) (Report, error) {
	if err := th.Validate(); err != nil {
		return Report{}, err
	}
	enrollment = core.CleanString(enrollment)

	var entries []Entry
	err := core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		studentID, err := svc.keys.StudentID(ctx, exec, enrollment)
		if err != nil {
			return err
		}
		entries, err = svc.repo.QueryStudentEntries(ctx, exec, studentID)
		return err
	})
	if err != nil {
		return Report{}, err
	}

	subjects, skipped := summarize(entries, th)
	for _, e := range skipped {
		svc.logger.Warn("skipping unusable grade",
			"enrollment", enrollment, "subject", e.SubjectName, "term", int(e.Term), "has_score", e.Score.Valid)
	}
	if len(subjects) == 0 {
		return Report{}, errors.Wrapf(core.ErrNoData, "no grades for student %q", enrollment)
	}
	return Report{Enrollment: enrollment, Thresholds: th, Subjects: subjects}, nil
}

// summarize groups entries by subject name in first-seen order and computes final statuses.
// Entries with an unknown term or without a score are left out and returned as skipped.
func summarize(entries []Entry, th Thresholds) (reports []SubjectReport, skipped []Entry) {
	var order []string
	scores := make(map[string]map[Term]float64)
	for _, e := range entries {
		if !e.Term.Valid() || !e.Score.Valid {
			skipped = append(skipped, e)
			continue
		}
		byTerm, ok := scores[e.SubjectName]
		if !ok {
			byTerm = make(map[Term]float64, len(Terms))
			scores[e.SubjectName] = byTerm
			order = append(order, e.SubjectName)
		}
		byTerm[e.Term] = e.Score.Float64
	}

	reports = make([]SubjectReport, 0, len(order))
	for _, name := range order {
		byTerm := scores[name]
		sr := SubjectReport{Subject: name, Scores: make([]TermScore, 0, len(byTerm))}
		for term, score := range byTerm {
			sr.Scores = append(sr.Scores, TermScore{Term: term, Score: score})
		}
		sort.Slice(sr.Scores, func(i, j int) bool { return sr.Scores[i].Term < sr.Scores[j].Term })

		// a final status needs exactly one score per term, never a partial average
		if len(sr.Scores) == len(Terms) {
			var sum float64
			for _, ts := range sr.Scores {
				sum += ts.Score
			}
			sr.Complete = true
			sr.Mean = sum / float64(len(Terms))
			sr.Status = th.Classify(sr.Mean)
		}
		reports = append(reports, sr)
	}
	return reports, skipped
}
