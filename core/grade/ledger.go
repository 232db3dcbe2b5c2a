package grade

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/escola/core"
)

// RecordGrade stores the score of a student in a subject for a term.
// A grade already recorded for the same triple is overwritten, so the last write wins.
// Nothing is written when either key does not resolve.
func (svc *Service) RecordGrade(ctx context.Context, rg RecordGrade) error {
	if err := rg.Validate(); err != nil {
		return err
	}

	return core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		studentID, err := svc.keys.StudentID(ctx, exec, rg.Enrollment)
		if err != nil {
			return err
		}
		subjectID, err := svc.keys.SubjectID(ctx, exec, rg.SubjectCode)
		if err != nil {
			return err
		}

		g, err := svc.repo.GetGrade(ctx, exec, studentID, subjectID, rg.Term)
		switch {
		case err == nil:
			if err = svc.repo.UpdateGradeScore(ctx, exec, g.ID, rg.Score); err != nil {
				return err
			}
			svc.logger.Info("grade updated",
				"enrollment", rg.Enrollment, "subject", rg.SubjectCode, "term", rg.Term, "score", rg.Score)
			return nil

		case errors.Is(err, core.ErrNotFound):
			g, err = svc.repo.CreateGrade(ctx, exec, Grade{
				StudentID: studentID,
				SubjectID: subjectID,
				Term:      rg.Term,
				Score:     rg.Score,
			})
			if err != nil {
				return err
			}
			svc.logger.Info("grade created", "id", g.ID,
				"enrollment", rg.Enrollment, "subject", rg.SubjectCode, "term", rg.Term, "score", rg.Score)
			return nil

		default:
			return err
		}
	})
}
