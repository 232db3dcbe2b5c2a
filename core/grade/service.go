package grade

import (
	"context"

	"github.com/trezcool/escola/core"
)

type (
	// KeyResolver translates natural keys into internal identifiers.
	// Missing keys yield a *core.NotFoundError naming the entity.
	KeyResolver interface {
		StudentID(ctx context.Context, exec core.DBExecutor, enrollment string) (int, error)
		SubjectID(ctx context.Context, exec core.DBExecutor, code string) (int, error)
	}

	Repository interface {
		// GetGrade finds the grade of a (student, subject, term) triple.
		GetGrade(ctx context.Context, exec core.DBExecutor, studentID, subjectID int, term Term) (Grade, error)
		CreateGrade(ctx context.Context, exec core.DBExecutor, g Grade) (Grade, error)
		UpdateGradeScore(ctx context.Context, exec core.DBExecutor, id int, score float64) error
		// QueryStudentEntries lists the grades of a student ordered by subject name, then term.
		QueryStudentEntries(ctx context.Context, exec core.DBExecutor, studentID int) ([]Entry, error)
	}

	Service struct {
		db     core.DB
		repo   Repository
		keys   KeyResolver
		logger core.Logger
	}
)

func NewService(db core.DB, repo Repository, keys KeyResolver, logger core.Logger) *Service {
	return &Service{db: db, repo: repo, keys: keys, logger: logger}
}
