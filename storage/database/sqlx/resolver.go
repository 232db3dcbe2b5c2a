package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/grade"
	"github.com/trezcool/escola/core/student"
	"github.com/trezcool/escola/core/subject"
)

// keyResolver looks up internal ids by natural key.
type keyResolver struct{}

var _ grade.KeyResolver = (*keyResolver)(nil) // interface compliance check

func NewKeyResolver() *keyResolver {
	return &keyResolver{}
}

func (kr keyResolver) StudentID(ctx context.Context, exec core.DBExecutor, enrollment string) (int, error) {
	var id int
	err := sqlx.GetContext(ctx, exec, &id, exec.Rebind(`SELECT id FROM students WHERE enrollment_code = ?`), enrollment)
	if err != nil {
		return 0, trapErr(err, student.Entity, enrollment, "resolving student")
	}
	return id, nil
}

func (kr keyResolver) SubjectID(ctx context.Context, exec core.DBExecutor, code string) (int, error) {
	var id int
	err := sqlx.GetContext(ctx, exec, &id, exec.Rebind(`SELECT id FROM subjects WHERE subject_code = ?`), code)
	if err != nil {
		return 0, trapErr(err, subject.Entity, code, "resolving subject")
	}
	return id, nil
}
