package sqlxrepos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/grade"
)

type gradeRow struct {
	ID        int          `db:"id"`
	StudentID int          `db:"student_id"`
	SubjectID int          `db:"subject_id"`
	Term      int          `db:"term"`
	Score     null.Float64 `db:"score"`
}

type gradeRepository struct{}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository() *gradeRepository {
	return &gradeRepository{}
}

func gradeKey(studentID, subjectID int, term grade.Term) string {
	return fmt.Sprintf("%d/%d/%d", studentID, subjectID, term)
}

func (repo gradeRepository) GetGrade(ctx context.Context, exec core.DBExecutor, studentID, subjectID int, term grade.Term) (grade.Grade, error) {
	const q = `SELECT id, student_id, subject_id, term, score FROM grades
		WHERE student_id = ? AND subject_id = ? AND term = ?
		ORDER BY id LIMIT 1`

	var row gradeRow
	if err := sqlx.GetContext(ctx, exec, &row, exec.Rebind(q), studentID, subjectID, int(term)); err != nil {
		return grade.Grade{}, trapErr(err, grade.Entity, gradeKey(studentID, subjectID, term), "finding grade")
	}
	return grade.Grade{
		ID:        row.ID,
		StudentID: row.StudentID,
		SubjectID: row.SubjectID,
		Term:      grade.Term(row.Term),
		Score:     row.Score.Float64, // a row stored without a score reads as 0 and gets overwritten
	}, nil
}

func (repo gradeRepository) CreateGrade(ctx context.Context, exec core.DBExecutor, g grade.Grade) (grade.Grade, error) {
	const q = `INSERT INTO grades (student_id, subject_id, term, score) VALUES (?, ?, ?, ?) RETURNING id`

	err := exec.QueryRowxContext(ctx, exec.Rebind(q), g.StudentID, g.SubjectID, int(g.Term), g.Score).Scan(&g.ID)
	if err != nil {
		return grade.Grade{}, trapErr(err, grade.Entity, gradeKey(g.StudentID, g.SubjectID, g.Term), "inserting grade")
	}
	return g, nil
}

func (repo gradeRepository) UpdateGradeScore(ctx context.Context, exec core.DBExecutor, id int, score float64) error {
	const q = `UPDATE grades SET score = ? WHERE id = ?`

	res, err := exec.ExecContext(ctx, exec.Rebind(q), score, id)
	if err != nil {
		return core.NewStoreError(err, "updating grade")
	}
	cnt, err := rowsAffected(res, "updating grade")
	if err != nil {
		return err
	}
	if cnt == 0 {
		return core.NewNotFoundError(grade.Entity, fmt.Sprint(id))
	}
	return nil
}

func (repo gradeRepository) QueryStudentEntries(ctx context.Context, exec core.DBExecutor, studentID int) ([]grade.Entry, error) {
	const q = `SELECT s.name AS subject_name, g.term, g.score
		FROM grades g
		JOIN subjects s ON s.id = g.subject_id
		WHERE g.student_id = ?
		ORDER BY s.name, g.term`

	entries := make([]grade.Entry, 0)
	if err := sqlx.SelectContext(ctx, exec, &entries, exec.Rebind(q), studentID); err != nil {
		return nil, core.NewStoreError(err, "querying student grades")
	}
	return entries, nil
}
