package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/subject"
)

const subjectTable = "subjects"

var (
	subjectColumns  = []string{"id", "name", "subject_code"}
	subjectOrdering = map[string]string{"name": "name", "code": "subject_code", "id": "id"}
)

type subjectRow struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
	Code string `db:"subject_code"`
}

func (row subjectRow) unwrap() subject.Subject {
	return subject.Subject{ID: row.ID, Name: row.Name, Code: row.Code}
}

type subjectRepository struct{}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository() *subjectRepository {
	return &subjectRepository{}
}

func (repo subjectRepository) CreateSubject(ctx context.Context, exec core.DBExecutor, sub subject.Subject) (subject.Subject, error) {
	query, args, err := sq.Insert(subjectTable).
		Columns("name", "subject_code").
		Values(sub.Name, sub.Code).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return subject.Subject{}, core.NewStoreError(err, "building subject insert")
	}

	if err = exec.QueryRowxContext(ctx, exec.Rebind(query), args...).Scan(&sub.ID); err != nil {
		return subject.Subject{}, trapErr(err, subject.Entity, sub.Code, "inserting subject")
	}
	return sub, nil
}

func (repo subjectRepository) QuerySubjects(ctx context.Context, exec core.DBExecutor, ordering []core.DBOrdering) ([]subject.Subject, error) {
	query, args, err := sq.Select(subjectColumns...).
		From(subjectTable).
		OrderBy(orderBy(ordering, subjectOrdering, "name ASC")...).
		ToSql()
	if err != nil {
		return nil, core.NewStoreError(err, "building subjects query")
	}

	var rows []subjectRow
	if err = sqlx.SelectContext(ctx, exec, &rows, exec.Rebind(query), args...); err != nil {
		return nil, core.NewStoreError(err, "querying subjects")
	}
	subjects := make([]subject.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, row.unwrap())
	}
	return subjects, nil
}

func (repo subjectRepository) GetSubjectByCode(ctx context.Context, exec core.DBExecutor, code string) (subject.Subject, error) {
	query, args, err := sq.Select(subjectColumns...).
		From(subjectTable).
		Where(sq.Eq{"subject_code": code}).
		ToSql()
	if err != nil {
		return subject.Subject{}, core.NewStoreError(err, "building subject query")
	}

	var row subjectRow
	if err = sqlx.GetContext(ctx, exec, &row, exec.Rebind(query), args...); err != nil {
		return subject.Subject{}, trapErr(err, subject.Entity, code, "finding subject")
	}
	return row.unwrap(), nil
}

func (repo subjectRepository) UpdateSubject(ctx context.Context, exec core.DBExecutor, code string, us subject.UpdateSubject) (int, error) {
	upd := sq.Update(subjectTable).Where(sq.Eq{"subject_code": code})
	if us.Name != nil {
		upd = upd.Set("name", *us.Name)
	}
	query, args, err := upd.ToSql()
	if err != nil {
		return 0, core.NewStoreError(err, "building subject update")
	}

	res, err := exec.ExecContext(ctx, exec.Rebind(query), args...)
	if err != nil {
		return 0, trapErr(err, subject.Entity, code, "updating subject")
	}
	return rowsAffected(res, "updating subject")
}

func (repo subjectRepository) DeleteSubjectByCode(ctx context.Context, exec core.DBExecutor, code string) (int, error) {
	query, args, err := sq.Delete(subjectTable).Where(sq.Eq{"subject_code": code}).ToSql()
	if err != nil {
		return 0, core.NewStoreError(err, "building subject delete")
	}

	res, err := exec.ExecContext(ctx, exec.Rebind(query), args...)
	if err != nil {
		return 0, trapErr(err, subject.Entity, code, "deleting subject")
	}
	return rowsAffected(res, "deleting subject")
}
