package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/student"
)

const studentTable = "students"

var (
	studentColumns  = []string{"id", "name", "enrollment_code", "birth_date", "guardian_phone", "guardian_name", "grade_level"}
	studentOrdering = map[string]string{"name": "name", "enrollment": "enrollment_code", "id": "id"}
)

type studentRow struct {
	ID             int         `db:"id"`
	Name           string      `db:"name"`
	EnrollmentCode string      `db:"enrollment_code"`
	BirthDate      null.String `db:"birth_date"`
	GuardianPhone  null.String `db:"guardian_phone"`
	GuardianName   null.String `db:"guardian_name"`
	GradeLevel     null.String `db:"grade_level"`
}

type studentRepository struct{}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository() *studentRepository {
	return &studentRepository{}
}

func (repo studentRepository) toRow(st student.Student) studentRow {
	return studentRow{
		ID:             st.ID,
		Name:           st.Name,
		EnrollmentCode: st.EnrollmentCode,
		BirthDate:      null.NewString(st.BirthDate, st.BirthDate != ""),
		GuardianPhone:  null.NewString(st.GuardianPhone, st.GuardianPhone != ""),
		GuardianName:   null.NewString(st.GuardianName, st.GuardianName != ""),
		GradeLevel:     null.NewString(st.GradeLevel, st.GradeLevel != ""),
	}
}

func (repo studentRepository) fromRow(row studentRow) student.Student {
	return student.Student{
		ID:             row.ID,
		Name:           row.Name,
		EnrollmentCode: row.EnrollmentCode,
		BirthDate:      row.BirthDate.String,
		GuardianPhone:  row.GuardianPhone.String,
		GuardianName:   row.GuardianName.String,
		GradeLevel:     row.GradeLevel.String,
	}
}

func (repo studentRepository) CreateStudent(ctx context.Context, exec core.DBExecutor, st student.Student) (student.Student, error) {
	row := repo.toRow(st)
	query, args, err := sq.Insert(studentTable).
		Columns("name", "enrollment_code", "birth_date", "guardian_phone", "guardian_name", "grade_level").
		Values(row.Name, row.EnrollmentCode, row.BirthDate, row.GuardianPhone, row.GuardianName, row.GradeLevel).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return student.Student{}, core.NewStoreError(err, "building student insert")
	}

	if err = exec.QueryRowxContext(ctx, exec.Rebind(query), args...).Scan(&row.ID); err != nil {
		return student.Student{}, trapErr(err, student.Entity, st.EnrollmentCode, "inserting student")
	}
	return repo.fromRow(row), nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, exec core.DBExecutor, ordering []core.DBOrdering) ([]student.Student, error) {
	query, args, err := sq.Select(studentColumns...).
		From(studentTable).
		OrderBy(orderBy(ordering, studentOrdering, "name ASC")...).
		ToSql()
	if err != nil {
		return nil, core.NewStoreError(err, "building students query")
	}

	var rows []studentRow
	if err = sqlx.SelectContext(ctx, exec, &rows, exec.Rebind(query), args...); err != nil {
		return nil, core.NewStoreError(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, repo.fromRow(row))
	}
	return students, nil
}

func (repo studentRepository) GetStudentByEnrollment(ctx context.Context, exec core.DBExecutor, enrollment string) (student.Student, error) {
	query, args, err := sq.Select(studentColumns...).
		From(studentTable).
		Where(sq.Eq{"enrollment_code": enrollment}).
		ToSql()
	if err != nil {
		return student.Student{}, core.NewStoreError(err, "building student query")
	}

	var row studentRow
	if err = sqlx.GetContext(ctx, exec, &row, exec.Rebind(query), args...); err != nil {
		return student.Student{}, trapErr(err, student.Entity, enrollment, "finding student")
	}
	return repo.fromRow(row), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, exec core.DBExecutor, enrollment string, us student.UpdateStudent) (int, error) {
	// only save set fields
	upd := sq.Update(studentTable).Where(sq.Eq{"enrollment_code": enrollment})
	if us.Name != nil {
		upd = upd.Set("name", *us.Name)
	}
	if us.GradeLevel != nil {
		upd = upd.Set("grade_level", null.NewString(*us.GradeLevel, *us.GradeLevel != ""))
	}
	query, args, err := upd.ToSql()
	if err != nil {
		return 0, core.NewStoreError(err, "building student update")
	}

	res, err := exec.ExecContext(ctx, exec.Rebind(query), args...)
	if err != nil {
		return 0, trapErr(err, student.Entity, enrollment, "updating student")
	}
	return rowsAffected(res, "updating student")
}

func (repo studentRepository) DeleteStudentByEnrollment(ctx context.Context, exec core.DBExecutor, enrollment string) (int, error) {
	query, args, err := sq.Delete(studentTable).Where(sq.Eq{"enrollment_code": enrollment}).ToSql()
	if err != nil {
		return 0, core.NewStoreError(err, "building student delete")
	}

	res, err := exec.ExecContext(ctx, exec.Rebind(query), args...)
	if err != nil {
		return 0, trapErr(err, student.Entity, enrollment, "deleting student")
	}
	return rowsAffected(res, "deleting student")
}
