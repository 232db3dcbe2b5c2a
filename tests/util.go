package testutil

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/student"
	"github.com/trezcool/escola/core/subject"
	"github.com/trezcool/escola/services/logger"
	"github.com/trezcool/escola/storage/database"
	"github.com/trezcool/escola/storage/database/sqlx"
)

// Logger discards everything.
var Logger core.Logger = logsvc.NewKitLogger(io.Discard, true)

// Config returns a configuration pointing at a fresh sqlite file inside dir.
func Config(dir string) *core.Config {
	conf := &core.Config{Env: "TEST", TestMode: true, AppName: "Escola"}
	conf.Database.Engine = core.EngineSQLite
	conf.Database.Path = filepath.Join(dir, "escola_test.db")
	conf.Report.PassThreshold = 7.0
	conf.Report.FailThreshold = 4.9
	return conf
}

// PrepareDB opens a migrated, empty sqlite database that is closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conf := Config(t.TempDir())
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db, conf.Database.Engine, nil); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateStudent(t *testing.T, db core.DB, name, enrollment string) student.Student {
	t.Helper()

	svc := student.NewService(db, sqlxrepos.NewStudentRepository(), Logger)
	st, err := svc.Create(context.Background(), student.NewStudent{
		Name:           name,
		EnrollmentCode: enrollment,
		GradeLevel:     "1º Ano E.M.",
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

func CreateSubject(t *testing.T, db core.DB, name, code string) subject.Subject {
	t.Helper()

	svc := subject.NewService(db, sqlxrepos.NewSubjectRepository(), Logger)
	sub, err := svc.Create(context.Background(), subject.NewSubject{Name: name, Code: code})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return sub
}

// InsertGrade writes a grade row directly, bypassing the ledger.
func InsertGrade(t *testing.T, db *sqlx.DB, studentID, subjectID, term int, score float64) {
	t.Helper()

	q := db.Rebind(`INSERT INTO grades (student_id, subject_id, term, score) VALUES (?, ?, ?, ?)`)
	if _, err := db.Exec(q, studentID, subjectID, term, score); err != nil {
		t.Fatalf("InsertGrade() failed: %v", err)
	}
}

// InsertGradeWithoutScore writes a grade row whose score is NULL.
func InsertGradeWithoutScore(t *testing.T, db *sqlx.DB, studentID, subjectID, term int) {
	t.Helper()

	q := db.Rebind(`INSERT INTO grades (student_id, subject_id, term, score) VALUES (?, ?, ?, NULL)`)
	if _, err := db.Exec(q, studentID, subjectID, term); err != nil {
		t.Fatalf("InsertGradeWithoutScore() failed: %v", err)
	}
}

// CountGrades counts grade rows, optionally restricted to a student id.
func CountGrades(t *testing.T, db *sqlx.DB, studentID ...int) int {
	t.Helper()

	q := `SELECT COUNT(*) FROM grades`
	var args []interface{}
	if len(studentID) > 0 {
		q += ` WHERE student_id = ?`
		args = append(args, studentID[0])
	}
	var cnt int
	if err := db.Get(&cnt, db.Rebind(q), args...); err != nil {
		t.Fatalf("CountGrades() failed: %v", err)
	}
	return cnt
}

// CountOrphanGrades counts grades whose student or subject no longer exists.
func CountOrphanGrades(t *testing.T, db *sqlx.DB) int {
	t.Helper()

	const q = `SELECT COUNT(*) FROM grades g
		LEFT JOIN students st ON st.id = g.student_id
		LEFT JOIN subjects su ON su.id = g.subject_id
		WHERE st.id IS NULL OR su.id IS NULL`
	var cnt int
	if err := db.Get(&cnt, q); err != nil {
		t.Fatalf("CountOrphanGrades() failed: %v", err)
	}
	return cnt
}
