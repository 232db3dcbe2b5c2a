package student_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/student"
	"github.com/trezcool/escola/storage/database/sqlx"
	"github.com/trezcool/escola/tests"
)

func strPtr(s string) *string { return &s }

func newService(db core.DB) *student.Service {
	return student.NewService(db, sqlxrepos.NewStudentRepository(), testutil.Logger)
}

func TestService_Create(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := newService(db)
	ctx := context.Background()

	testutil.CreateStudent(t, db, "Ana Souza", "2024001")

	tests := []struct {
		name     string
		ns       student.NewStudent
		wantKind core.ErrorKind
	}{
		{
			name: "all fields",
			ns: student.NewStudent{
				Name:           " Bruno Lima ",
				EnrollmentCode: "2024002",
				BirthDate:      "12/03/2010",
				GuardianPhone:  "(11) 99999-0000",
				GuardianName:   "Marta Lima",
				GradeLevel:     "2º Ano E.M.",
			},
		},
		{name: "required fields only", ns: student.NewStudent{Name: "Carla Dias", EnrollmentCode: "2024003"}},
		{name: "duplicate enrollment", ns: student.NewStudent{Name: "Outra Ana", EnrollmentCode: "2024001"}, wantKind: core.KindDuplicateKey},
		{name: "duplicate enrollment after trim", ns: student.NewStudent{Name: "Outra Ana", EnrollmentCode: " 2024001"}, wantKind: core.KindDuplicateKey},
		{name: "blank name", ns: student.NewStudent{Name: "   ", EnrollmentCode: "2024009"}, wantKind: core.KindValidation},
		{name: "missing enrollment", ns: student.NewStudent{Name: "Davi Rocha"}, wantKind: core.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := svc.Create(ctx, tt.ns)
			assert.Equal(t, tt.wantKind, core.KindOf(err), "Create() error = %v", err)
			if tt.wantKind == core.KindNone {
				assert.NotZero(t, st.ID)
				got, err := svc.GetByEnrollment(ctx, st.EnrollmentCode)
				require.NoError(t, err)
				assert.Equal(t, st, got)
			}
		})
	}

	got, err := svc.GetByEnrollment(ctx, "2024002")
	require.NoError(t, err)
	assert.Equal(t, "Bruno Lima", got.Name)
	assert.Equal(t, "Marta Lima", got.GuardianName)
}

func TestService_QueryAll(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := newService(db)
	ctx := context.Background()

	students, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	testutil.CreateStudent(t, db, "Carla Dias", "3")
	testutil.CreateStudent(t, db, "Ana Souza", "1")
	testutil.CreateStudent(t, db, "Bruno Lima", "2")

	students, err = svc.QueryAll(ctx)
	require.NoError(t, err)
	var names []string
	for _, st := range students {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"Ana Souza", "Bruno Lima", "Carla Dias"}, names)
}

func TestService_Update(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := newService(db)
	ctx := context.Background()

	orig := testutil.CreateStudent(t, db, "Ana Souza", "2024001")

	tests := []struct {
		name       string
		enrollment string
		us         student.UpdateStudent
		want       student.Student
		wantKind   core.ErrorKind
	}{
		{
			name:       "name only",
			enrollment: "2024001",
			us:         student.UpdateStudent{Name: strPtr(" Ana Souza Lima ")},
			want:       student.Student{ID: orig.ID, Name: "Ana Souza Lima", EnrollmentCode: "2024001", GradeLevel: orig.GradeLevel},
		},
		{
			name:       "grade level only",
			enrollment: "2024001",
			us:         student.UpdateStudent{GradeLevel: strPtr("3º Ano E.M.")},
			want:       student.Student{ID: orig.ID, Name: "Ana Souza Lima", EnrollmentCode: "2024001", GradeLevel: "3º Ano E.M."},
		},
		{
			name:       "clear grade level",
			enrollment: "2024001",
			us:         student.UpdateStudent{GradeLevel: strPtr("")},
			want:       student.Student{ID: orig.ID, Name: "Ana Souza Lima", EnrollmentCode: "2024001"},
		},
		{
			name:       "nothing supplied",
			enrollment: "2024001",
			wantKind:   core.KindValidation,
		},
		{
			name:       "blank name",
			enrollment: "2024001",
			us:         student.UpdateStudent{Name: strPtr("  ")},
			wantKind:   core.KindValidation,
		},
		{
			name:       "unknown enrollment",
			enrollment: "9999999",
			us:         student.UpdateStudent{Name: strPtr("Ninguém")},
			wantKind:   core.KindNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Update(ctx, tt.enrollment, tt.us)
			assert.Equal(t, tt.wantKind, core.KindOf(err), "Update() error = %v", err)
			if tt.wantKind == core.KindNone {
				got, err := svc.GetByEnrollment(ctx, tt.enrollment)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}

	// rejected updates leave the row alone
	got, err := svc.GetByEnrollment(ctx, "2024001")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza Lima", got.Name)
}

func TestUpdateStudent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		us      student.UpdateStudent
		wantErr bool
	}{
		{name: "name supplied", us: student.UpdateStudent{Name: strPtr("Ana")}},
		{name: "grade level only", us: student.UpdateStudent{GradeLevel: strPtr("1º Ano")}},
		{name: "blank grade level clears it", us: student.UpdateStudent{GradeLevel: strPtr(" ")}},
		{name: "empty name", us: student.UpdateStudent{Name: strPtr("")}, wantErr: true},
		{name: "whitespace name", us: student.UpdateStudent{Name: strPtr(" \t ")}, wantErr: true},
		{name: "nothing supplied", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.us.Validate()
			if tt.wantErr {
				assert.Equal(t, core.KindValidation, core.KindOf(err), "Validate() error = %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := newService(db)
	ctx := context.Background()

	ana := testutil.CreateStudent(t, db, "Ana Souza", "2024001")
	bruno := testutil.CreateStudent(t, db, "Bruno Lima", "2024002")
	mat := testutil.CreateSubject(t, db, "Matemática", "MAT")
	testutil.InsertGrade(t, db, ana.ID, mat.ID, 1, 8)
	testutil.InsertGrade(t, db, ana.ID, mat.ID, 2, 9)
	testutil.InsertGrade(t, db, bruno.ID, mat.ID, 1, 5)

	require.NoError(t, svc.Delete(ctx, "2024001"))

	_, err := svc.GetByEnrollment(ctx, "2024001")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Zero(t, testutil.CountGrades(t, db, ana.ID))
	assert.Equal(t, 1, testutil.CountGrades(t, db, bruno.ID))
	assert.Zero(t, testutil.CountOrphanGrades(t, db))

	err = svc.Delete(ctx, "2024001")
	assert.Equal(t, core.KindNotFound, core.KindOf(err))
}
