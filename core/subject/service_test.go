package subject_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/escola/core"
	"github.com/trezcool/escola/core/subject"
	"github.com/trezcool/escola/storage/database/sqlx"
	"github.com/trezcool/escola/tests"
)

func newService(db core.DB) *subject.Service {
	return subject.NewService(db, sqlxrepos.NewSubjectRepository(), testutil.Logger)
}

func TestService_Create(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := newService(db)
	ctx := context.Background()

	testutil.CreateSubject(t, db, "Matemática", "MAT")

	tests := []struct {
		name     string
		ns       subject.NewSubject
		wantKind core.ErrorKind
	}{
		{name: "valid", ns: subject.NewSubject{Name: "Física", Code: "FIS"}},
		{name: "same name different code", ns: subject.NewSubject{Name: "Matemática", Code: "MAT2"}},
		{name: "duplicate code", ns: subject.NewSubject{Name: "Matemática Avançada", Code: "MAT"}, wantKind: core.KindDuplicateKey},
		{name: "missing name", ns: subject.NewSubject{Code: "GEO"}, wantKind: core.KindValidation},
		{name: "missing code", ns: subject.NewSubject{Name: "Geografia"}, wantKind: core.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := svc.Create(ctx, tt.ns)
			assert.Equal(t, tt.wantKind, core.KindOf(err), "Create() error = %v", err)
			if tt.wantKind == core.KindNone {
				got, err := svc.GetByCode(ctx, sub.Code)
				require.NoError(t, err)
				assert.Equal(t, sub, got)
			}
		})
	}
}

func TestService_QueryAll(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := newService(db)

	testutil.CreateSubject(t, db, "Química", "QUI")
	testutil.CreateSubject(t, db, "Biologia", "BIO")
	testutil.CreateSubject(t, db, "História", "HIS")

	subjects, err := svc.QueryAll(context.Background())
	require.NoError(t, err)
	var codes []string
	for _, sub := range subjects {
		codes = append(codes, sub.Code)
	}
	assert.Equal(t, []string{"BIO", "HIS", "QUI"}, codes)
}

func TestService_Update(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := newService(db)
	ctx := context.Background()

	testutil.CreateSubject(t, db, "Matematica", "MAT")

	name := "Matemática"
	blank := " "
	tests := []struct {
		name     string
		code     string
		us       subject.UpdateSubject
		wantKind core.ErrorKind
	}{
		{name: "rename", code: "MAT", us: subject.UpdateSubject{Name: &name}},
		{name: "nothing supplied", code: "MAT", wantKind: core.KindValidation},
		{name: "blank name", code: "MAT", us: subject.UpdateSubject{Name: &blank}, wantKind: core.KindValidation},
		{name: "unknown code", code: "XYZ", us: subject.UpdateSubject{Name: &name}, wantKind: core.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Update(ctx, tt.code, tt.us)
			assert.Equal(t, tt.wantKind, core.KindOf(err), "Update() error = %v", err)
		})
	}

	got, err := svc.GetByCode(ctx, "MAT")
	require.NoError(t, err)
	assert.Equal(t, "Matemática", got.Name)
}

func TestService_Delete(t *testing.T) {
	db := testutil.PrepareDB(t)
	svc := newService(db)
	ctx := context.Background()

	ana := testutil.CreateStudent(t, db, "Ana Souza", "2024001")
	mat := testutil.CreateSubject(t, db, "Matemática", "MAT")
	fis := testutil.CreateSubject(t, db, "Física", "FIS")
	testutil.InsertGrade(t, db, ana.ID, mat.ID, 1, 8)
	testutil.InsertGrade(t, db, ana.ID, fis.ID, 1, 6)

	require.NoError(t, svc.Delete(ctx, "MAT"))
	assert.Equal(t, 1, testutil.CountGrades(t, db, ana.ID))
	assert.Zero(t, testutil.CountOrphanGrades(t, db))

	_, err := svc.GetByCode(ctx, "MAT")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, core.KindNotFound, core.KindOf(svc.Delete(ctx, "MAT")))
}

func TestUpdateSubject_Validate(t *testing.T) {
	name, empty, spaces := "Física", "", "   "
	tests := []struct {
		name    string
		us      subject.UpdateSubject
		wantErr bool
	}{
		{name: "name supplied", us: subject.UpdateSubject{Name: &name}},
		{name: "empty name", us: subject.UpdateSubject{Name: &empty}, wantErr: true},
		{name: "whitespace name", us: subject.UpdateSubject{Name: &spaces}, wantErr: true},
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
