package student

import (
	"context"

	"github.com/trezcool/escola/core"
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, exec core.DBExecutor, st Student) (Student, error)
		// QueryStudents lists every Student using the given ordering (by name when empty).
		QueryStudents(ctx context.Context, exec core.DBExecutor, ordering []core.DBOrdering) ([]Student, error)
		GetStudentByEnrollment(ctx context.Context, exec core.DBExecutor, enrollment string) (Student, error)
		// UpdateStudent writes the supplied fields only and returns the number of affected rows.
		UpdateStudent(ctx context.Context, exec core.DBExecutor, enrollment string, us UpdateStudent) (int, error)
		// DeleteStudentByEnrollment returns the number of deleted rows. Grades go with the Student.
		DeleteStudentByEnrollment(ctx context.Context, exec core.DBExecutor, enrollment string) (int, error)
	}

	Service struct {
		db     core.DB
		repo   Repository
		logger core.Logger
	}
)

func NewService(db core.DB, repo Repository, logger core.Logger) *Service {
	return &Service{db: db, repo: repo, logger: logger}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}

	var st Student
	err := core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		var err error
		st, err = svc.repo.CreateStudent(ctx, exec, Student{
			Name:           ns.Name,
			EnrollmentCode: ns.EnrollmentCode,
			BirthDate:      ns.BirthDate,
			GuardianPhone:  ns.GuardianPhone,
			GuardianName:   ns.GuardianName,
			GradeLevel:     ns.GradeLevel,
		})
		return err
	})
	if err != nil {
		return Student{}, err
	}
	svc.logger.Info("student created", "enrollment", st.EnrollmentCode, "id", st.ID)
	return st, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	var students []Student
	err := core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		var err error
		students, err = svc.repo.QueryStudents(ctx, exec, []core.DBOrdering{{Field: "name", Ascending: true}})
		return err
	})
	return students, err
}

func (svc *Service) GetByEnrollment(ctx context.Context, enrollment string) (Student, error) {
	var st Student
	err := core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		var err error
		st, err = svc.repo.GetStudentByEnrollment(ctx, exec, core.CleanString(enrollment))
		return err
	})
	return st, err
}

func (svc *Service) Update(ctx context.Context, enrollment string, us UpdateStudent) error {
	if err := us.Validate(); err != nil {
		return err
	}
	enrollment = core.CleanString(enrollment)

	return core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		cnt, err := svc.repo.UpdateStudent(ctx, exec, enrollment, us)
		if err != nil {
			return err
		}
		if cnt == 0 {
			return core.NewNotFoundError(Entity, enrollment)
		}
		svc.logger.Info("student updated", "enrollment", enrollment)
		return nil
	})
}

func (svc *Service) Delete(ctx context.Context, enrollment string) error {
	enrollment = core.CleanString(enrollment)

	return core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		cnt, err := svc.repo.DeleteStudentByEnrollment(ctx, exec, enrollment)
		if err != nil {
			return err
		}
		if cnt == 0 {
			return core.NewNotFoundError(Entity, enrollment)
		}
		svc.logger.Info("student deleted", "enrollment", enrollment)
		return nil
	})
}
