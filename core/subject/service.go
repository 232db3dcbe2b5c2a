package subject

import (
	"context"

	"github.com/trezcool/escola/core"
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, exec core.DBExecutor, sub Subject) (Subject, error)
		QuerySubjects(ctx context.Context, exec core.DBExecutor, ordering []core.DBOrdering) ([]Subject, error)
		GetSubjectByCode(ctx context.Context, exec core.DBExecutor, code string) (Subject, error)
		UpdateSubject(ctx context.Context, exec core.DBExecutor, code string, us UpdateSubject) (int, error)
		DeleteSubjectByCode(ctx context.Context, exec core.DBExecutor, code string) (int, error)
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

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	if err := ns.Validate(); err != nil {
		return Subject{}, err
	}

	var sub Subject
	err := core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		var err error
		sub, err = svc.repo.CreateSubject(ctx, exec, Subject{Name: ns.Name, Code: ns.Code})
		return err
	})
	if err != nil {
		return Subject{}, err
	}
	svc.logger.Info("subject created", "code", sub.Code, "id", sub.ID)
	return sub, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	err := core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		var err error
		subjects, err = svc.repo.QuerySubjects(ctx, exec, []core.DBOrdering{{Field: "name", Ascending: true}})
		return err
	})
	return subjects, err
}

func (svc *Service) GetByCode(ctx context.Context, code string) (Subject, error) {
	var sub Subject
	err := core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		var err error
		sub, err = svc.repo.GetSubjectByCode(ctx, exec, core.CleanString(code))
		return err
	})
	return sub, err
}

func (svc *Service) Update(ctx context.Context, code string, us UpdateSubject) error {
	if err := us.Validate(); err != nil {
		return err
	}
	code = core.CleanString(code)

	return core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		cnt, err := svc.repo.UpdateSubject(ctx, exec, code, us)
		if err != nil {
			return err
		}
		if cnt == 0 {
			return core.NewNotFoundError(Entity, code)
		}
		svc.logger.Info("subject updated", "code", code)
		return nil
	})
}

// Delete removes the Subject and, through the store, every grade recorded for it.
func (svc *Service) Delete(ctx context.Context, code string) error {
	code = core.CleanString(code)

	return core.WithConn(ctx, svc.db, func(exec core.DBExecutor) error {
		cnt, err := svc.repo.DeleteSubjectByCode(ctx, exec, code)
		if err != nil {
			return err
		}
		if cnt == 0 {
			return core.NewNotFoundError(Entity, code)
		}
		svc.logger.Info("subject deleted", "code", code)
		return nil
	})
}
