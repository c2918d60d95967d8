package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/reconcile"
)

// DirectorySource lists the hotel backend's admins and roles.
type DirectorySource interface {
	ListAdmins(ctx context.Context) ([]domain.Record, error)
	ListRoles(ctx context.Context) ([]domain.Record, error)
}

// AccessService resolves the admin behind a request and checks their
// permissions.
type AccessService struct {
	dir DirectorySource
}

// NewAccessService constructs an AccessService.
func NewAccessService(dir DirectorySource) *AccessService {
	return &AccessService{dir: dir}
}

// CurrentUser resolves the session in ctx to an admin with a role and a
// permission matrix. A missing session or an admin the hotel backend does
// not know is ErrForbidden.
func (s *AccessService) CurrentUser(ctx context.Context) (domain.User, error) {
	sess := domain.SessionFromContext(ctx)
	if sess.AdminID == "" && sess.Username == "" {
		return domain.User{}, fmt.Errorf("service.AccessService.CurrentUser: %w: no admin session", domain.ErrForbidden)
	}

	var admins, roles []domain.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		admins, err = s.dir.ListAdmins(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = s.dir.ListRoles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.User{}, fmt.Errorf("service.AccessService.CurrentUser: %w", err)
	}

	u, ok := reconcile.ResolveUser(admins, roles, sess)
	if !ok {
		return domain.User{}, fmt.Errorf("service.AccessService.CurrentUser: %w: unknown admin", domain.ErrForbidden)
	}
	return u, nil
}

// Require returns ErrForbidden unless the current admin may perform action
// on module.
func (s *AccessService) Require(ctx context.Context, module, action string) error {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if !u.Permissions.Can(module, action) {
		return fmt.Errorf("service.AccessService.Require: %w: %s may not %s %s", domain.ErrForbidden, u.Role, action, module)
	}
	return nil
}
