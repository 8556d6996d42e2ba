package seed

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/identity"
	"github.com/org-structure-manager/internal/repository"
	"github.com/org-structure-manager/internal/service"
	"github.com/org-structure-manager/internal/store"
)

func newServices(t *testing.T) (Services, *store.Store) {
	t.Helper()
	s, err := store.New(context.Background(), repository.NewMemoryStateRepository(), slog.New(slog.DiscardHandler),
		store.WithIDGenerator(identity.Sequence("seed")),
		store.WithRand(rand.New(rand.NewPCG(5, 6))),
		store.WithBcryptCost(bcrypt.MinCost),
	)
	require.NoError(t, err)

	return Services{
		Departments: service.NewDepartmentService(s),
		Employees:   service.NewEmployeeService(s),
		Requests:    service.NewRequestService(s),
		Auth:        service.NewAuthService(s),
	}, s
}

func TestRun_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc, s := newServices(t)

	require.NoError(t, Run(ctx, svc, "secret1", slog.New(slog.DiscardHandler)))

	tree := svc.Departments.Tree(ctx)
	require.Len(t, tree, len(organization))
	assert.Len(t, svc.Departments.Flat(ctx), 18)

	employees := svc.Employees.List(ctx, nil)
	assert.Len(t, employees, 27)
	for _, emp := range employees {
		require.NotNil(t, emp.DepartmentID)
		dept, err := svc.Departments.GetByID(ctx, *emp.DepartmentID)
		require.NoError(t, err)
		assert.Equal(t, domain.MaxDepth, dept.Level, "employees live in groups")
	}

	requests := svc.Requests.List(ctx, nil)
	require.Len(t, requests, len(sampleRequests))
	assert.Equal(t, domain.RequestTypeIT, requests[0].Type)
	assert.Equal(t, domain.RequestTypeHR, requests[1].Type)
	assert.Equal(t, domain.RequestTypeLogistics, requests[2].Type)

	_, loggedIn := s.CurrentUser()
	assert.False(t, loggedIn)

	admin, err := svc.Auth.Login(ctx, &dto.LoginRequest{Username: AdminUsername, Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, admin.ID, requests[0].CreatedByID)
}

func TestRun_SkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	_, err := svc.Departments.Create(ctx, &dto.CreateDepartmentRequest{Name: "Существующий"})
	require.NoError(t, err)

	require.NoError(t, Run(ctx, svc, "secret1", slog.New(slog.DiscardHandler)))

	assert.Len(t, svc.Departments.Flat(ctx), 1)
	assert.Empty(t, svc.Employees.List(ctx, nil))

	_, err = svc.Auth.Login(ctx, &dto.LoginRequest{Username: AdminUsername, Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRun_Twice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)
	logger := slog.New(slog.DiscardHandler)

	require.NoError(t, Run(ctx, svc, "secret1", logger))
	require.NoError(t, Run(ctx, svc, "secret1", logger))

	assert.Len(t, svc.Departments.Flat(ctx), 18)
}
