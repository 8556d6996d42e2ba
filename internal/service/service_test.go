package service_test

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/identity"
	"github.com/org-structure-manager/internal/nlp"
	"github.com/org-structure-manager/internal/repository"
	"github.com/org-structure-manager/internal/service"
	"github.com/org-structure-manager/internal/store"
)

type services struct {
	store           *store.Store
	departments     service.DepartmentService
	employees       service.EmployeeService
	requests        service.RequestService
	recommendations service.RecommendationService
	auth            service.AuthService
}

func newServices(t *testing.T) *services {
	t.Helper()

	s, err := store.New(context.Background(),
		repository.NewMemoryStateRepository(),
		slog.New(slog.DiscardHandler),
		store.WithIDGenerator(identity.Sequence("id")),
		store.WithRand(rand.New(rand.NewPCG(7, 7))),
		store.WithBcryptCost(bcrypt.MinCost),
	)
	require.NoError(t, err)

	return &services{
		store:           s,
		departments:     service.NewDepartmentService(s),
		employees:       service.NewEmployeeService(s),
		requests:        service.NewRequestService(s),
		recommendations: service.NewRecommendationService(s, nlp.NewGenerator(rand.New(rand.NewPCG(1, 1)))),
		auth:            service.NewAuthService(s),
	}
}

func ptr[T any](v T) *T { return &v }

func (s *services) mustDepartment(t *testing.T, name string, parentID *string) *domain.Department {
	t.Helper()
	dept, err := s.departments.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:     name,
		ParentID: parentID,
	})
	require.NoError(t, err)
	return dept
}

func (s *services) mustEmployee(t *testing.T, name string, rating int, deptID *string) *domain.Employee {
	t.Helper()
	emp, err := s.employees.Create(context.Background(), &dto.CreateEmployeeRequest{
		Name:         name,
		Surname:      "Тестов",
		Position:     "Инженер",
		Email:        strings.ToLower(name) + "@example.com",
		Rating:       &rating,
		DepartmentID: deptID,
	})
	require.NoError(t, err)
	return emp
}

func TestDepartmentService_CreateDerivesLevel(t *testing.T) {
	s := newServices(t)

	svc := s.mustDepartment(t, "  Служба  ", nil)
	dep := s.mustDepartment(t, "Отдел", &svc.ID)
	grp := s.mustDepartment(t, "Группа", &dep.ID)

	assert.Equal(t, "Служба", svc.Name)
	assert.Equal(t, domain.LevelService, svc.Level)
	assert.Equal(t, domain.LevelDepartment, dep.Level)
	assert.Equal(t, domain.LevelGroup, grp.Level)

	_, err := s.departments.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:     "Слишком глубоко",
		ParentID: &grp.ID,
	})
	assert.ErrorIs(t, err, domain.ErrMaxDepthExceeded)
	assert.Len(t, s.departments.Flat(context.Background()), 3)

	_, err = s.departments.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:     "Сирота",
		ParentID: ptr("missing"),
	})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentService_UpdateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "Служба", nil)

	updated, err := s.departments.Update(ctx, dept.ID, &dto.UpdateDepartmentRequest{
		Description: ptr(" Главная служба "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Служба", updated.Name)
	assert.Equal(t, "Главная служба", updated.Description)

	_, err = s.departments.Update(ctx, "missing", &dto.UpdateDepartmentRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

	_, err = s.departments.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentService_DeleteRequiresEmpty(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	svc := s.mustDepartment(t, "Служба", nil)
	dep := s.mustDepartment(t, "Отдел", &svc.ID)
	emp := s.mustEmployee(t, "Ivan", 3, &dep.ID)

	assert.ErrorIs(t, s.departments.Delete(ctx, svc.ID), domain.ErrDepartmentNotEmpty)
	assert.ErrorIs(t, s.departments.Delete(ctx, dep.ID), domain.ErrDepartmentNotEmpty)

	_, err := s.employees.Move(ctx, emp.ID, &dto.MoveEmployeeRequest{})
	require.NoError(t, err)

	require.NoError(t, s.departments.Delete(ctx, dep.ID))
	require.NoError(t, s.departments.Delete(ctx, svc.ID))
	assert.Empty(t, s.departments.Tree(ctx))

	assert.ErrorIs(t, s.departments.Delete(ctx, svc.ID), domain.ErrDepartmentNotFound)
}

func TestDepartmentService_Move(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	a := s.mustDepartment(t, "A", nil)
	b := s.mustDepartment(t, "B", nil)
	a1 := s.mustDepartment(t, "A1", &a.ID)
	a11 := s.mustDepartment(t, "A11", &a1.ID)
	b1 := s.mustDepartment(t, "B1", &b.ID)

	_, err := s.departments.Move(ctx, a.ID, &dto.MoveDepartmentRequest{ParentID: &a.ID})
	assert.ErrorIs(t, err, domain.ErrSelfReference)

	_, err = s.departments.Move(ctx, a.ID, &dto.MoveDepartmentRequest{ParentID: &a11.ID})
	assert.ErrorIs(t, err, domain.ErrCyclicReference)

	_, err = s.departments.Move(ctx, a.ID, &dto.MoveDepartmentRequest{ParentID: ptr("missing")})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

	// A1 с потомком A11 занимает два уровня и не помещается под B1
	_, err = s.departments.Move(ctx, a1.ID, &dto.MoveDepartmentRequest{ParentID: &b1.ID})
	assert.ErrorIs(t, err, domain.ErrMaxDepthExceeded)

	moved, err := s.departments.Move(ctx, a1.ID, &dto.MoveDepartmentRequest{ParentID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.LevelDepartment, moved.Level)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, b.ID, *moved.ParentID)

	root, err := s.departments.Move(ctx, a1.ID, &dto.MoveDepartmentRequest{})
	require.NoError(t, err)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, domain.LevelService, root.Level)
	require.Len(t, root.ChildDepartments, 1)
	assert.Equal(t, domain.LevelDepartment, root.ChildDepartments[0].Level)

	_, err = s.departments.Move(ctx, "missing", &dto.MoveDepartmentRequest{})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentService_TopEmployees(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	dept := s.mustDepartment(t, "Служба", nil)
	low := s.mustEmployee(t, "Low", 2, &dept.ID)
	first := s.mustEmployee(t, "First", 5, &dept.ID)
	second := s.mustEmployee(t, "Second", 5, &dept.ID)

	top, err := s.departments.TopEmployees(ctx, dept.ID, 5)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{first.ID, second.ID, low.ID}, []string{top[0].ID, top[1].ID, top[2].ID})

	_, err = s.departments.TopEmployees(ctx, "missing", 5)
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentService_ConcurrentCreateAndMoveKeepDepth(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		s := newServices(t)
		a := s.mustDepartment(t, "A", nil)
		b := s.mustDepartment(t, "B", &a.ID)
		r := s.mustDepartment(t, "R", nil)
		r2 := s.mustDepartment(t, "R2", &r.ID)

		var (
			wg                 sync.WaitGroup
			createErr, moveErr error
		)
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, createErr = s.departments.Create(ctx, &dto.CreateDepartmentRequest{Name: "X", ParentID: &b.ID})
		}()
		go func() {
			defer wg.Done()
			<-start
			_, moveErr = s.departments.Move(ctx, b.ID, &dto.MoveDepartmentRequest{ParentID: &r2.ID})
		}()
		close(start)
		wg.Wait()

		// одна операция проходит, вторая отклоняется по глубине
		if createErr == nil {
			require.ErrorIs(t, moveErr, domain.ErrMaxDepthExceeded, "iteration %d", i)
		} else {
			require.ErrorIs(t, createErr, domain.ErrMaxDepthExceeded, "iteration %d", i)
			require.NoError(t, moveErr, "iteration %d", i)
		}

		levels := make(map[string]int)
		for _, dept := range s.departments.Flat(ctx) {
			levels[dept.ID] = dept.Level
			require.LessOrEqual(t, dept.Level, domain.MaxDepth, "iteration %d: %s", i, dept.Name)
		}
		for _, dept := range s.departments.Flat(ctx) {
			if dept.ParentID != nil {
				require.Equal(t, levels[*dept.ParentID]+1, dept.Level, "iteration %d: %s", i, dept.Name)
			}
		}
	}
}

func TestEmployeeService_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "Служба", nil)

	_, err := s.employees.Create(ctx, &dto.CreateEmployeeRequest{
		Name: "Ivan", Surname: "Petrov", Position: "Dev", Email: "ivan@example.com",
		DepartmentID: ptr("missing"),
	})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

	emp, err := s.employees.Create(ctx, &dto.CreateEmployeeRequest{
		Name: " Ivan ", Surname: "Petrov", Position: "Dev", Email: "ivan@example.com",
		Skills: []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", emp.FullName)
	assert.Nil(t, emp.DepartmentID)
	assert.GreaterOrEqual(t, emp.Rating, 1)
	assert.LessOrEqual(t, emp.Rating, 5)

	updated, err := s.employees.Update(ctx, emp.ID, &dto.UpdateEmployeeRequest{
		Surname:      ptr("Sidorov"),
		DepartmentID: &dept.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ivan Sidorov", updated.FullName)
	require.NotNil(t, updated.DepartmentID)
	assert.Equal(t, dept.ID, *updated.DepartmentID)

	got, err := s.departments.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	require.Len(t, got.Employees, 1)
	assert.Equal(t, "Ivan Sidorov", got.Employees[0].FullName)

	_, err = s.employees.Update(ctx, emp.ID, &dto.UpdateEmployeeRequest{DepartmentID: ptr("missing")})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

	unassigned, err := s.employees.Update(ctx, emp.ID, &dto.UpdateEmployeeRequest{DepartmentID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, unassigned.DepartmentID)

	require.NoError(t, s.employees.Delete(ctx, emp.ID))
	assert.ErrorIs(t, s.employees.Delete(ctx, emp.ID), domain.ErrEmployeeNotFound)
	_, err = s.employees.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestEmployeeService_MoveAndUpdateAgreeOnEmptyDepartment(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "Служба", nil)
	emp := s.mustEmployee(t, "Ivan", 3, &dept.ID)

	moved, err := s.employees.Move(ctx, emp.ID, &dto.MoveEmployeeRequest{DepartmentID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, moved.DepartmentID)

	_, err = s.employees.Move(ctx, emp.ID, &dto.MoveEmployeeRequest{DepartmentID: &dept.ID})
	require.NoError(t, err)
	updated, err := s.employees.Update(ctx, emp.ID, &dto.UpdateEmployeeRequest{DepartmentID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.DepartmentID)

	got, err := s.departments.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Employees)

	_, err = s.employees.Move(ctx, emp.ID, &dto.MoveEmployeeRequest{DepartmentID: ptr("missing")})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestEmployeeService_UpdateSameDepartmentKeepsRanking(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "Служба", nil)
	first := s.mustEmployee(t, "First", 5, &dept.ID)
	second := s.mustEmployee(t, "Second", 5, &dept.ID)

	// форма редактирования присылает запись целиком, включая department_id
	_, err := s.employees.Update(ctx, first.ID, &dto.UpdateEmployeeRequest{
		Position:     ptr("Lead"),
		DepartmentID: &dept.ID,
	})
	require.NoError(t, err)

	top, err := s.departments.TopEmployees(ctx, dept.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, []string{top[0].ID, top[1].ID})
}

func TestEmployeeService_List(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "Служба", nil)

	inDept := s.mustEmployee(t, "Anna", 3, &dept.ID)
	free := s.mustEmployee(t, "Boris", 4, nil)

	assert.Len(t, s.employees.List(ctx, nil), 2)

	byDept := s.employees.List(ctx, &dto.EmployeeListQuery{DepartmentID: dept.ID})
	require.Len(t, byDept, 1)
	assert.Equal(t, inDept.ID, byDept[0].ID)

	unassigned := s.employees.List(ctx, &dto.EmployeeListQuery{Unassigned: true})
	require.Len(t, unassigned, 1)
	assert.Equal(t, free.ID, unassigned[0].ID)

	search := s.employees.List(ctx, &dto.EmployeeListQuery{Query: "BORIS"})
	require.Len(t, search, 1)
	assert.Equal(t, free.ID, search[0].ID)
}

func TestEmployeeService_Import(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "Служба", nil)

	_, err := s.employees.Import(ctx, &dto.ImportEmployeesRequest{Employees: []dto.CreateEmployeeRequest{
		{Name: "A", Surname: "B", Position: "C", Email: "a@example.com", DepartmentID: ptr("missing")},
	}})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
	assert.Empty(t, s.employees.List(ctx, nil))

	result, err := s.employees.Import(ctx, &dto.ImportEmployeesRequest{Employees: []dto.CreateEmployeeRequest{
		{Name: "A", Surname: "B", Position: "C", Email: "a@example.com", DepartmentID: &dept.ID},
		{Name: "D", Surname: "E", Position: "F", Email: "d@example.com", Rating: ptr(4)},
	}})
	require.NoError(t, err)
	require.Len(t, result.Employees, 2)
	assert.Equal(t, 0, result.Employees[0].Rating)
	assert.Equal(t, 4, result.Employees[1].Rating)
}

func TestEmployeeService_ImportCSV(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "Разработка", nil)

	input := "ФИО,Должность,Почта,Навыки,Отдел,Рейтинг\n" +
		"Иван Петров,Инженер,ivan@example.com,Go;SQL,разработка,4\n" +
		"Мария Сидорова,Аналитик,maria@example.com,,,\n"

	result, err := s.employees.ImportCSV(ctx, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Employees, 2)

	ivan := result.Employees[0]
	assert.Equal(t, "Иван Петров", ivan.FullName)
	assert.Equal(t, []string{"Go", "SQL"}, ivan.Skills)
	assert.Equal(t, 4, ivan.Rating)
	require.NotNil(t, ivan.DepartmentID)
	assert.Equal(t, dept.ID, *ivan.DepartmentID)
	assert.Nil(t, result.Employees[1].DepartmentID)

	got, err := s.departments.GetByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Len(t, got.Employees, 1)
}

func TestEmployeeService_ImportCSVRejectsWholeFile(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	input := "name,position,email,department\n" +
		"Иван Петров,Инженер,ivan@example.com,\n" +
		"Пётр Иванов,Курьер,not-an-email,\n" +
		"Анна Смирнова,Менеджер,anna@example.com,Нет такого\n"

	result, err := s.employees.ImportCSV(ctx, strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCSV))
	require.NotNil(t, result)
	assert.Equal(t, []string{
		`row 3: invalid email "not-an-email"`,
		`row 4: unknown department "Нет такого"`,
	}, result.Errors)
	assert.Empty(t, s.employees.List(ctx, nil))

	_, err = s.employees.ImportCSV(ctx, strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidCSV)
}

func TestRequestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "ИТ", nil)
	emp := s.mustEmployee(t, "Admin", 5, &dept.ID)

	_, err := s.auth.Register(ctx, &dto.RegisterRequest{Username: "user1", Password: "secret1", Email: "u@example.com"})
	require.NoError(t, err)
	me, err := s.auth.Login(ctx, &dto.LoginRequest{Username: "user1", Password: "secret1"})
	require.NoError(t, err)

	req, err := s.requests.Create(ctx, &dto.CreateRequestRequest{
		Title:       "Сломался принтер",
		Description: "Не печатает принтер в офисе",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestTypeIT, req.Type)
	assert.Equal(t, domain.RequestStatusNew, req.Status)
	assert.Equal(t, me.ID, req.CreatedByID)

	assigned, err := s.requests.Assign(ctx, req.ID, &dto.AssignRequestRequest{DepartmentID: dept.ID, EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusInProgress, assigned.Status)
	assert.Equal(t, emp.ID, assigned.AssignedToEmployeeID)

	comment, err := s.requests.AddComment(ctx, req.ID, &dto.AddCommentRequest{Text: " Принято "})
	require.NoError(t, err)
	assert.Equal(t, "Принято", comment.Text)
	assert.Equal(t, me.ID, comment.AuthorID)

	done, err := s.requests.UpdateStatus(ctx, req.ID, domain.RequestStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusCompleted, done.Status)
	require.Len(t, done.Comments, 1)

	_, err = s.requests.Assign(ctx, req.ID, &dto.AssignRequestRequest{DepartmentID: "missing"})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
	_, err = s.requests.Assign(ctx, req.ID, &dto.AssignRequestRequest{DepartmentID: dept.ID, EmployeeID: "missing"})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
	_, err = s.requests.AddComment(ctx, "missing", &dto.AddCommentRequest{Text: "x"})
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
	_, err = s.requests.UpdateStatus(ctx, "missing", domain.RequestStatusRejected)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestRequestService_TypeSelection(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	explicit, err := s.requests.Create(ctx, &dto.CreateRequestRequest{Title: "Сломался принтер", Type: "HR"})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestTypeHR, explicit.Type)

	classified, err := s.requests.Create(ctx, &dto.CreateRequestRequest{Title: "Доставка мебели", Description: "Нужна доставка мебели на склад"})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestTypeLogistics, classified.Type)

	fallback, err := s.requests.Create(ctx, &dto.CreateRequestRequest{Title: "Привет"})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestTypeIT, fallback.Type)
	assert.Empty(t, fallback.CreatedByID)
}

func TestRequestService_List(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "Склад", nil)

	printer, err := s.requests.Create(ctx, &dto.CreateRequestRequest{Title: "Принтер", Type: "IT"})
	require.NoError(t, err)
	vacation, err := s.requests.Create(ctx, &dto.CreateRequestRequest{Title: "Отпуск", Description: "С понедельника", Type: "HR"})
	require.NoError(t, err)
	_, err = s.requests.Assign(ctx, vacation.ID, &dto.AssignRequestRequest{DepartmentID: dept.ID})
	require.NoError(t, err)

	ids := func(list []domain.Request) []string {
		out := make([]string, 0, len(list))
		for _, r := range list {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{printer.ID, vacation.ID}, ids(s.requests.List(ctx, nil)))
	assert.Equal(t, []string{printer.ID}, ids(s.requests.List(ctx, &dto.RequestListQuery{Status: "NEW"})))
	assert.Equal(t, []string{vacation.ID}, ids(s.requests.List(ctx, &dto.RequestListQuery{Type: "HR"})))
	assert.Equal(t, []string{vacation.ID}, ids(s.requests.List(ctx, &dto.RequestListQuery{DepartmentID: dept.ID})))
	assert.Equal(t, []string{vacation.ID}, ids(s.requests.List(ctx, &dto.RequestListQuery{Query: "понедельник"})))
	assert.Empty(t, s.requests.List(ctx, &dto.RequestListQuery{Status: "COMPLETED"}))
}

func TestRecommendationService(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	dept := s.mustDepartment(t, "Служба", nil)
	other := s.mustDepartment(t, "Другая", nil)

	_, err := s.recommendations.Create(ctx, &dto.CreateRecommendationRequest{
		Type: "EMPLOYEE_DISTRIBUTION", Description: "x", TargetDepartmentID: "missing",
	})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

	manual, err := s.recommendations.Create(ctx, &dto.CreateRecommendationRequest{
		Type: "EMPLOYEE_DISTRIBUTION", Description: " Перераспределить ", TargetDepartmentID: dept.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Перераспределить", manual.Description)
	assert.False(t, manual.Implemented)

	generated, err := s.recommendations.Generate(ctx, &dto.GenerateRecommendationRequest{
		Type: "WORKLOAD_PREDICTION", TargetDepartmentID: other.ID,
	})
	require.NoError(t, err)
	assert.Contains(t, nlp.Texts(domain.RecommendationWorkloadPrediction), generated.Description)

	_, err = s.recommendations.Generate(ctx, &dto.GenerateRecommendationRequest{
		Type: "WORKLOAD_PREDICTION", TargetDepartmentID: "missing",
	})
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

	assert.Len(t, s.recommendations.List(ctx, ""), 2)
	filtered := s.recommendations.List(ctx, other.ID)
	require.Len(t, filtered, 1)
	assert.Equal(t, generated.ID, filtered[0].ID)

	implemented, err := s.recommendations.Implement(ctx, manual.ID)
	require.NoError(t, err)
	assert.True(t, implemented.Implemented)

	again, err := s.recommendations.Implement(ctx, manual.ID)
	require.NoError(t, err)
	assert.True(t, again.Implemented)

	_, err = s.recommendations.Implement(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	_, err := s.auth.Me(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	user, err := s.auth.Register(ctx, &dto.RegisterRequest{
		Username: " admin ", Password: "secret1", Email: "admin@example.com", FirstName: "Анна",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, domain.RoleUser, user.Role)

	_, err = s.auth.Register(ctx, &dto.RegisterRequest{Username: "admin", Password: "other12", Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	_, err = s.auth.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = s.auth.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = s.auth.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "secret1"})
	require.NoError(t, err)

	me, err := s.auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	promoted, err := s.auth.SetRole(ctx, user.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)

	_, err = s.auth.SetRole(ctx, "missing", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	s.auth.Logout(ctx)
	_, err = s.auth.Me(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

// Сценарий из трёх уровней: служба, отдел и группа с сотрудниками, затем отказ на четвёртом уровне
func TestScenario_ThreeLevelOrganization(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	svc := s.mustDepartment(t, "ИТ служба", nil)
	dep := s.mustDepartment(t, "Разработка", &svc.ID)
	grp := s.mustDepartment(t, "Бэкенд", &dep.ID)

	e1 := s.mustEmployee(t, "One", 3, &grp.ID)
	e2 := s.mustEmployee(t, "Two", 5, &grp.ID)
	e3 := s.mustEmployee(t, "Three", 4, &grp.ID)

	_, err := s.departments.Create(ctx, &dto.CreateDepartmentRequest{Name: "Уровень 4", ParentID: &grp.ID})
	require.ErrorIs(t, err, domain.ErrMaxDepthExceeded)

	tree := s.departments.Tree(ctx)
	require.Len(t, tree, 1)
	group := tree[0].ChildDepartments[0].ChildDepartments[0]
	assert.Equal(t, domain.LevelGroup, group.Level)
	assert.Empty(t, group.ChildDepartments)
	require.Len(t, group.Employees, 3)

	top, err := s.departments.TopEmployees(ctx, grp.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{e2.ID, e3.ID}, []string{top[0].ID, top[1].ID})

	// перевод одного сотрудника в отдел выше
	_, err = s.employees.Move(ctx, e1.ID, &dto.MoveEmployeeRequest{DepartmentID: &dep.ID})
	require.NoError(t, err)

	got, err := s.departments.GetByID(ctx, grp.ID)
	require.NoError(t, err)
	assert.Len(t, got.Employees, 2)

	got, err = s.departments.GetByID(ctx, dep.ID)
	require.NoError(t, err)
	require.Len(t, got.Employees, 1)
	assert.Equal(t, e1.ID, got.Employees[0].ID)
}
