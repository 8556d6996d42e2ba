// Package seed наполняет пустое хранилище демонстрационной организацией.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/icrowley/fake"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/service"
)

// AdminUsername - учётная запись администратора демо-данных
const AdminUsername = "admin"

const employeesPerGroup = 3

// Services - сервисы, через которые создаются демо-данные
type Services struct {
	Departments service.DepartmentService
	Employees   service.EmployeeService
	Requests    service.RequestService
	Auth        service.AuthService
}

type unit struct {
	name     string
	children []unit
}

// три службы, в каждой отделы, в отделах группы
var organization = []unit{
	{name: "Служба информационных технологий", children: []unit{
		{name: "Отдел разработки", children: []unit{{name: "Группа backend"}, {name: "Группа frontend"}}},
		{name: "Отдел инфраструктуры", children: []unit{{name: "Группа сетей"}, {name: "Группа поддержки"}}},
	}},
	{name: "Служба персонала", children: []unit{
		{name: "Отдел подбора", children: []unit{{name: "Группа найма"}}},
		{name: "Отдел обучения", children: []unit{{name: "Группа тренингов"}}},
	}},
	{name: "Служба логистики", children: []unit{
		{name: "Отдел снабжения", children: []unit{{name: "Группа закупок"}}},
		{name: "Отдел доставки", children: []unit{{name: "Группа складского учёта"}, {name: "Группа курьеров"}}},
	}},
}

var sampleRequests = []dto.CreateRequestRequest{
	{Title: "Не работает принтер", Description: "Принтер на третьем этаже не печатает, нужна настройка"},
	{Title: "Заявление на отпуск", Description: "Прошу согласовать отпуск и подготовить документы"},
	{Title: "Доставка канцтоваров", Description: "Нужна поставка бумаги на склад до пятницы"},
}

// Run создаёт демо-организацию, если в хранилище нет ни подразделений, ни сотрудников.
// Пользователь admin после наполнения остаётся разлогиненным.
func Run(ctx context.Context, svc Services, adminPassword string, logger *slog.Logger) error {
	if len(svc.Departments.Flat(ctx)) > 0 || len(svc.Employees.List(ctx, nil)) > 0 {
		logger.Info("store is not empty, skipping demo seed")
		return nil
	}

	if err := seedAdmin(ctx, svc.Auth, adminPassword); err != nil {
		return err
	}

	var departments, employees int
	for _, root := range organization {
		d, e, err := seedUnit(ctx, svc, root, nil)
		if err != nil {
			return err
		}
		departments += d
		employees += e
	}

	for i := range sampleRequests {
		if _, err := svc.Requests.Create(ctx, &sampleRequests[i]); err != nil {
			return fmt.Errorf("failed to seed request: %w", err)
		}
	}
	svc.Auth.Logout(ctx)

	logger.Info("demo organization seeded",
		slog.Int("departments", departments),
		slog.Int("employees", employees),
		slog.Int("requests", len(sampleRequests)),
	)
	return nil
}

func seedAdmin(ctx context.Context, auth service.AuthService, password string) error {
	admin, err := auth.Register(ctx, &dto.RegisterRequest{
		Username:  AdminUsername,
		Password:  password,
		Email:     "admin@example.com",
		FirstName: "Администратор",
	})
	if err != nil {
		return fmt.Errorf("failed to register admin: %w", err)
	}
	if _, err := auth.SetRole(ctx, admin.ID, domain.RoleAdmin); err != nil {
		return fmt.Errorf("failed to promote admin: %w", err)
	}
	// заявки создаются от имени администратора
	if _, err := auth.Login(ctx, &dto.LoginRequest{Username: AdminUsername, Password: password}); err != nil {
		return fmt.Errorf("failed to login admin: %w", err)
	}
	return nil
}

func seedUnit(ctx context.Context, svc Services, u unit, parentID *string) (int, int, error) {
	dept, err := svc.Departments.Create(ctx, &dto.CreateDepartmentRequest{Name: u.name, ParentID: parentID})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to seed department %q: %w", u.name, err)
	}

	departments, employees := 1, 0
	if len(u.children) == 0 {
		for range employeesPerGroup {
			if _, err := svc.Employees.Create(ctx, fakeEmployee(dept.ID)); err != nil {
				return 0, 0, fmt.Errorf("failed to seed employee: %w", err)
			}
			employees++
		}
		return departments, employees, nil
	}

	for _, child := range u.children {
		d, e, err := seedUnit(ctx, svc, child, &dept.ID)
		if err != nil {
			return 0, 0, err
		}
		departments += d
		employees += e
	}
	return departments, employees, nil
}

func fakeEmployee(departmentID string) *dto.CreateEmployeeRequest {
	name, surname := fake.FirstName(), fake.LastName()
	return &dto.CreateEmployeeRequest{
		Name:         name,
		Surname:      surname,
		Position:     fake.JobTitle(),
		Email:        strings.ToLower(name+"."+surname) + "@example.com",
		Phone:        fake.Phone(),
		Skills:       []string{fake.Word(), fake.Word()},
		DepartmentID: &departmentID,
	}
}
