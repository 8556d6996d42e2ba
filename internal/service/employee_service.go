package service

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/org-structure-manager/internal/csvimport"
	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/store"
)

// ImportResult - итог импорта сотрудников
type ImportResult struct {
	Employees []domain.Employee
	Errors    []string
}

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, query *dto.EmployeeListQuery) []domain.Employee
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, req *dto.MoveEmployeeRequest) (*domain.Employee, error)
	Import(ctx context.Context, req *dto.ImportEmployeesRequest) (*ImportResult, error)
	ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error)
}

type employeeService struct {
	store *store.Store
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(s *store.Store) EmployeeService {
	return &employeeService{store: s}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if err := s.checkDepartment(req.DepartmentID); err != nil {
		return nil, err
	}

	emp := s.store.AddEmployee(ctx, toNewEmployee(req))
	return &emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	emp, ok := s.store.GetEmployeeByID(id)
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return &emp, nil
}

func (s *employeeService) List(ctx context.Context, query *dto.EmployeeListQuery) []domain.Employee {
	employees := s.store.Employees()
	if query == nil {
		return employees
	}

	needle := strings.ToLower(strings.TrimSpace(query.Query))
	return slices.DeleteFunc(employees, func(emp domain.Employee) bool {
		deptID := ""
		if emp.DepartmentID != nil {
			deptID = *emp.DepartmentID
		}
		if query.Unassigned && deptID != "" {
			return true
		}
		if query.DepartmentID != "" && deptID != query.DepartmentID {
			return true
		}
		return needle != "" && !matchesEmployee(emp, needle)
	})
}

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	if _, ok := s.store.GetEmployeeByID(id); !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		if err := s.checkDepartment(req.DepartmentID); err != nil {
			return nil, err
		}
	}

	s.store.UpdateEmployee(ctx, id, domain.EmployeePatch{
		Name:         trimmed(req.Name),
		Surname:      trimmed(req.Surname),
		Position:     trimmed(req.Position),
		Email:        trimmed(req.Email),
		Phone:        trimmed(req.Phone),
		PhotoURL:     trimmed(req.PhotoURL),
		Description:  trimmed(req.Description),
		Rating:       req.Rating,
		Skills:       req.Skills,
		DepartmentID: req.DepartmentID,
	})

	return s.GetByID(ctx, id)
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if _, ok := s.store.GetEmployeeByID(id); !ok {
		return domain.ErrEmployeeNotFound
	}
	s.store.DeleteEmployee(ctx, id)
	return nil
}

// Move переводит сотрудника. nil или пустой department_id снимает его с подразделения, как и в Update.
func (s *employeeService) Move(ctx context.Context, id string, req *dto.MoveEmployeeRequest) (*domain.Employee, error) {
	if _, ok := s.store.GetEmployeeByID(id); !ok {
		return nil, domain.ErrEmployeeNotFound
	}

	deptID := req.DepartmentID
	if deptID != nil && *deptID == "" {
		deptID = nil
	}
	if err := s.checkDepartment(deptID); err != nil {
		return nil, err
	}

	s.store.MoveEmployee(ctx, id, deptID)
	return s.GetByID(ctx, id)
}

func (s *employeeService) Import(ctx context.Context, req *dto.ImportEmployeesRequest) (*ImportResult, error) {
	rows := make([]domain.NewEmployee, 0, len(req.Employees))
	for i := range req.Employees {
		if err := s.checkDepartment(req.Employees[i].DepartmentID); err != nil {
			return nil, fmt.Errorf("employee %d: %w", i+1, err)
		}
		rows = append(rows, toNewEmployee(&req.Employees[i]))
	}

	return &ImportResult{Employees: s.store.ImportEmployees(ctx, rows)}, nil
}

// ImportCSV разбирает CSV и импортирует сотрудников одним пакетом.
// При любой ошибке в строках ничего не импортируется.
func (s *employeeService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parsed, err := csvimport.Parse(r)
	if err != nil {
		return nil, err
	}

	// Подразделение ищется по названию без учёта регистра
	byName := make(map[string]string)
	for _, dept := range s.store.FlatDepartments() {
		key := strings.ToLower(dept.Name)
		if _, seen := byName[key]; !seen {
			byName[key] = dept.ID
		}
	}

	result := &ImportResult{Errors: parsed.Errors}
	rows := make([]domain.NewEmployee, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		in := row.NewEmployee()
		if row.Department != "" {
			id, ok := byName[strings.ToLower(row.Department)]
			if !ok {
				result.Errors = append(result.Errors,
					fmt.Sprintf("row %d: unknown department %q", row.Line, row.Department))
				continue
			}
			in.DepartmentID = &id
		}
		rows = append(rows, in)
	}

	if len(result.Errors) > 0 {
		return result, fmt.Errorf("%w: %d invalid rows", domain.ErrInvalidCSV, len(result.Errors))
	}

	result.Employees = s.store.ImportEmployees(ctx, rows)
	return result, nil
}

func (s *employeeService) checkDepartment(id *string) error {
	if id == nil {
		return nil
	}
	if _, ok := s.store.GetDepartmentByID(*id); !ok {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

func toNewEmployee(req *dto.CreateEmployeeRequest) domain.NewEmployee {
	return domain.NewEmployee{
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Position:     strings.TrimSpace(req.Position),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		PhotoURL:     strings.TrimSpace(req.PhotoURL),
		Description:  strings.TrimSpace(req.Description),
		Rating:       req.Rating,
		Skills:       req.Skills,
		DepartmentID: req.DepartmentID,
	}
}

func matchesEmployee(emp domain.Employee, needle string) bool {
	if strings.Contains(strings.ToLower(emp.FullName), needle) ||
		strings.Contains(strings.ToLower(emp.Position), needle) ||
		strings.Contains(strings.ToLower(emp.Email), needle) {
		return true
	}
	return slices.ContainsFunc(emp.Skills, func(skill string) bool {
		return strings.Contains(strings.ToLower(skill), needle)
	})
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
