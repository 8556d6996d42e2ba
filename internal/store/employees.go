package store

import (
	"context"
	"log/slog"

	"github.com/org-structure-manager/internal/domain"
)

const maxRating = 5

// AddEmployee добавляет сотрудника в реестр. Если рейтинг не указан, назначается случайный от 1 до 5.
func (s *Store) AddEmployee(ctx context.Context, in domain.NewEmployee) domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	rating := s.rand.IntN(maxRating) + 1
	if in.Rating != nil {
		rating = *in.Rating
	}
	emp := s.insertEmployeeLocked(in, rating)

	s.commit(ctx, "add_employee")
	return cloneEmployee(emp)
}

// ImportEmployees добавляет сотрудников пакетом. Рейтинг берётся из входных данных без генерации.
func (s *Store) ImportEmployees(ctx context.Context, rows []domain.NewEmployee) []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()

	imported := make([]domain.Employee, 0, len(rows))
	if len(rows) == 0 {
		return imported
	}
	for _, row := range rows {
		rating := 0
		if row.Rating != nil {
			rating = *row.Rating
		}
		imported = append(imported, cloneEmployee(s.insertEmployeeLocked(row, rating)))
	}

	s.logger.Debug("employees imported", slog.Int("count", len(imported)))
	s.commit(ctx, "import_employees")
	return imported
}

// UpdateEmployee применяет частичное обновление на месте. Изменение DepartmentID выполняется как перевод.
func (s *Store) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return
	}

	setString(&emp.Name, patch.Name)
	setString(&emp.Surname, patch.Surname)
	setString(&emp.Position, patch.Position)
	setString(&emp.Email, patch.Email)
	setString(&emp.Phone, patch.Phone)
	setString(&emp.PhotoURL, patch.PhotoURL)
	setString(&emp.Description, patch.Description)
	if patch.Name != nil || patch.Surname != nil {
		emp.FullName = domain.ComposeFullName(emp.Name, emp.Surname)
	}
	if patch.Rating != nil {
		emp.Rating = *patch.Rating
	}
	if patch.Skills != nil {
		emp.Skills = append([]string{}, patch.Skills...)
	}
	// тот же DepartmentID не переставляет сотрудника в конец списка подразделения
	if patch.DepartmentID != nil && *patch.DepartmentID != derefID(emp.DepartmentID) {
		s.moveEmployeeLocked(emp, *patch.DepartmentID)
	}

	s.commit(ctx, "update_employee")
}

// DeleteEmployee удаляет сотрудника из реестра и из его подразделения
func (s *Store) DeleteEmployee(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return
	}
	if deptID := derefID(emp.DepartmentID); deptID != "" {
		s.detachLocked(id, deptID)
	}
	delete(s.employees, id)
	s.employeeOrder = removeID(s.employeeOrder, id)

	s.commit(ctx, "delete_employee")
}

// MoveEmployee переводит сотрудника в newDepartmentID (nil - снять с подразделения)
func (s *Store) MoveEmployee(ctx context.Context, id string, newDepartmentID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return
	}
	s.moveEmployeeLocked(emp, derefID(newDepartmentID))

	s.commit(ctx, "move_employee")
}

// GetEmployeeByID возвращает сотрудника из реестра
func (s *Store) GetEmployeeByID(id string) (domain.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, ok := s.employees[id]
	if !ok {
		return domain.Employee{}, false
	}
	return cloneEmployee(emp), true
}

// Employees возвращает всех сотрудников в порядке добавления
func (s *Store) Employees() []domain.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]domain.Employee, 0, len(s.employeeOrder))
	for _, id := range s.employeeOrder {
		employees = append(employees, cloneEmployee(s.employees[id]))
	}
	return employees
}

func (s *Store) insertEmployeeLocked(in domain.NewEmployee, rating int) *domain.Employee {
	emp := &domain.Employee{
		ID:          s.newID(),
		Name:        in.Name,
		Surname:     in.Surname,
		FullName:    domain.ComposeFullName(in.Name, in.Surname),
		Position:    in.Position,
		Email:       in.Email,
		Phone:       in.Phone,
		PhotoURL:    in.PhotoURL,
		Description: in.Description,
		Rating:      rating,
		Skills:      append([]string{}, in.Skills...),
	}
	s.employees[emp.ID] = emp
	s.employeeOrder = append(s.employeeOrder, emp.ID)
	s.moveEmployeeLocked(emp, derefID(in.DepartmentID))
	return emp
}

// moveEmployeeLocked убирает сотрудника из прежнего подразделения и добавляет в конец списка нового.
// Несуществующее подразделение оставляет сотрудника без подразделения.
func (s *Store) moveEmployeeLocked(emp *domain.Employee, deptID string) {
	if previous := derefID(emp.DepartmentID); previous != "" {
		s.detachLocked(emp.ID, previous)
	}
	emp.DepartmentID = nil
	if deptID == "" {
		return
	}

	node, ok := s.departments[deptID]
	if !ok {
		s.logger.Debug("target department not found, employee left unassigned",
			slog.String("employee_id", emp.ID),
			slog.String("department_id", deptID),
		)
		return
	}
	emp.DepartmentID = optionalID(deptID)
	node.members = append(node.members, emp.ID)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
