package store

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/org-structure-manager/internal/domain"
)

// AddDepartment создаёт подразделение. При parentID == nil подразделение становится корневым.
// Если родитель не найден, подразделение возвращается, но в дерево не вставляется.
// Корректность level проверяет вызывающая сторона.
func (s *Store) AddDepartment(ctx context.Context, name, description string, level int, parentID *string) domain.Department {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := &departmentNode{
		id:          s.newID(),
		name:        name,
		description: description,
		level:       level,
		parentID:    derefID(parentID),
	}

	var parent *departmentNode
	if node.parentID != "" {
		var ok bool
		parent, ok = s.departments[node.parentID]
		if !ok {
			s.logger.Debug("parent department not found, department not inserted",
				slog.String("parent_id", node.parentID),
			)
			return s.projectLocked(node)
		}
	}
	s.departments[node.id] = node
	s.attachLocked(node, parent)

	s.commit(ctx, "add_department")
	return s.projectLocked(node)
}

// CreateDepartment создаёт подразделение с уровнем, вычисленным по родителю.
// Проверка и вставка выполняются под одной блокировкой.
func (s *Store) CreateDepartment(ctx context.Context, name, description string, parentID *string) (domain.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := domain.LevelService
	var parent *departmentNode
	if target := derefID(parentID); target != "" {
		var ok bool
		parent, ok = s.departments[target]
		if !ok {
			return domain.Department{}, domain.ErrDepartmentNotFound
		}
		if parent.level+1 > domain.MaxDepth {
			return domain.Department{}, domain.ErrMaxDepthExceeded
		}
		level = parent.level + 1
	}

	node := &departmentNode{
		id:          s.newID(),
		name:        name,
		description: description,
		level:       level,
		parentID:    derefID(parentID),
	}
	s.departments[node.id] = node
	s.attachLocked(node, parent)

	s.commit(ctx, "add_department")
	return s.projectLocked(node), nil
}

// UpdateDepartment обновляет поля подразделения. Дочерние подразделения и сотрудники не затрагиваются.
func (s *Store) UpdateDepartment(ctx context.Context, id string, patch domain.DepartmentPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.departments[id]
	if !ok {
		return
	}
	if patch.Name != nil {
		node.name = *patch.Name
	}
	if patch.Description != nil {
		node.description = *patch.Description
	}

	s.commit(ctx, "update_department")
}

// DeleteDepartment удаляет подразделение вместе с поддеревом.
// Сотрудники удалённых подразделений не удаляются, а остаются без подразделения.
func (s *Store) DeleteDepartment(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.departments[id]
	if !ok {
		return
	}

	s.unlinkLocked(node)
	orphaned := 0
	for _, deptID := range s.subtreeLocked(node) {
		for _, empID := range s.departments[deptID].members {
			if emp, ok := s.employees[empID]; ok {
				emp.DepartmentID = nil
				orphaned++
			}
		}
		delete(s.departments, deptID)
	}

	s.logger.Debug("department deleted",
		slog.String("department_id", id),
		slog.Int("orphaned_employees", orphaned),
	)
	s.commit(ctx, "delete_department")
}

// DeleteEmptyDepartment удаляет подразделение без сотрудников и дочерних подразделений
func (s *Store) DeleteEmptyDepartment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.departments[id]
	if !ok {
		return domain.ErrDepartmentNotFound
	}
	if len(node.members) > 0 || len(node.children) > 0 {
		return domain.ErrDepartmentNotEmpty
	}

	s.unlinkLocked(node)
	delete(s.departments, id)

	s.commit(ctx, "delete_department")
	return nil
}

// MoveDepartment переносит подразделение вместе с поддеревом под newParentID (nil - в корень).
// Уровни поддерева пересчитываются. Перенос в несуществующий узел или в собственного потомка игнорируется.
func (s *Store) MoveDepartment(ctx context.Context, id string, newParentID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.departments[id]
	if !ok {
		return
	}

	target := derefID(newParentID)
	level := domain.LevelService
	var parent *departmentNode
	if target != "" {
		parent, ok = s.departments[target]
		if !ok || target == id || s.isDescendantLocked(node, target) {
			s.logger.Debug("department move skipped",
				slog.String("department_id", id),
				slog.String("new_parent_id", target),
			)
			return
		}
		level = parent.level + 1
	}

	s.relinkLocked(node, parent, level)

	s.commit(ctx, "move_department")
}

// MoveDepartmentChecked переносит подразделение, если перенос допустим:
// цель существует, не совпадает с узлом и не лежит в его поддереве,
// а поддерево под новым родителем укладывается в MaxDepth уровней.
func (s *Store) MoveDepartmentChecked(ctx context.Context, id string, newParentID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.departments[id]
	if !ok {
		return domain.ErrDepartmentNotFound
	}

	level := domain.LevelService
	var parent *departmentNode
	if target := derefID(newParentID); target != "" {
		if target == id {
			return domain.ErrSelfReference
		}
		parent, ok = s.departments[target]
		if !ok {
			return domain.ErrDepartmentNotFound
		}
		if s.isDescendantLocked(node, target) {
			return domain.ErrCyclicReference
		}
		if parent.level+s.heightLocked(node) > domain.MaxDepth {
			return domain.ErrMaxDepthExceeded
		}
		level = parent.level + 1
	}

	s.relinkLocked(node, parent, level)

	s.commit(ctx, "move_department")
	return nil
}

// GetDepartmentByID возвращает подразделение с поддеревом и сотрудниками
func (s *Store) GetDepartmentByID(id string) (domain.Department, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.departments[id]
	if !ok {
		return domain.Department{}, false
	}
	return s.projectLocked(node), true
}

// Departments возвращает лес подразделений
func (s *Store) Departments() []domain.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.forestLocked()
}

// FlatDepartments возвращает все подразделения в порядке обхода в глубину, без дочерних узлов
func (s *Store) FlatDepartments() []domain.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flat := make([]domain.Department, 0, len(s.departments))
	s.walkLocked(s.roots, func(node *departmentNode) bool {
		flat = append(flat, s.projectShallowLocked(node))
		return true
	})
	return flat
}

// GetTopEmployeesForDepartment возвращает до n непосредственных сотрудников подразделения
// по убыванию рейтинга; при равном рейтинге сохраняется порядок в подразделении.
func (s *Store) GetTopEmployeesForDepartment(id string, n int) []domain.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.departments[id]
	if !ok || n <= 0 {
		return []domain.Employee{}
	}

	ranked := s.projectShallowLocked(node).Employees
	slices.SortStableFunc(ranked, func(a, b domain.Employee) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
