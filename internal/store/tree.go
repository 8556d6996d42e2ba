package store

import (
	"slices"

	"github.com/org-structure-manager/internal/domain"
)

// projectLocked строит подразделение вместе с поддеревом и вложенными сотрудниками
func (s *Store) projectLocked(node *departmentNode) domain.Department {
	dept := s.projectShallowLocked(node)
	for _, childID := range node.children {
		if child, ok := s.departments[childID]; ok {
			dept.ChildDepartments = append(dept.ChildDepartments, s.projectLocked(child))
		}
	}
	return dept
}

// projectShallowLocked строит подразделение без дочерних подразделений
func (s *Store) projectShallowLocked(node *departmentNode) domain.Department {
	dept := domain.Department{
		ID:               node.id,
		Name:             node.name,
		Description:      node.description,
		Level:            node.level,
		ParentID:         optionalID(node.parentID),
		Employees:        make([]domain.Employee, 0, len(node.members)),
		ChildDepartments: make([]domain.Department, 0, len(node.children)),
	}
	for _, empID := range node.members {
		if emp, ok := s.employees[empID]; ok {
			dept.Employees = append(dept.Employees, cloneEmployee(emp))
		}
	}
	return dept
}

func (s *Store) forestLocked() []domain.Department {
	forest := make([]domain.Department, 0, len(s.roots))
	for _, id := range s.roots {
		if node, ok := s.departments[id]; ok {
			forest = append(forest, s.projectLocked(node))
		}
	}
	return forest
}

// walkLocked обходит узлы в глубину: сначала узел, затем его дочерние узлы по порядку.
// Обход прекращается, когда visit возвращает false.
func (s *Store) walkLocked(ids []string, visit func(node *departmentNode) bool) bool {
	for _, id := range ids {
		node, ok := s.departments[id]
		if !ok {
			continue
		}
		if !visit(node) {
			return false
		}
		if !s.walkLocked(node.children, visit) {
			return false
		}
	}
	return true
}

// subtreeLocked возвращает id узла и всех его потомков в порядке обхода
func (s *Store) subtreeLocked(node *departmentNode) []string {
	ids := []string{node.id}
	s.walkLocked(node.children, func(n *departmentNode) bool {
		ids = append(ids, n.id)
		return true
	})
	return ids
}

func (s *Store) isDescendantLocked(ancestor *departmentNode, id string) bool {
	found := false
	s.walkLocked(ancestor.children, func(n *departmentNode) bool {
		found = n.id == id
		return !found
	})
	return found
}

func (s *Store) heightLocked(node *departmentNode) int {
	height := 0
	for _, childID := range node.children {
		if child, ok := s.departments[childID]; ok {
			height = max(height, s.heightLocked(child))
		}
	}
	return height + 1
}

// unlinkLocked отсоединяет узел от родителя или от списка корней
func (s *Store) unlinkLocked(node *departmentNode) {
	if node.parentID == "" {
		s.roots = removeID(s.roots, node.id)
		return
	}
	if parent, ok := s.departments[node.parentID]; ok {
		parent.children = removeID(parent.children, node.id)
	}
}

// attachLocked добавляет узел в конец списка детей родителя или корней (parent == nil)
func (s *Store) attachLocked(node, parent *departmentNode) {
	if parent == nil {
		s.roots = append(s.roots, node.id)
		return
	}
	parent.children = append(parent.children, node.id)
}

// relinkLocked переносит узел под parent и пересчитывает уровни поддерева
func (s *Store) relinkLocked(node, parent *departmentNode, level int) {
	s.unlinkLocked(node)
	node.parentID = ""
	if parent != nil {
		node.parentID = parent.id
	}
	s.relevelLocked(node, level)
	s.attachLocked(node, parent)
}

func (s *Store) relevelLocked(node *departmentNode, level int) {
	node.level = level
	for _, childID := range node.children {
		if child, ok := s.departments[childID]; ok {
			s.relevelLocked(child, level+1)
		}
	}
}

// detachLocked убирает сотрудника из списка подразделения
func (s *Store) detachLocked(empID, deptID string) {
	if node, ok := s.departments[deptID]; ok {
		node.members = removeID(node.members, empID)
	}
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(x string) bool {
		return x == id
	})
}

func contains(ids []string, id string) bool {
	return slices.Contains(ids, id)
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func derefID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}

func cloneEmployee(emp *domain.Employee) domain.Employee {
	cp := *emp
	cp.Skills = append(make([]string, 0, len(emp.Skills)), emp.Skills...)
	cp.DepartmentID = optionalID(derefID(emp.DepartmentID))
	return cp
}

func cloneRequest(req *domain.Request) domain.Request {
	cp := *req
	cp.Comments = append(make([]domain.Comment, 0, len(req.Comments)), req.Comments...)
	return cp
}
