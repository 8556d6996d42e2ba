package service

import (
	"context"
	"strings"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/store"
)

// DepartmentService определяет интерфейс бизнес-логики для подразделений
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error)
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	Tree(ctx context.Context) []domain.Department
	Flat(ctx context.Context) []domain.Department
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*domain.Department, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, req *dto.MoveDepartmentRequest) (*domain.Department, error)
	TopEmployees(ctx context.Context, id string, n int) ([]domain.Employee, error)
}

type departmentService struct {
	store *store.Store
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(s *store.Store) DepartmentService {
	return &departmentService{store: s}
}

// Create создаёт подразделение. Уровень определяется родителем,
// проверка глубины и вставка выполняются хранилищем атомарно.
func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error) {
	dept, err := s.store.CreateDepartment(ctx,
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Description),
		req.ParentID,
	)
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *departmentService) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	dept, ok := s.store.GetDepartmentByID(id)
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	return &dept, nil
}

func (s *departmentService) Tree(ctx context.Context) []domain.Department {
	return s.store.Departments()
}

func (s *departmentService) Flat(ctx context.Context) []domain.Department {
	return s.store.FlatDepartments()
}

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*domain.Department, error) {
	if _, ok := s.store.GetDepartmentByID(id); !ok {
		return nil, domain.ErrDepartmentNotFound
	}

	var patch domain.DepartmentPatch
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		patch.Description = &description
	}
	s.store.UpdateDepartment(ctx, id, patch)

	return s.GetByID(ctx, id)
}

// Delete удаляет только пустое подразделение
func (s *departmentService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteEmptyDepartment(ctx, id)
}

// Move переносит подразделение. Самоссылка, цикл и превышение глубины отклоняются
// под той же блокировкой, под которой выполняется перенос.
func (s *departmentService) Move(ctx context.Context, id string, req *dto.MoveDepartmentRequest) (*domain.Department, error) {
	if err := s.store.MoveDepartmentChecked(ctx, id, req.ParentID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *departmentService) TopEmployees(ctx context.Context, id string, n int) ([]domain.Employee, error) {
	if _, ok := s.store.GetDepartmentByID(id); !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	return s.store.GetTopEmployeesForDepartment(id, n), nil
}
