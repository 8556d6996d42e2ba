// Package store содержит in-memory хранилище организационной структуры:
// дерево подразделений, реестр сотрудников, заявки, рекомендации и учётные записи.
//
// Подразделения хранятся в виде арены узлов (id → узел со ссылками на родителя,
// дочерние узлы и сотрудников). Дерево с вложенными сотрудниками строится по запросу
// из авторитетного реестра, поэтому вложенная копия сотрудника всегда совпадает с записью реестра.
//
// Все операции выполняются под одной блокировкой и сохраняют полное состояние
// через Persister после каждого изменения.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/identity"
	"github.com/org-structure-manager/internal/metrics"
	"golang.org/x/crypto/bcrypt"
)

// Persister загружает и сохраняет снимок состояния хранилища.
// Load возвращает nil, если состояние ещё не сохранялось.
type Persister interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}

// Option настраивает Store при создании
type Option func(*Store)

// WithIDGenerator задаёт генератор идентификаторов
func WithIDGenerator(gen identity.Generator) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithClock задаёт источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithRand задаёт источник случайных чисел для рейтинга по умолчанию
func WithRand(r *rand.Rand) Option {
	return func(s *Store) {
		s.rand = r
	}
}

// WithBcryptCost задаёт стоимость хеширования паролей
func WithBcryptCost(cost int) Option {
	return func(s *Store) {
		s.bcryptCost = cost
	}
}

type departmentNode struct {
	id          string
	name        string
	description string
	level       int
	parentID    string
	children    []string
	members     []string
}

// Store - хранилище организационной структуры
type Store struct {
	mu sync.RWMutex

	departments map[string]*departmentNode
	roots       []string

	employees     map[string]*domain.Employee
	employeeOrder []string

	requests     map[string]*domain.Request
	requestOrder []string

	recommendations     map[string]*domain.Recommendation
	recommendationOrder []string

	users         map[string]*domain.User
	userOrder     []string
	usernames     map[string]string
	currentUserID string

	persister  Persister
	logger     *slog.Logger
	newID      identity.Generator
	now        func() time.Time
	rand       *rand.Rand
	bcryptCost int
}

// New создаёт хранилище и загружает сохранённое состояние, если persister не nil
func New(ctx context.Context, persister Persister, logger *slog.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		departments:     make(map[string]*departmentNode),
		employees:       make(map[string]*domain.Employee),
		requests:        make(map[string]*domain.Request),
		recommendations: make(map[string]*domain.Recommendation),
		users:           make(map[string]*domain.User),
		usernames:       make(map[string]string),
		persister:       persister,
		logger:          logger,
		newID:           identity.New,
		now:             time.Now,
		rand:            rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		bcryptCost:      bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	if persister != nil {
		snap, err := persister.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
		if snap != nil {
			s.restore(snap)
			logger.Info("state loaded",
				slog.Int("departments", len(s.departments)),
				slog.Int("employees", len(s.employees)),
				slog.Int("requests", len(s.requests)),
			)
		}
	}

	s.updateGauges()
	return s, nil
}

// Snapshot возвращает копию полного состояния
func (s *Store) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

// commit вызывается под блокировкой после каждого изменения состояния
func (s *Store) commit(ctx context.Context, operation string) {
	metrics.StoreMutationsTotal.WithLabelValues(operation).Inc()
	s.updateGauges()

	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, s.snapshotLocked()); err != nil {
		metrics.StorePersistFailuresTotal.Inc()
		s.logger.Error("failed to persist state",
			slog.String("operation", operation),
			slog.Any("error", err),
		)
	}
}

func (s *Store) updateGauges() {
	metrics.Departments.Set(float64(len(s.departments)))
	metrics.Employees.Set(float64(len(s.employees)))

	open := 0
	for _, req := range s.requests {
		if req.Status == domain.RequestStatusNew || req.Status == domain.RequestStatusInProgress {
			open++
		}
	}
	metrics.OpenRequests.Set(float64(open))
}

func (s *Store) snapshotLocked() *domain.Snapshot {
	snap := &domain.Snapshot{
		Departments:     s.forestLocked(),
		Employees:       make([]domain.Employee, 0, len(s.employeeOrder)),
		Requests:        make([]domain.Request, 0, len(s.requestOrder)),
		Recommendations: make([]domain.Recommendation, 0, len(s.recommendationOrder)),
		Users:           make([]domain.User, 0, len(s.userOrder)),
		CurrentUserID:   optionalID(s.currentUserID),
	}
	for _, id := range s.employeeOrder {
		snap.Employees = append(snap.Employees, cloneEmployee(s.employees[id]))
	}
	for _, id := range s.requestOrder {
		snap.Requests = append(snap.Requests, cloneRequest(s.requests[id]))
	}
	for _, id := range s.recommendationOrder {
		snap.Recommendations = append(snap.Recommendations, *s.recommendations[id])
	}
	for _, id := range s.userOrder {
		snap.Users = append(snap.Users, *s.users[id])
	}
	return snap
}

// restore пересобирает арену из снимка. Авторитетным считается плоский реестр сотрудников:
// вложенные копии используются только для порядка, висячие ссылки на подразделения сбрасываются.
func (s *Store) restore(snap *domain.Snapshot) {
	for i := range snap.Employees {
		emp := cloneEmployee(&snap.Employees[i])
		if emp.ID == "" || s.employees[emp.ID] != nil {
			continue
		}
		s.employees[emp.ID] = &emp
		s.employeeOrder = append(s.employeeOrder, emp.ID)
	}

	var restoreLevel func(depts []domain.Department, parentID string, level int) []string
	restoreLevel = func(depts []domain.Department, parentID string, level int) []string {
		ids := make([]string, 0, len(depts))
		for _, dept := range depts {
			if dept.ID == "" || s.departments[dept.ID] != nil {
				continue
			}
			node := &departmentNode{
				id:          dept.ID,
				name:        dept.Name,
				description: dept.Description,
				level:       level,
				parentID:    parentID,
			}
			s.departments[node.id] = node
			for _, embedded := range dept.Employees {
				emp, ok := s.employees[embedded.ID]
				if ok && derefID(emp.DepartmentID) == node.id && !contains(node.members, emp.ID) {
					node.members = append(node.members, emp.ID)
				}
			}
			node.children = restoreLevel(dept.ChildDepartments, node.id, level+1)
			ids = append(ids, node.id)
		}
		return ids
	}
	s.roots = restoreLevel(snap.Departments, "", domain.LevelService)

	for _, id := range s.employeeOrder {
		emp := s.employees[id]
		deptID := derefID(emp.DepartmentID)
		if deptID == "" {
			continue
		}
		node, ok := s.departments[deptID]
		if !ok {
			s.logger.Warn("employee references unknown department, unassigning",
				slog.String("employee_id", id),
				slog.String("department_id", deptID),
			)
			emp.DepartmentID = nil
			continue
		}
		if !contains(node.members, id) {
			node.members = append(node.members, id)
		}
	}

	for i := range snap.Requests {
		req := cloneRequest(&snap.Requests[i])
		if req.ID == "" || s.requests[req.ID] != nil {
			continue
		}
		s.requests[req.ID] = &req
		s.requestOrder = append(s.requestOrder, req.ID)
	}

	for i := range snap.Recommendations {
		rec := snap.Recommendations[i]
		if rec.ID == "" || s.recommendations[rec.ID] != nil {
			continue
		}
		s.recommendations[rec.ID] = &rec
		s.recommendationOrder = append(s.recommendationOrder, rec.ID)
	}

	for i := range snap.Users {
		user := snap.Users[i]
		if user.ID == "" || s.users[user.ID] != nil {
			continue
		}
		if _, taken := s.usernames[user.Username]; taken {
			continue
		}
		s.users[user.ID] = &user
		s.userOrder = append(s.userOrder, user.ID)
		s.usernames[user.Username] = user.ID
	}

	if id := derefID(snap.CurrentUserID); id != "" && s.users[id] != nil {
		s.currentUserID = id
	}
}
