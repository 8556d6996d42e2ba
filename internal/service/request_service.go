package service

import (
	"context"
	"slices"
	"strings"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/nlp"
	"github.com/org-structure-manager/internal/store"
)

// RequestService определяет интерфейс бизнес-логики для заявок
type RequestService interface {
	Create(ctx context.Context, req *dto.CreateRequestRequest) (*domain.Request, error)
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	List(ctx context.Context, query *dto.RequestListQuery) []domain.Request
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.Request, error)
	Assign(ctx context.Context, id string, req *dto.AssignRequestRequest) (*domain.Request, error)
	AddComment(ctx context.Context, id string, req *dto.AddCommentRequest) (*domain.Comment, error)
	Classify(ctx context.Context, req *dto.ClassifyRequest) (nlp.Classification, bool)
}

type requestService struct {
	store *store.Store
}

// NewRequestService создаёт новый экземпляр сервиса
func NewRequestService(s *store.Store) RequestService {
	return &requestService{store: s}
}

// Create регистрирует заявку от имени текущего пользователя.
// Без явного типа тип определяется классификатором, а если текст не распознан - IT.
func (s *requestService) Create(ctx context.Context, req *dto.CreateRequestRequest) (*domain.Request, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	typ := domain.RequestType(req.Type)
	if typ == "" {
		typ = domain.RequestTypeIT
		if c, ok := nlp.Classify(title, description); ok {
			typ = c.Type
		}
	}

	created := s.store.AddRequest(ctx, title, description, typ, s.currentUserID())
	return &created, nil
}

func (s *requestService) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	req, ok := s.store.GetRequestByID(id)
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return &req, nil
}

func (s *requestService) List(ctx context.Context, query *dto.RequestListQuery) []domain.Request {
	requests := s.store.Requests()
	if query == nil {
		return requests
	}

	needle := strings.ToLower(strings.TrimSpace(query.Query))
	return slices.DeleteFunc(requests, func(r domain.Request) bool {
		if query.Status != "" && string(r.Status) != query.Status {
			return true
		}
		if query.Type != "" && string(r.Type) != query.Type {
			return true
		}
		if query.DepartmentID != "" && r.AssignedToDepartmentID != query.DepartmentID {
			return true
		}
		if needle == "" {
			return false
		}
		return !strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle)
	})
}

// UpdateStatus выставляет любой статус: переходы между статусами не ограничены
func (s *requestService) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.Request, error) {
	if _, ok := s.store.GetRequestByID(id); !ok {
		return nil, domain.ErrRequestNotFound
	}
	s.store.UpdateRequestStatus(ctx, id, status)
	return s.GetByID(ctx, id)
}

func (s *requestService) Assign(ctx context.Context, id string, req *dto.AssignRequestRequest) (*domain.Request, error) {
	if _, ok := s.store.GetRequestByID(id); !ok {
		return nil, domain.ErrRequestNotFound
	}
	if _, ok := s.store.GetDepartmentByID(req.DepartmentID); !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	if req.EmployeeID != "" {
		if _, ok := s.store.GetEmployeeByID(req.EmployeeID); !ok {
			return nil, domain.ErrEmployeeNotFound
		}
	}

	s.store.AssignRequest(ctx, id, req.DepartmentID, req.EmployeeID)
	return s.GetByID(ctx, id)
}

func (s *requestService) AddComment(ctx context.Context, id string, req *dto.AddCommentRequest) (*domain.Comment, error) {
	if _, ok := s.store.GetRequestByID(id); !ok {
		return nil, domain.ErrRequestNotFound
	}
	comment := s.store.AddRequestComment(ctx, id, strings.TrimSpace(req.Text), s.currentUserID())
	return &comment, nil
}

func (s *requestService) Classify(ctx context.Context, req *dto.ClassifyRequest) (nlp.Classification, bool) {
	return nlp.Classify(req.Title, req.Description)
}

func (s *requestService) currentUserID() string {
	if user, ok := s.store.CurrentUser(); ok {
		return user.ID
	}
	return ""
}
