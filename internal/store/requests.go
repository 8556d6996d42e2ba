package store

import (
	"context"
	"time"

	"github.com/org-structure-manager/internal/domain"
)

// AddRequest регистрирует новую заявку в статусе NEW
func (s *Store) AddRequest(ctx context.Context, title, description string, typ domain.RequestType, createdByID string) domain.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	req := &domain.Request{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		Type:        typ,
		Status:      domain.RequestStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedByID: createdByID,
		Comments:    []domain.Comment{},
	}
	s.requests[req.ID] = req
	s.requestOrder = append(s.requestOrder, req.ID)

	s.commit(ctx, "add_request")
	return cloneRequest(req)
}

// UpdateRequestStatus устанавливает любой статус без проверки переходов
func (s *Store) UpdateRequestStatus(ctx context.Context, id string, status domain.RequestStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return
	}
	req.Status = status
	req.UpdatedAt = s.touchLocked(req)

	s.commit(ctx, "update_request_status")
}

// AssignRequest назначает заявку подразделению и, опционально, сотруднику.
// Новая заявка при назначении переходит в работу, остальные статусы не меняются.
func (s *Store) AssignRequest(ctx context.Context, id, departmentID, employeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[id]
	if !ok {
		return
	}
	req.AssignedToDepartmentID = departmentID
	req.AssignedToEmployeeID = employeeID
	req.UpdatedAt = s.touchLocked(req)
	if req.Status == domain.RequestStatusNew {
		req.Status = domain.RequestStatusInProgress
	}

	s.commit(ctx, "assign_request")
}

// AddRequestComment добавляет комментарий в конец списка.
// Комментарий возвращается и для неизвестной заявки, но никуда не сохраняется.
func (s *Store) AddRequestComment(ctx context.Context, id, text, authorID string) domain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := domain.Comment{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: s.now(),
		AuthorID:  authorID,
		RequestID: id,
	}

	req, ok := s.requests[id]
	if !ok {
		return comment
	}
	if comment.CreatedAt.Before(req.CreatedAt) {
		comment.CreatedAt = req.CreatedAt
	}
	req.Comments = append(req.Comments, comment)
	req.UpdatedAt = s.touchLocked(req)

	s.commit(ctx, "add_request_comment")
	return comment
}

// GetRequestByID возвращает заявку
func (s *Store) GetRequestByID(id string) (domain.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return domain.Request{}, false
	}
	return cloneRequest(req), true
}

// Requests возвращает все заявки в порядке создания
func (s *Store) Requests() []domain.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := make([]domain.Request, 0, len(s.requestOrder))
	for _, id := range s.requestOrder {
		requests = append(requests, cloneRequest(s.requests[id]))
	}
	return requests
}

// touchLocked возвращает новое значение UpdatedAt, не меньшее CreatedAt
func (s *Store) touchLocked(req *domain.Request) time.Time {
	now := s.now()
	if now.Before(req.CreatedAt) {
		return req.CreatedAt
	}
	return now
}
