package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/nlp"
	"github.com/org-structure-manager/internal/store"
)

// RecommendationService определяет интерфейс бизнес-логики для рекомендаций
type RecommendationService interface {
	Create(ctx context.Context, req *dto.CreateRecommendationRequest) (*domain.Recommendation, error)
	Generate(ctx context.Context, req *dto.GenerateRecommendationRequest) (*domain.Recommendation, error)
	List(ctx context.Context, departmentID string) []domain.Recommendation
	Implement(ctx context.Context, id string) (*domain.Recommendation, error)
}

type recommendationService struct {
	store     *store.Store
	generator *nlp.Generator
}

// NewRecommendationService создаёт новый экземпляр сервиса
func NewRecommendationService(s *store.Store, generator *nlp.Generator) RecommendationService {
	return &recommendationService{store: s, generator: generator}
}

func (s *recommendationService) Create(ctx context.Context, req *dto.CreateRecommendationRequest) (*domain.Recommendation, error) {
	if _, ok := s.store.GetDepartmentByID(req.TargetDepartmentID); !ok {
		return nil, domain.ErrDepartmentNotFound
	}

	rec := s.store.AddRecommendation(ctx,
		domain.RecommendationType(req.Type),
		strings.TrimSpace(req.Description),
		req.TargetDepartmentID,
	)
	return &rec, nil
}

func (s *recommendationService) Generate(ctx context.Context, req *dto.GenerateRecommendationRequest) (*domain.Recommendation, error) {
	if _, ok := s.store.GetDepartmentByID(req.TargetDepartmentID); !ok {
		return nil, domain.ErrDepartmentNotFound
	}

	typ := domain.RecommendationType(req.Type)
	text, ok := s.generator.Recommend(typ)
	if !ok {
		return nil, fmt.Errorf("no recommendation texts for type %s", typ)
	}

	rec := s.store.AddRecommendation(ctx, typ, text, req.TargetDepartmentID)
	return &rec, nil
}

func (s *recommendationService) List(ctx context.Context, departmentID string) []domain.Recommendation {
	recs := s.store.Recommendations()
	if departmentID == "" {
		return recs
	}
	return slices.DeleteFunc(recs, func(r domain.Recommendation) bool {
		return r.TargetDepartmentID != departmentID
	})
}

// Implement отмечает рекомендацию внедрённой; повторный вызов не считается ошибкой
func (s *recommendationService) Implement(ctx context.Context, id string) (*domain.Recommendation, error) {
	if _, ok := s.store.GetRecommendationByID(id); !ok {
		return nil, domain.ErrRecommendationNotFound
	}
	s.store.ImplementRecommendation(ctx, id)

	rec, ok := s.store.GetRecommendationByID(id)
	if !ok {
		return nil, domain.ErrRecommendationNotFound
	}
	return &rec, nil
}
