package store

import (
	"context"

	"github.com/org-structure-manager/internal/domain"
)

// AddRecommendation сохраняет рекомендацию для подразделения
func (s *Store) AddRecommendation(ctx context.Context, typ domain.RecommendationType, description, targetDepartmentID string) domain.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &domain.Recommendation{
		ID:                 s.newID(),
		Type:               typ,
		Description:        description,
		TargetDepartmentID: targetDepartmentID,
		CreatedAt:          s.now(),
	}
	s.recommendations[rec.ID] = rec
	s.recommendationOrder = append(s.recommendationOrder, rec.ID)

	s.commit(ctx, "add_recommendation")
	return *rec
}

// ImplementRecommendation отмечает рекомендацию внедрённой. Повторный вызов ничего не меняет.
func (s *Store) ImplementRecommendation(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recommendations[id]
	if !ok || rec.Implemented {
		return
	}
	rec.Implemented = true

	s.commit(ctx, "implement_recommendation")
}

// GetRecommendationByID возвращает рекомендацию по id
func (s *Store) GetRecommendationByID(id string) (domain.Recommendation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.recommendations[id]
	if !ok {
		return domain.Recommendation{}, false
	}
	return *rec, true
}

// Recommendations возвращает рекомендации в порядке создания
func (s *Store) Recommendations() []domain.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]domain.Recommendation, 0, len(s.recommendationOrder))
	for _, id := range s.recommendationOrder {
		recs = append(recs, *s.recommendations[id])
	}
	return recs
}
