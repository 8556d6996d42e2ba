package handler

import (
	"log/slog"
	"net/http"

	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/service"
)

type RecommendationHandler struct {
	base
	recService service.RecommendationService
}

func NewRecommendationHandler(recService service.RecommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		base:       newBase(logger),
		recService: recService,
	}
}

func (h *RecommendationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecommendationRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.recService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toRecommendationResponse(rec))
}

func (h *RecommendationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateRecommendationRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.recService.Generate(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toRecommendationResponse(rec))
}

func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	recs := h.recService.List(r.Context(), r.URL.Query().Get("department_id"))
	resp := make([]dto.RecommendationResponse, len(recs))
	for i := range recs {
		resp[i] = toRecommendationResponse(&recs[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *RecommendationHandler) Implement(w http.ResponseWriter, r *http.Request) {
	rec, err := h.recService.Implement(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toRecommendationResponse(rec))
}
