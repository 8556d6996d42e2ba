package handler

import (
	"log/slog"
	"net/http"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/service"
)

type RequestHandler struct {
	base
	reqService service.RequestService
}

func NewRequestHandler(reqService service.RequestService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		base:       newBase(logger),
		reqService: reqService,
	}
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRequestRequest
	if !h.decode(w, r, &req) {
		return
	}

	created, err := h.reqService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toRequestResponse(created))
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.RequestListQuery{
		Status:       q.Get("status"),
		Type:         q.Get("type"),
		DepartmentID: q.Get("department_id"),
		Query:        q.Get("q"),
	}
	if !h.validate(w, &query) {
		return
	}

	requests := h.reqService.List(r.Context(), &query)
	resp := make([]dto.RequestResponse, len(requests))
	for i := range requests {
		resp[i] = toRequestResponse(&requests[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *RequestHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	req, err := h.reqService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body dto.UpdateRequestStatusRequest
	if !h.decode(w, r, &body) {
		return
	}

	req, err := h.reqService.UpdateStatus(r.Context(), r.PathValue("id"), domain.RequestStatus(body.Status))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *RequestHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var body dto.AssignRequestRequest
	if !h.decode(w, r, &body) {
		return
	}

	req, err := h.reqService.Assign(r.Context(), r.PathValue("id"), &body)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *RequestHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var body dto.AddCommentRequest
	if !h.decode(w, r, &body) {
		return
	}

	comment, err := h.reqService.AddComment(r.Context(), r.PathValue("id"), &body)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// Classify возвращает предполагаемый тип заявки, не создавая её
func (h *RequestHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var body dto.ClassifyRequest
	if !h.decode(w, r, &body) {
		return
	}

	c, ok := h.reqService.Classify(r.Context(), &body)
	resp := dto.ClassificationResponse{Classified: ok}
	if ok {
		resp.Type = string(c.Type)
		resp.Confidence = c.Confidence
	}
	h.respondJSON(w, http.StatusOK, resp)
}
