package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/service"
)

const defaultTopEmployees = 5

type DepartmentHandler struct {
	base
	deptService service.DepartmentService
}

func NewDepartmentHandler(deptService service.DepartmentService, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		base:        newBase(logger),
		deptService: deptService,
	}
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	dept, err := h.deptService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toDepartmentResponse(dept))
}

// Tree возвращает лес подразделений с сотрудниками
func (h *DepartmentHandler) Tree(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, toDepartmentResponses(h.deptService.Tree(r.Context())))
}

// Flat возвращает все подразделения списком в порядке обхода дерева
func (h *DepartmentHandler) Flat(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, toDepartmentResponses(h.deptService.Flat(r.Context())))
}

func (h *DepartmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	dept, err := h.deptService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	dept, err := h.deptService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.deptService.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DepartmentHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req dto.MoveDepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	dept, err := h.deptService.Move(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toDepartmentResponse(dept))
}

func (h *DepartmentHandler) TopEmployees(w http.ResponseWriter, r *http.Request) {
	query := dto.TopEmployeesQuery{N: defaultTopEmployees}
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		n, err := strconv.Atoi(nStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid n", err.Error())
			return
		}
		query.N = n
	}
	if !h.validate(w, &query) {
		return
	}

	top, err := h.deptService.TopEmployees(r.Context(), r.PathValue("id"), query.N)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponses(top))
}
