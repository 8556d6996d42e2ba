package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
	"github.com/org-structure-manager/internal/service"
)

type EmployeeHandler struct {
	base
	empService service.EmployeeService
}

func NewEmployeeHandler(empService service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		base:       newBase(logger),
		empService: empService,
	}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.EmployeeListQuery{
		DepartmentID: q.Get("department_id"),
		Unassigned:   q.Get("unassigned") == "true",
		Query:        q.Get("q"),
	}
	if !h.validate(w, &query) {
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponses(h.empService.List(r.Context(), &query)))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	emp, err := h.empService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.empService.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req dto.MoveEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Move(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *EmployeeHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportEmployeesRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.empService.Import(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toImportResponse(result))
}

// ImportCSV принимает CSV файл в теле запроса (text/csv)
func (h *EmployeeHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.empService.ImportCSV(r.Context(), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCSV) && result != nil {
			h.respondJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
				Error:   "invalid csv",
				Message: err.Error(),
				Details: result.Errors,
			})
			return
		}
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toImportResponse(result))
}

func toImportResponse(result *service.ImportResult) dto.ImportResponse {
	return dto.ImportResponse{
		Imported:  len(result.Employees),
		Employees: toEmployeeResponses(result.Employees),
		Errors:    result.Errors,
	}
}
