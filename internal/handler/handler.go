package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
)

// maxBodyBytes ограничивает размер тела запроса, включая CSV
const maxBodyBytes = 4 << 20

// base содержит общие для всех хендлеров ответы и разбор тела
type base struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newBase(logger *slog.Logger) base {
	return base{
		validator: validator.New(),
		logger:    logger,
	}
}

// decode читает JSON тело и валидирует его; при ошибке ответ уже отправлен
func (h *base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return h.validate(w, dst)
}

func (h *base) validate(w http.ResponseWriter, v any) bool {
	if err := h.validator.Struct(v); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}
	return true
}

func (h *base) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDepartmentNotFound):
		h.respondError(w, http.StatusNotFound, "department not found", "")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrRequestNotFound):
		h.respondError(w, http.StatusNotFound, "request not found", "")
	case errors.Is(err, domain.ErrRecommendationNotFound):
		h.respondError(w, http.StatusNotFound, "recommendation not found", "")
	case errors.Is(err, domain.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, "user not found", "")
	case errors.Is(err, domain.ErrDuplicateUsername):
		h.respondError(w, http.StatusConflict, "user with this username already exists", "")
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, "invalid username or password", "")
	case errors.Is(err, domain.ErrNotAuthenticated):
		h.respondError(w, http.StatusUnauthorized, "no user is logged in", "")
	case errors.Is(err, domain.ErrMaxDepthExceeded):
		h.respondError(w, http.StatusUnprocessableEntity, "department hierarchy cannot be deeper than 3 levels", "")
	case errors.Is(err, domain.ErrDepartmentNotEmpty):
		h.respondError(w, http.StatusConflict, "department has employees or child departments", "")
	case errors.Is(err, domain.ErrSelfReference):
		h.respondError(w, http.StatusBadRequest, "department cannot be its own parent", "")
	case errors.Is(err, domain.ErrCyclicReference):
		h.respondError(w, http.StatusConflict, "moving department would create a cycle", "")
	case errors.Is(err, domain.ErrInvalidCSV):
		h.respondError(w, http.StatusUnprocessableEntity, "invalid csv", err.Error())
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *base) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *base) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	h.respondJSON(w, status, dto.ErrorResponse{Error: errMsg, Message: details})
}
