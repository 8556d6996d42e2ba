package handler

import (
	"log/slog"
	"net/http"

	"github.com/org-structure-manager/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers - набор хендлеров API
type Handlers struct {
	Departments     *DepartmentHandler
	Employees       *EmployeeHandler
	Requests        *RequestHandler
	Recommendations *RecommendationHandler
	Auth            *AuthHandler
}

// Router настраивает маршруты API
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	handlers Handlers
}

// NewRouter создаёт новый роутер
func NewRouter(handlers Handlers, logger *slog.Logger) *Router {
	return &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		handlers: handlers,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	dept := r.handlers.Departments
	r.mux.HandleFunc("GET /departments", dept.Tree)
	r.mux.HandleFunc("POST /departments", dept.Create)
	r.mux.HandleFunc("GET /departments/flat", dept.Flat)
	r.mux.HandleFunc("GET /departments/{id}", dept.GetByID)
	r.mux.HandleFunc("PATCH /departments/{id}", dept.Update)
	r.mux.HandleFunc("DELETE /departments/{id}", dept.Delete)
	r.mux.HandleFunc("POST /departments/{id}/move", dept.Move)
	r.mux.HandleFunc("GET /departments/{id}/top-employees", dept.TopEmployees)

	emp := r.handlers.Employees
	r.mux.HandleFunc("GET /employees", emp.List)
	r.mux.HandleFunc("POST /employees", emp.Create)
	r.mux.HandleFunc("POST /employees/import", emp.Import)
	r.mux.HandleFunc("POST /employees/import/csv", emp.ImportCSV)
	r.mux.HandleFunc("GET /employees/{id}", emp.GetByID)
	r.mux.HandleFunc("PATCH /employees/{id}", emp.Update)
	r.mux.HandleFunc("DELETE /employees/{id}", emp.Delete)
	r.mux.HandleFunc("POST /employees/{id}/move", emp.Move)

	req := r.handlers.Requests
	r.mux.HandleFunc("GET /requests", req.List)
	r.mux.HandleFunc("POST /requests", req.Create)
	r.mux.HandleFunc("POST /requests/classify", req.Classify)
	r.mux.HandleFunc("GET /requests/{id}", req.GetByID)
	r.mux.HandleFunc("POST /requests/{id}/status", req.UpdateStatus)
	r.mux.HandleFunc("POST /requests/{id}/assign", req.Assign)
	r.mux.HandleFunc("POST /requests/{id}/comments", req.AddComment)

	rec := r.handlers.Recommendations
	r.mux.HandleFunc("GET /recommendations", rec.List)
	r.mux.HandleFunc("POST /recommendations", rec.Create)
	r.mux.HandleFunc("POST /recommendations/generate", rec.Generate)
	r.mux.HandleFunc("POST /recommendations/{id}/implement", rec.Implement)

	auth := r.handlers.Auth
	r.mux.HandleFunc("POST /auth/register", auth.Register)
	r.mux.HandleFunc("POST /auth/login", auth.Login)
	r.mux.HandleFunc("POST /auth/logout", auth.Logout)
	r.mux.HandleFunc("GET /auth/me", auth.Me)

	// Health check
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Metrics(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	// /metrics отдаёт text/plain, поэтому регистрируется поверх JSON middleware
	root := http.NewServeMux()
	root.Handle("GET /metrics", promhttp.Handler())
	root.Handle("/", handler)

	return root
}
