package dto

import (
	"time"
)

// CreateDepartmentRequest - запрос на создание подразделения.
// Уровень вычисляется по родителю.
type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	ParentID    *string `json:"parent_id" validate:"omitempty,min=1"`
}

// UpdateDepartmentRequest - запрос на обновление подразделения
type UpdateDepartmentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// MoveDepartmentRequest - перенос подразделения; parent_id = null делает его корневым
type MoveDepartmentRequest struct {
	ParentID *string `json:"parent_id" validate:"omitempty,min=1"`
}

// TopEmployeesQuery - параметры рейтинга сотрудников
type TopEmployeesQuery struct {
	N int `validate:"min=1,max=100"`
}

// CreateEmployeeRequest - запрос на создание сотрудника.
// Без rating при создании назначается случайный рейтинг 1-5.
type CreateEmployeeRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=100"`
	Surname      string   `json:"surname" validate:"required,min=1,max=100"`
	Position     string   `json:"position" validate:"required,min=1,max=200"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"max=50"`
	PhotoURL     string   `json:"photo_url" validate:"omitempty,url"`
	Description  string   `json:"description" validate:"max=2000"`
	Rating       *int     `json:"rating" validate:"omitempty,min=0,max=5"`
	Skills       []string `json:"skills" validate:"dive,min=1,max=100"`
	DepartmentID *string  `json:"department_id" validate:"omitempty,min=1"`
}

// UpdateEmployeeRequest - частичное обновление сотрудника.
// department_id = "" снимает сотрудника с подразделения.
type UpdateEmployeeRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Surname      *string  `json:"surname" validate:"omitempty,min=1,max=100"`
	Position     *string  `json:"position" validate:"omitempty,min=1,max=200"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Phone        *string  `json:"phone" validate:"omitempty,max=50"`
	PhotoURL     *string  `json:"photo_url" validate:"omitempty,url"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
	Rating       *int     `json:"rating" validate:"omitempty,min=0,max=5"`
	Skills       []string `json:"skills" validate:"omitempty,dive,min=1,max=100"`
	DepartmentID *string  `json:"department_id"`
}

// MoveEmployeeRequest - перевод сотрудника; department_id = null или "" снимает с подразделения
type MoveEmployeeRequest struct {
	DepartmentID *string `json:"department_id"`
}

// ImportEmployeesRequest - пакетный импорт уже разобранных строк
type ImportEmployeesRequest struct {
	Employees []CreateEmployeeRequest `json:"employees" validate:"required,min=1,max=1000,dive"`
}

// EmployeeListQuery - фильтры списка сотрудников
type EmployeeListQuery struct {
	DepartmentID string
	Unassigned   bool
	Query        string `validate:"max=200"`
}

// ImportResponse - итог импорта
type ImportResponse struct {
	Imported  int                `json:"imported"`
	Employees []EmployeeResponse `json:"employees"`
	Errors    []string           `json:"errors,omitempty"`
}

// DepartmentResponse - ответ с данными подразделения
type DepartmentResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Level       int                  `json:"level"`
	ParentID    *string              `json:"parent_id"`
	Employees   []EmployeeResponse   `json:"employees"`
	Children    []DepartmentResponse `json:"children,omitempty"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Surname      string   `json:"surname"`
	FullName     string   `json:"full_name"`
	Position     string   `json:"position"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	PhotoURL     string   `json:"photo_url,omitempty"`
	Description  string   `json:"description,omitempty"`
	Rating       int      `json:"rating"`
	Skills       []string `json:"skills"`
	DepartmentID *string  `json:"department_id"`
}

// CreateRequestRequest - новая заявка. Без type тип определяется по тексту.
type CreateRequestRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Type        string `json:"type" validate:"omitempty,oneof=IT HR LOGISTICS"`
}

// UpdateRequestStatusRequest - смена статуса заявки
type UpdateRequestStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=NEW IN_PROGRESS COMPLETED REJECTED"`
}

// AssignRequestRequest - назначение заявки
type AssignRequestRequest struct {
	DepartmentID string `json:"department_id" validate:"required"`
	EmployeeID   string `json:"employee_id"`
}

// AddCommentRequest - комментарий к заявке
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// ClassifyRequest - текст для классификации
type ClassifyRequest struct {
	Title       string `json:"title" validate:"required_without=Description,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

// RequestListQuery - фильтры списка заявок
type RequestListQuery struct {
	Status       string `validate:"omitempty,oneof=NEW IN_PROGRESS COMPLETED REJECTED"`
	Type         string `validate:"omitempty,oneof=IT HR LOGISTICS"`
	DepartmentID string
	Query        string `validate:"max=200"`
}

// ClassificationResponse - результат классификации
type ClassificationResponse struct {
	Classified bool    `json:"classified"`
	Type       string  `json:"type,omitempty"`
	Confidence float64 `json:"confidence"`
}

// RequestResponse - ответ с данными заявки
type RequestResponse struct {
	ID                     string            `json:"id"`
	Title                  string            `json:"title"`
	Description            string            `json:"description"`
	Type                   string            `json:"type"`
	Status                 string            `json:"status"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
	CreatedByID            string            `json:"created_by_id"`
	AssignedToDepartmentID string            `json:"assigned_to_department_id"`
	AssignedToEmployeeID   string            `json:"assigned_to_employee_id,omitempty"`
	Comments               []CommentResponse `json:"comments"`
}

// CommentResponse - комментарий к заявке
type CommentResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  string    `json:"author_id"`
	RequestID string    `json:"request_id"`
}

// CreateRecommendationRequest - ручное добавление рекомендации
type CreateRecommendationRequest struct {
	Type               string `json:"type" validate:"required,oneof=EMPLOYEE_DISTRIBUTION WORKLOAD_PREDICTION"`
	Description        string `json:"description" validate:"required,min=1,max=2000"`
	TargetDepartmentID string `json:"target_department_id" validate:"required"`
}

// GenerateRecommendationRequest - генерация типовой рекомендации для подразделения
type GenerateRecommendationRequest struct {
	Type               string `json:"type" validate:"required,oneof=EMPLOYEE_DISTRIBUTION WORKLOAD_PREDICTION"`
	TargetDepartmentID string `json:"target_department_id" validate:"required"`
}

// RecommendationResponse - ответ с данными рекомендации
type RecommendationResponse struct {
	ID                 string    `json:"id"`
	Type               string    `json:"type"`
	Description        string    `json:"description"`
	TargetDepartmentID string    `json:"target_department_id"`
	CreatedAt          time.Time `json:"created_at"`
	Implemented        bool      `json:"implemented"`
}

// RegisterRequest - регистрация пользователя
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
}

// LoginRequest - вход пользователя
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse - данные пользователя без хэша пароля
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}
