package domain

import (
	"time"
)

// Уровни иерархии: служба → отдел → группа
const (
	LevelService    = 1
	LevelDepartment = 2
	LevelGroup      = 3

	MaxDepth = LevelGroup
)

// Department представляет подразделение организации.
// Employees и ChildDepartments заполняются проекцией дерева и не хранятся в узле напрямую.
type Department struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Level            int          `json:"level"`
	ParentID         *string      `json:"parentId"`
	Employees        []Employee   `json:"employees"`
	ChildDepartments []Department `json:"childDepartments"`
}

// DepartmentPatch - частичное обновление подразделения
type DepartmentPatch struct {
	Name        *string
	Description *string
}

// Employee представляет сотрудника
type Employee struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Surname      string   `json:"surname"`
	FullName     string   `json:"fullName"`
	Position     string   `json:"position"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	PhotoURL     string   `json:"photoUrl,omitempty"`
	Description  string   `json:"description,omitempty"`
	Rating       int      `json:"rating"`
	Skills       []string `json:"skills"`
	DepartmentID *string  `json:"departmentId"`
}

// NewEmployee - данные для создания сотрудника. Rating == nil означает "не указан".
type NewEmployee struct {
	Name         string
	Surname      string
	Position     string
	Email        string
	Phone        string
	PhotoURL     string
	Description  string
	Rating       *int
	Skills       []string
	DepartmentID *string
}

// EmployeePatch - частичное обновление сотрудника.
// DepartmentID != nil означает перевод: пустая строка снимает сотрудника с подразделения.
type EmployeePatch struct {
	Name         *string
	Surname      *string
	Position     *string
	Email        *string
	Phone        *string
	PhotoURL     *string
	Description  *string
	Rating       *int
	Skills       []string
	DepartmentID *string
}

// ComposeFullName собирает полное имя из имени и фамилии
func ComposeFullName(name, surname string) string {
	return name + " " + surname
}

// RequestType - тип заявки
type RequestType string

const (
	RequestTypeIT        RequestType = "IT"
	RequestTypeHR        RequestType = "HR"
	RequestTypeLogistics RequestType = "LOGISTICS"
)

// RequestTypes перечисляет типы заявок в порядке приоритета классификатора
var RequestTypes = []RequestType{RequestTypeIT, RequestTypeHR, RequestTypeLogistics}

// RequestStatus - статус заявки
type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "NEW"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusCompleted  RequestStatus = "COMPLETED"
	RequestStatusRejected   RequestStatus = "REJECTED"
)

// Request - заявка в службу
type Request struct {
	ID                     string        `json:"id"`
	Title                  string        `json:"title"`
	Description            string        `json:"description"`
	Type                   RequestType   `json:"type"`
	Status                 RequestStatus `json:"status"`
	CreatedAt              time.Time     `json:"createdAt"`
	UpdatedAt              time.Time     `json:"updatedAt"`
	CreatedByID            string        `json:"createdById"`
	AssignedToDepartmentID string        `json:"assignedToDepartmentId"`
	AssignedToEmployeeID   string        `json:"assignedToEmployeeId,omitempty"`
	Comments               []Comment     `json:"comments"`
}

// Comment - комментарий к заявке
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	AuthorID  string    `json:"authorId"`
	RequestID string    `json:"requestId"`
}

// RecommendationType - тип рекомендации по оптимизации
type RecommendationType string

const (
	RecommendationEmployeeDistribution RecommendationType = "EMPLOYEE_DISTRIBUTION"
	RecommendationWorkloadPrediction   RecommendationType = "WORKLOAD_PREDICTION"
)

// Recommendation - рекомендация по оптимизации подразделения
type Recommendation struct {
	ID                 string             `json:"id"`
	Type               RecommendationType `json:"type"`
	Description        string             `json:"description"`
	TargetDepartmentID string             `json:"targetDepartmentId"`
	CreatedAt          time.Time          `json:"createdAt"`
	Implemented        bool               `json:"implemented"`
}

// Role - роль пользователя
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User - учётная запись пользователя
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Snapshot - полное состояние хранилища, сохраняемое одним документом
type Snapshot struct {
	Departments     []Department     `json:"departments"`
	Employees       []Employee       `json:"employees"`
	Requests        []Request        `json:"requests"`
	Recommendations []Recommendation `json:"recommendations"`
	Users           []User           `json:"users"`
	CurrentUserID   *string          `json:"currentUserId"`
}
