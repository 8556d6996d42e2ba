package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrRequestNotFound        = errors.New("request not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrDuplicateUsername      = errors.New("user with this username already exists")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrNotAuthenticated       = errors.New("no user is logged in")
	ErrMaxDepthExceeded       = errors.New("department hierarchy cannot be deeper than 3 levels")
	ErrDepartmentNotEmpty     = errors.New("department has employees or child departments")
	ErrSelfReference          = errors.New("department cannot be its own parent")
	ErrCyclicReference        = errors.New("moving department would create a cycle")
	ErrInvalidCSV             = errors.New("invalid csv")
)
