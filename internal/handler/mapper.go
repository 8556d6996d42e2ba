package handler

import (
	"github.com/org-structure-manager/internal/domain"
	"github.com/org-structure-manager/internal/dto"
)

func toDepartmentResponse(dept *domain.Department) dto.DepartmentResponse {
	resp := dto.DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		Description: dept.Description,
		Level:       dept.Level,
		ParentID:    dept.ParentID,
		Employees:   toEmployeeResponses(dept.Employees),
	}

	if len(dept.ChildDepartments) > 0 {
		resp.Children = make([]dto.DepartmentResponse, len(dept.ChildDepartments))
		for i := range dept.ChildDepartments {
			resp.Children[i] = toDepartmentResponse(&dept.ChildDepartments[i])
		}
	}

	return resp
}

func toDepartmentResponses(depts []domain.Department) []dto.DepartmentResponse {
	resp := make([]dto.DepartmentResponse, len(depts))
	for i := range depts {
		resp[i] = toDepartmentResponse(&depts[i])
	}
	return resp
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	skills := emp.Skills
	if skills == nil {
		skills = []string{}
	}
	return dto.EmployeeResponse{
		ID:           emp.ID,
		Name:         emp.Name,
		Surname:      emp.Surname,
		FullName:     emp.FullName,
		Position:     emp.Position,
		Email:        emp.Email,
		Phone:        emp.Phone,
		PhotoURL:     emp.PhotoURL,
		Description:  emp.Description,
		Rating:       emp.Rating,
		Skills:       skills,
		DepartmentID: emp.DepartmentID,
	}
}

func toEmployeeResponses(emps []domain.Employee) []dto.EmployeeResponse {
	resp := make([]dto.EmployeeResponse, len(emps))
	for i := range emps {
		resp[i] = toEmployeeResponse(&emps[i])
	}
	return resp
}

func toRequestResponse(req *domain.Request) dto.RequestResponse {
	comments := make([]dto.CommentResponse, len(req.Comments))
	for i := range req.Comments {
		comments[i] = toCommentResponse(&req.Comments[i])
	}
	return dto.RequestResponse{
		ID:                     req.ID,
		Title:                  req.Title,
		Description:            req.Description,
		Type:                   string(req.Type),
		Status:                 string(req.Status),
		CreatedAt:              req.CreatedAt,
		UpdatedAt:              req.UpdatedAt,
		CreatedByID:            req.CreatedByID,
		AssignedToDepartmentID: req.AssignedToDepartmentID,
		AssignedToEmployeeID:   req.AssignedToEmployeeID,
		Comments:               comments,
	}
}

func toCommentResponse(c *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		AuthorID:  c.AuthorID,
		RequestID: c.RequestID,
	}
}

func toRecommendationResponse(rec *domain.Recommendation) dto.RecommendationResponse {
	return dto.RecommendationResponse{
		ID:                 rec.ID,
		Type:               string(rec.Type),
		Description:        rec.Description,
		TargetDepartmentID: rec.TargetDepartmentID,
		CreatedAt:          rec.CreatedAt,
		Implemented:        rec.Implemented,
	}
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
