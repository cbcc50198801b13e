package handler

import (
	"github.com/99minutos/job-board/internal/core/domain"
	"github.com/99minutos/job-board/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Picture:  req.Picture,
	}
}

func toCreateJobInput(req createJobRequest) ports.CreateJobInput {
	return ports.CreateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Description: req.Description,
	}
}

func toJobPatch(req updateJobRequest) ports.JobPatch {
	return ports.JobPatch{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary.Value,
		ClearSalary: req.Salary.Set && req.Salary.Value == nil,
		Description: req.Description,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Picture:   u.Picture,
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func toUserListResponse(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Salary:      j.Salary,
		Description: j.Description,
		CreatedAt:   j.CreatedAt.UTC(),
	}
}

func toListJobsResponse(r *ports.ListJobsResult) listJobsResponse {
	data := make([]jobResponse, len(r.Items))
	for i, j := range r.Items {
		data[i] = toJobResponse(j)
	}
	return listJobsResponse{
		Success: true,
		Total:   r.Total,
		Page:    r.Page,
		Limit:   r.Limit,
		Skip:    r.Skip,
		Data:    data,
	}
}
