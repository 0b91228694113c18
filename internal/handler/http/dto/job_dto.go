package dto

import (
	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

type CreateJobRequest struct {
	Title         string  `json:"title" binding:"required,notblank,max=200"`
	Description   string  `json:"description" binding:"max=5000"`
	Location      string  `json:"location" binding:"max=200"`
	Salary        float64 `json:"salary" binding:"gte=0"`
	WorkersNeeded int     `json:"workers_needed" binding:"required,gte=1"`
}

func (r CreateJobRequest) ToInput() usecasecontract.CreateJobInput {
	return usecasecontract.CreateJobInput{
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		Salary:        r.Salary,
		WorkersNeeded: r.WorkersNeeded,
	}
}

// JobListQuery is bound from the query string of the job board.
type JobListQuery struct {
	Page      int      `form:"page" binding:"omitempty,gte=1"`
	PageSize  int      `form:"page_size" binding:"omitempty,gte=1,lte=100"`
	Query     string   `form:"q"`
	Location  string   `form:"location"`
	MinSalary *float64 `form:"min_salary" binding:"omitempty,gte=0"`
	MaxSalary *float64 `form:"max_salary" binding:"omitempty,gte=0"`
	Employer  string   `form:"employer_id"`
}

func (q JobListQuery) ToFilter() *contract.JobFilterOptions {
	return &contract.JobFilterOptions{
		Page:       q.Page,
		PageSize:   q.PageSize,
		Query:      q.Query,
		Location:   q.Location,
		MinSalary:  q.MinSalary,
		MaxSalary:  q.MaxSalary,
		EmployerID: q.Employer,
	}
}

// JobListResponse is one page of the job board.
type JobListResponse struct {
	Jobs       []entity.Job `json:"jobs"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
}

type SetHiredRequest struct {
	Hired *bool `json:"hired" binding:"required"`
}

type ToggleSavedRequest struct {
	CurrentlySaved bool `json:"currently_saved"`
}

type ApplyResponse struct {
	JobID  string `json:"job_id"`
	Result string `json:"result"`
}

type SavedResponse struct {
	JobID string `json:"job_id"`
	Saved bool   `json:"saved"`
}

type HiredCountResponse struct {
	JobID      string `json:"job_id"`
	HiredCount int    `json:"hired_count"`
}
