package dto

import "time"

type CreateJobRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Location    string     `json:"location" validate:"required"`
	Date        *time.Time `json:"date"`
	Category    string     `json:"category" validate:"required"`
	ContactInfo string     `json:"contact_info"`
}

type UpdateJobRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	Category    *string    `json:"category"`
	ContactInfo *string    `json:"contact_info"`
	Images      *[]string  `json:"images"`
	Status      *string    `json:"status" validate:"omitempty,is-job-status"`
}

type JobResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Date        *time.Time `json:"date,omitempty"`
	Category    string     `json:"category"`
	ContactInfo string     `json:"contact_info,omitempty"`
	Images      []string   `json:"images"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type JobListResponse struct {
	Jobs       []*JobResponse `json:"jobs"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}
