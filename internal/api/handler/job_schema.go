package handler

import (
	"encoding/json"
	"time"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Picture  string `json:"picture"  validate:"omitempty,url"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createJobRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Company     string   `json:"company"     validate:"required"`
	Location    string   `json:"location"`
	Salary      *float64 `json:"salary"      validate:"omitempty,gte=0"`
	Description string   `json:"description"`
}

// updateJobRequest carries a partial update; absent fields stay untouched
// and "salary": null removes the salary.
type updateJobRequest struct {
	Title       *string       `json:"title"`
	Company     *string       `json:"company"`
	Location    *string       `json:"location"`
	Salary      nullableFloat `json:"salary"`
	Description *string       `json:"description"`
}

// nullableFloat tells an explicit JSON null apart from an absent field.
type nullableFloat struct {
	Set   bool
	Value *float64
}

func (n *nullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// --- Response types ---

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type jobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Salary      *float64  `json:"salary,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type listJobsResponse struct {
	Success bool          `json:"success"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	Skip    int           `json:"skip"`
	Data    []jobResponse `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}
