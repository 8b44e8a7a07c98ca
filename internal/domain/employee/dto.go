package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Department *string `json:"department,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	} else if !validator.IsValidUsername(r.Username) {
		errs.Add("username", "username must be 2-64 characters of letters, digits, '.', '_', '-', '@' or '\\'")
	}

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	if r.Department != nil && len(*r.Department) > 255 {
		errs.Add("department", "department must not exceed 255 characters")
	}

	return errs.Err()
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Department *string `json:"department,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// ToResponse maps the entity to its API shape.
func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Username:   e.Username,
		Name:       e.Name,
		Department: e.Department,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
