package employee

import "context"

type EmployeeRepository interface {
	// List returns the active roster ordered by name, then username.
	List(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// Delete soft deletes the employee. Their logs are kept.
	Delete(ctx context.Context, id string) error
}
