package employee

import (
	"time"
)

// Employee is one roster entry. Username is the identifier monitoring
// agents report idle logs and auto-breaks under.
type Employee struct {
	ID         string
	Username   string
	Name       string
	Department *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}
