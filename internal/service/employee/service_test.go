package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/employee"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	order     []string
	listErr   error
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]employee.Employee, 0, len(f.order))
	for _, id := range f.order {
		if e, ok := f.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, e := range f.employees {
		if e.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	e.CreatedAt = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	e.UpdatedAt = e.CreatedAt
	f.employees[e.ID] = e
	f.order = append(f.order, e.ID)
	return e, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

func TestCreateEmployee(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	dept := "Support"
	got, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		Username: "  ali.khan ", Name: "Ali Khan", Department: &dept,
	})
	require.NoError(t, err)

	assert.True(t, validator.IsValidUUID(got.ID), got.ID)
	assert.Equal(t, "ali.khan", got.Username)
	assert.Equal(t, "2024-01-10T09:00:00Z", got.CreatedAt)
	require.NotNil(t, got.Department)
	assert.Equal(t, "Support", *got.Department)

	fetched, err := svc.GetEmployee(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, got, fetched)
}

func TestCreateEmployee_DuplicateUsername(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{Username: "sara", Name: "Sara"})
	require.NoError(t, err)

	_, err = svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{Username: "sara", Name: "Sara Again"})
	assert.ErrorIs(t, err, employee.ErrUsernameExists)
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	cases := []struct {
		name  string
		req   employee.CreateEmployeeRequest
		field string
	}{
		{"missing username", employee.CreateEmployeeRequest{Name: "Ali"}, "username"},
		{"username with spaces", employee.CreateEmployeeRequest{Username: "ali khan", Name: "Ali"}, "username"},
		{"missing name", employee.CreateEmployeeRequest{Username: "ali"}, "name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateEmployee(context.Background(), tc.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tc.field)
		})
	}
}

func TestListEmployees(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	empty, err := svc.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, u := range []string{"ali.khan", "sara"} {
		_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{Username: u, Name: u})
		require.NoError(t, err)
	}

	list, err := svc.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ali.khan", list[0].Username)

	repo.listErr = errors.New("pool closed")
	_, err = svc.ListEmployees(context.Background())
	assert.ErrorContains(t, err, "pool closed")
}

func TestGetAndDeleteEmployee_InvalidID(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	_, err := svc.GetEmployee(context.Background(), "42")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	err = svc.DeleteEmployee(context.Background(), "42")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	created, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{Username: "omar", Name: "Omar"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteEmployee(context.Background(), created.ID), employee.ErrEmployeeNotFound)
}
