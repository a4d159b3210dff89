package org

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	employees []Employee
	positions map[string]Position
}

func newFakeStore() *fakeStore {
	return &fakeStore{positions: make(map[string]Position)}
}

func (f *fakeStore) ListEmployees(context.Context) ([]Employee, error) {
	return append([]Employee(nil), f.employees...), nil
}

func (f *fakeStore) InsertEmployee(_ context.Context, e Employee) error {
	f.employees = append(f.employees, e)
	return nil
}

func (f *fakeStore) UpdateEmployee(_ context.Context, e Employee) error {
	for i := range f.employees {
		if f.employees[i].ID == e.ID {
			f.employees[i] = e
			return nil
		}
	}
	return ErrEmployeeNotFound
}

func (f *fakeStore) ListPositions(context.Context) ([]Position, error) {
	out := make([]Position, 0, len(f.positions))
	for _, p := range f.positions {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) UpsertPosition(_ context.Context, p Position) error {
	f.positions[p.ID] = p
	return nil
}

func TestCreateEmployee_DefaultsActive(t *testing.T) {
	svc := NewService(newFakeStore())

	e, err := svc.CreateEmployee(context.Background(), EmployeeInput{
		Name: "Anita Rao", Email: "anita@ubce.test", Role: "Site Engineer",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.True(t, e.Active)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestHierarchy_SortedByPositionOrder(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) }

	// Inserted out of order on purpose.
	for _, p := range []struct {
		name  string
		order int
	}{
		{"Site Engineer", 3},
		{"Managing Director", 1},
		{"Assistant Director", 2},
	} {
		_, err := svc.AssignPosition(context.Background(), "", p.name, p.order, "")
		require.NoError(t, err)
	}

	positions, err := svc.Hierarchy(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 3)

	assert.Equal(t, "Managing Director", positions[0].PositionName)
	assert.Equal(t, "Assistant Director", positions[1].PositionName)
	assert.Equal(t, "Site Engineer", positions[2].PositionName)
}

func TestAssignPosition_UpsertsExistingRung(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	p, err := svc.AssignPosition(context.Background(), "", "Director", 1, "")
	require.NoError(t, err)

	// Re-assign the same rung to an employee.
	updated, err := svc.AssignPosition(context.Background(), p.ID, "Director", 1, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)

	positions, err := svc.Hierarchy(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "emp-1", positions[0].EmployeeID)
}
