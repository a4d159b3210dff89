/*
Package org holds the organizational records: the employee roster and the
ordered position hierarchy. Both are role-gated administrative views; there
is no derived computation here beyond ordering.
*/
package org

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrPositionNotFound = errors.New("position not found")
)

// Employee is a roster record.
type Employee struct {
	ID         string
	Name       string
	Email      string
	Role       string
	DivisionID string
	Phone      string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Position is one rung of the org hierarchy, ordered top-down.
type Position struct {
	ID            string
	PositionName  string
	PositionOrder int
	EmployeeID    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Store handles persistence for employees and positions.
type Store interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	InsertEmployee(ctx context.Context, e Employee) error
	UpdateEmployee(ctx context.Context, e Employee) error

	ListPositions(ctx context.Context) ([]Position, error)
	UpsertPosition(ctx context.Context, p Position) error
}

// Service exposes roster and hierarchy operations.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

// EmployeeInput is the caller-supplied part of a roster record.
type EmployeeInput struct {
	Name       string
	Email      string
	Role       string
	DivisionID string
	Phone      string
}

func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (*Employee, error) {
	now := s.now()
	e := Employee{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.Role,
		DivisionID: in.DivisionID,
		Phone:      in.Phone,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.InsertEmployee(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Hierarchy returns the positions sorted by their order.
func (s *Service) Hierarchy(ctx context.Context) ([]Position, error) {
	positions, err := s.store.ListPositions(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].PositionOrder < positions[j].PositionOrder
	})
	return positions, nil
}

// AssignPosition creates or updates a rung of the hierarchy.
func (s *Service) AssignPosition(ctx context.Context, id, name string, order int, employeeID string) (*Position, error) {
	now := s.now()
	if id == "" {
		id = uuid.NewString()
	}
	p := Position{
		ID:            id,
		PositionName:  name,
		PositionOrder: order,
		EmployeeID:    employeeID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.UpsertPosition(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}
