package works

import (
	"context"
	"errors"
)

var (
	ErrDivisionNotFound  = errors.New("division not found")
	ErrWorkNotFound      = errors.New("work not found")
	ErrQuotationNotFound = errors.New("quotation not found")
	ErrInvalidStatus     = errors.New("invalid work status")
)

// Store handles persistence for divisions, works and quotations.
type Store interface {
	ListDivisions(ctx context.Context) ([]Division, error)
	GetDivisionByCode(ctx context.Context, code string) (*Division, error)
	InsertDivision(ctx context.Context, d Division) error

	ListWorks(ctx context.Context) ([]Work, error)
	GetWork(ctx context.Context, id string) (*Work, error)
	InsertWork(ctx context.Context, w Work) error
	UpdateWork(ctx context.Context, w Work) error
	DeleteWork(ctx context.Context, id string) error

	ListQuotations(ctx context.Context) ([]Quotation, error)
	InsertQuotation(ctx context.Context, q Quotation) error
	CountQuotations(ctx context.Context) (int, error)
}
