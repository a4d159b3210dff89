package works

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ubce/backoffice/money"
)

// Service exposes the consultancy works operations.
type Service struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("component", "works").Logger(),
		now:   time.Now,
	}
}

func (s *Service) ListDivisions(ctx context.Context) ([]Division, error) {
	return s.store.ListDivisions(ctx)
}

func (s *Service) CreateDivision(ctx context.Context, name, code, description string) (*Division, error) {
	d := Division{
		ID:          uuid.NewString(),
		Name:        name,
		Code:        code,
		Description: description,
		CreatedAt:   s.now(),
	}
	if err := s.store.InsertDivision(ctx, d); err != nil {
		return nil, err
	}
	return &d, nil
}

// WorkInput is the caller-supplied part of a consultancy work.
type WorkInput struct {
	UBQN            string
	DivisionID      string
	WorkName        string
	ClientName      string
	ConsultancyCost money.Amount
	Status          WorkStatus
	Subcategory     string
	OrderNo         string
	OrderDate       *time.Time
	InvoiceNo       string
}

func (s *Service) CreateWork(ctx context.Context, in WorkInput) (*Work, error) {
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	now := s.now()
	w := Work{
		ID:              uuid.NewString(),
		UBQN:            in.UBQN,
		DivisionID:      in.DivisionID,
		WorkName:        in.WorkName,
		ClientName:      in.ClientName,
		ConsultancyCost: in.ConsultancyCost.Sanitize(),
		Status:          in.Status,
		Subcategory:     in.Subcategory,
		OrderNo:         in.OrderNo,
		OrderDate:       in.OrderDate,
		InvoiceNo:       in.InvoiceNo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.InsertWork(ctx, w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Service) GetWork(ctx context.Context, id string) (*Work, error) {
	return s.store.GetWork(ctx, id)
}

// UpdateWork replaces the editable fields of a work.
func (s *Service) UpdateWork(ctx context.Context, id string, in WorkInput) (*Work, error) {
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	w, err := s.store.GetWork(ctx, id)
	if err != nil {
		return nil, err
	}
	w.UBQN = in.UBQN
	w.DivisionID = in.DivisionID
	w.WorkName = in.WorkName
	w.ClientName = in.ClientName
	w.ConsultancyCost = in.ConsultancyCost.Sanitize()
	w.Status = in.Status
	w.Subcategory = in.Subcategory
	w.OrderNo = in.OrderNo
	w.OrderDate = in.OrderDate
	w.InvoiceNo = in.InvoiceNo
	w.UpdatedAt = s.now()

	if err := s.store.UpdateWork(ctx, *w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) DeleteWork(ctx context.Context, id string) error {
	if err := s.store.DeleteWork(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("work", id).Msg("work deleted")
	return nil
}

// ListWorks returns the roster, optionally narrowed by division code and
// status ("" or "all" match everything). An unknown division code is
// ErrDivisionNotFound.
func (s *Service) ListWorks(ctx context.Context, divisionCode, status string) ([]Work, error) {
	divisionID := ""
	if divisionCode != "" && divisionCode != "all" {
		d, err := s.store.GetDivisionByCode(ctx, divisionCode)
		if err != nil {
			return nil, err
		}
		divisionID = d.ID
	}
	all, err := s.store.ListWorks(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(all, divisionID, status), nil
}

// Dashboard returns one summary per division over the full roster.
func (s *Service) Dashboard(ctx context.Context) ([]DivisionSummary, error) {
	divisions, err := s.store.ListDivisions(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.store.ListWorks(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(divisions, all), nil
}

// =============================================================================
// QUOTATION REGISTRY
// =============================================================================

// QuotationInput is the caller-supplied part of a registry entry.
type QuotationInput struct {
	Section         string
	QuotationDate   time.Time
	ClientName      string
	Subject         string
	ConsultancyCost money.Amount
	DivisionID      string
}

// RegisterQuotation assigns the next UBQN serial and records the entry.
func (s *Service) RegisterQuotation(ctx context.Context, in QuotationInput) (*Quotation, error) {
	n, err := s.store.CountQuotations(ctx)
	if err != nil {
		return nil, err
	}

	q := Quotation{
		ID:              uuid.NewString(),
		UBQN:            fmt.Sprintf("UBQN %04d", n+1),
		Section:         in.Section,
		QuotationDate:   in.QuotationDate,
		ClientName:      in.ClientName,
		Subject:         in.Subject,
		ConsultancyCost: in.ConsultancyCost.Sanitize(),
		DivisionID:      in.DivisionID,
		VersionNo:       1,
		CreatedAt:       s.now(),
	}
	if err := s.store.InsertQuotation(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info().Str("ubqn", q.UBQN).Msg("quotation registered")
	return &q, nil
}

func (s *Service) ListQuotations(ctx context.Context) ([]Quotation, error) {
	return s.store.ListQuotations(ctx)
}
