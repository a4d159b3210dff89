/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY FIELDS:
  Every monetary figure goes out twice: a numeric value for client-side math
  and a pre-formatted rupee string ("₹12,34,567") for display. Clients never
  re-derive the grouping.

VALIDATION:
  Validation is done in handlers and services, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - money/format.go: Rupee formatting
*/
package api

import (
	"time"

	"github.com/ubce/backoffice/ledger"
	"github.com/ubce/backoffice/money"
	"github.com/ubce/backoffice/org"
	"github.com/ubce/backoffice/thirdparty"
	"github.com/ubce/backoffice/works"
)

// MoneyDTO carries one monetary figure in both machine and display form.
type MoneyDTO struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

func moneyDTO(a money.Amount) MoneyDTO {
	return MoneyDTO{Value: a.Float64(), Display: money.Format(a)}
}

// signedMoneyDTO keeps the sign inside the display string ("₹+25,000").
func signedMoneyDTO(a money.Amount) MoneyDTO {
	return MoneyDTO{Value: a.Float64(), Display: money.FormatSigned(a)}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// AUTH
// =============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// =============================================================================
// THIRD-PARTY: CONTRACTORS, WORK ORDERS, PAYMENTS
// =============================================================================

type ContractorDTO struct {
	ID            string `json:"id"`
	UBID          string `json:"ub_id"`
	Name          string `json:"name"`
	Qualification string `json:"qualification,omitempty"`
	Category      string `json:"category"`
	AadharNumber  string `json:"aadhar_number,omitempty"`
	PANNumber     string `json:"pan_number,omitempty"`
	Age           int    `json:"age,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Mobile        string `json:"mobile,omitempty"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"address,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type CreateContractorRequest struct {
	Name          string `json:"name"`
	Qualification string `json:"qualification"`
	Category      string `json:"category"`
	AadharNumber  string `json:"aadhar_number"`
	PANNumber     string `json:"pan_number"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

type StageFlagDTO struct {
	Stage  int    `json:"stage"`
	Label  string `json:"label"`
	Status string `json:"status"`
	PaidAt string `json:"paid_at,omitempty"`
}

type WorkOrderDTO struct {
	ID             string         `json:"id"`
	ContractorID   string         `json:"contractor_id"`
	QtNo           string         `json:"qt_no"`
	WorkName       string         `json:"work_name"`
	ClientName     string         `json:"client_name,omitempty"`
	QuotedAmount   MoneyDTO       `json:"quoted_amount"`
	SanctionAmount MoneyDTO       `json:"sanction_amount"`
	Stages         []StageFlagDTO `json:"stages"`
	CreatedAt      string         `json:"created_at"`
}

type WorkOrderRequest struct {
	QtNo           string  `json:"qt_no"`
	WorkName       string  `json:"work_name"`
	ClientName     string  `json:"client_name"`
	QuotedAmount   float64 `json:"quoted_amount"`
	SanctionAmount float64 `json:"sanction_amount"`
}

type TransactionDTO struct {
	ID          string   `json:"id"`
	WorkID      string   `json:"work_id"`
	Stage       int      `json:"stage"`
	StageName   string   `json:"stage_name"`
	Amount      MoneyDTO `json:"amount"`
	PaymentDate string   `json:"payment_date"`
	Mode        string   `json:"mode"`
	Ref         string   `json:"ref,omitempty"`
	Remarks     string   `json:"remarks,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

type RecordPaymentRequest struct {
	Stage       int     `json:"stage"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"` // YYYY-MM-DD
	Mode        string  `json:"mode"`
	Ref         string  `json:"ref"`
	Remarks     string  `json:"remarks"`
}

// LedgerFiguresDTO is the computed financial position of one work order.
type LedgerFiguresDTO struct {
	TotalPaid       MoneyDTO `json:"total_paid"`
	ActiveStage     int      `json:"active_stage"`
	ActiveStageName string   `json:"active_stage_name"`
	RequiredAmount  MoneyDTO `json:"required_amount"`
	CurrentBalance  MoneyDTO `json:"current_balance"`
	NetBalance      MoneyDTO `json:"net_balance"`
	PendingAmount   MoneyDTO `json:"pending_amount"`
	AdvanceAmount   MoneyDTO `json:"advance_amount"`
}

type WorkLedgerDTO struct {
	Work         WorkOrderDTO     `json:"work"`
	Transactions []TransactionDTO `json:"transactions"`
	Figures      LedgerFiguresDTO `json:"figures"`
}

// AggregateDTO is a roll-up over several work orders.
type AggregateDTO struct {
	WorkCount       int      `json:"work_count"`
	TotalSanctioned MoneyDTO `json:"total_sanctioned"`
	TotalPaid       MoneyDTO `json:"total_paid"`
	TotalRequired   MoneyDTO `json:"total_required"`
	CurrentBalance  MoneyDTO `json:"current_balance"`
	TotalBalance    MoneyDTO `json:"total_balance"`
	PendingAmount   MoneyDTO `json:"pending_amount"`
	AdvanceAmount   MoneyDTO `json:"advance_amount"`
}

type ContractorSummaryDTO struct {
	Contractor ContractorDTO `json:"contractor"`
	Aggregate  AggregateDTO  `json:"aggregate"`
}

type GlobalSummaryDTO struct {
	Contractors []ContractorSummaryDTO `json:"contractors"`
	Aggregate   AggregateDTO           `json:"aggregate"`
}

// =============================================================================
// WORKS, DIVISIONS, QUOTATIONS
// =============================================================================

type DivisionDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

type CreateDivisionRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type WorkDTO struct {
	ID              string   `json:"id"`
	UBQN            string   `json:"ubqn"`
	DivisionID      string   `json:"division_id"`
	WorkName        string   `json:"work_name"`
	ClientName      string   `json:"client_name,omitempty"`
	ConsultancyCost MoneyDTO `json:"consultancy_cost"`
	Status          string   `json:"status"`
	Subcategory     string   `json:"subcategory,omitempty"`
	OrderNo         string   `json:"order_no,omitempty"`
	OrderDate       string   `json:"order_date,omitempty"`
	InvoiceNo       string   `json:"invoice_no,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

type WorkRequest struct {
	UBQN            string  `json:"ubqn"`
	DivisionID      string  `json:"division_id"`
	WorkName        string  `json:"work_name"`
	ClientName      string  `json:"client_name"`
	ConsultancyCost float64 `json:"consultancy_cost"`
	Status          string  `json:"status"`
	Subcategory     string  `json:"subcategory"`
	OrderNo         string  `json:"order_no"`
	OrderDate       string  `json:"order_date"` // YYYY-MM-DD
	InvoiceNo       string  `json:"invoice_no"`
}

type DivisionSummaryDTO struct {
	Division    DivisionDTO `json:"division"`
	TotalWorks  int         `json:"total_works"`
	Pipeline    int         `json:"pipeline"`
	Running     int         `json:"running"`
	Completed   int         `json:"completed"`
	RoadCount   int         `json:"road_count"`
	BridgeCount int         `json:"bridge_count"`
	TotalCost   MoneyDTO    `json:"total_cost"`
}

// DashboardDTO is the landing-page roll-up: per-division work summaries plus
// the third-party ledger aggregate.
type DashboardDTO struct {
	Divisions  []DivisionSummaryDTO `json:"divisions"`
	ThirdParty GlobalSummaryDTO     `json:"third_party"`
}

type QuotationDTO struct {
	ID              string   `json:"id"`
	UBQN            string   `json:"ubqn"`
	Section         string   `json:"section,omitempty"`
	QuotationDate   string   `json:"quotation_date"`
	ClientName      string   `json:"client_name,omitempty"`
	Subject         string   `json:"subject,omitempty"`
	ConsultancyCost MoneyDTO `json:"consultancy_cost"`
	DivisionID      string   `json:"division_id,omitempty"`
	VersionNo       int      `json:"version_no"`
}

type QuotationRequest struct {
	Section         string  `json:"section"`
	QuotationDate   string  `json:"quotation_date"` // YYYY-MM-DD
	ClientName      string  `json:"client_name"`
	Subject         string  `json:"subject"`
	ConsultancyCost float64 `json:"consultancy_cost"`
	DivisionID      string  `json:"division_id"`
}

// =============================================================================
// ORG
// =============================================================================

type EmployeeDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	DivisionID string `json:"division_id,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Active     bool   `json:"active"`
}

type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	DivisionID string `json:"division_id"`
	Phone      string `json:"phone"`
}

type PositionDTO struct {
	ID            string `json:"id"`
	PositionName  string `json:"position_name"`
	PositionOrder int    `json:"position_order"`
	EmployeeID    string `json:"employee_id,omitempty"`
}

type AssignPositionRequest struct {
	ID            string `json:"id"`
	PositionName  string `json:"position_name"`
	PositionOrder int    `json:"position_order"`
	EmployeeID    string `json:"employee_id"`
}

// =============================================================================
// DOMAIN -> DTO CONVERTERS
// =============================================================================

func toContractorDTO(c thirdparty.Contractor) ContractorDTO {
	return ContractorDTO{
		ID:            c.ID,
		UBID:          c.UBID,
		Name:          c.Name,
		Qualification: c.Qualification,
		Category:      string(c.Category),
		AadharNumber:  c.AadharNumber,
		PANNumber:     c.PANNumber,
		Age:           c.Age,
		Gender:        c.Gender,
		Mobile:        c.Mobile,
		Email:         c.Email,
		Address:       c.Address,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
}

func toWorkOrderDTO(w thirdparty.WorkOrder) WorkOrderDTO {
	stages := make([]StageFlagDTO, 0, ledger.StageCount)
	for _, s := range ledger.Stages() {
		flag := w.Flag(s)
		dto := StageFlagDTO{
			Stage:  int(s),
			Label:  s.Label(),
			Status: string(flag.Status),
		}
		if flag.PaidAt != nil {
			dto.PaidAt = flag.PaidAt.Format(time.RFC3339)
		}
		stages = append(stages, dto)
	}
	return WorkOrderDTO{
		ID:             w.ID,
		ContractorID:   w.ContractorID,
		QtNo:           w.QtNo,
		WorkName:       w.WorkName,
		ClientName:     w.ClientName,
		QuotedAmount:   moneyDTO(w.QuotedAmount),
		SanctionAmount: moneyDTO(w.SanctionAmount),
		Stages:         stages,
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
	}
}

func toTransactionDTO(t thirdparty.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          t.ID,
		WorkID:      t.WorkID,
		Stage:       int(t.Stage),
		StageName:   t.StageName,
		Amount:      moneyDTO(t.Amount),
		PaymentDate: t.PaymentDate.Format("2006-01-02"),
		Mode:        string(t.Mode),
		Ref:         t.Ref,
		Remarks:     t.Remarks,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

func toFiguresDTO(r ledger.Result) LedgerFiguresDTO {
	return LedgerFiguresDTO{
		TotalPaid:       moneyDTO(r.TotalPaid),
		ActiveStage:     int(r.ActiveStage),
		ActiveStageName: r.ActiveStage.Label(),
		RequiredAmount:  moneyDTO(r.RequiredForActiveStage),
		CurrentBalance:  signedMoneyDTO(r.CurrentStageBalance),
		NetBalance:      signedMoneyDTO(r.NetBalance),
		PendingAmount:   moneyDTO(r.PendingAmount()),
		AdvanceAmount:   moneyDTO(r.AdvanceAmount()),
	}
}

func toAggregateDTO(a ledger.Aggregate) AggregateDTO {
	return AggregateDTO{
		WorkCount:       a.WorkCount,
		TotalSanctioned: moneyDTO(a.TotalSanctioned),
		TotalPaid:       moneyDTO(a.TotalPaid),
		TotalRequired:   moneyDTO(a.TotalRequired),
		CurrentBalance:  signedMoneyDTO(a.CurrentBalance()),
		TotalBalance:    signedMoneyDTO(a.TotalBalance()),
		PendingAmount:   moneyDTO(a.PendingAmount()),
		AdvanceAmount:   moneyDTO(a.AdvanceAmount()),
	}
}

func toContractorSummaryDTO(s thirdparty.ContractorSummary) ContractorSummaryDTO {
	return ContractorSummaryDTO{
		Contractor: toContractorDTO(s.Contractor),
		Aggregate:  toAggregateDTO(s.Aggregate),
	}
}

func toGlobalSummaryDTO(g thirdparty.GlobalSummary) GlobalSummaryDTO {
	out := GlobalSummaryDTO{
		Contractors: make([]ContractorSummaryDTO, 0, len(g.Contractors)),
		Aggregate:   toAggregateDTO(g.Aggregate),
	}
	for _, c := range g.Contractors {
		out.Contractors = append(out.Contractors, toContractorSummaryDTO(c))
	}
	return out
}

func toDivisionDTO(d works.Division) DivisionDTO {
	return DivisionDTO{ID: d.ID, Name: d.Name, Code: d.Code, Description: d.Description}
}

func toWorkDTO(w works.Work) WorkDTO {
	dto := WorkDTO{
		ID:              w.ID,
		UBQN:            w.UBQN,
		DivisionID:      w.DivisionID,
		WorkName:        w.WorkName,
		ClientName:      w.ClientName,
		ConsultancyCost: moneyDTO(w.ConsultancyCost),
		Status:          string(w.Status),
		Subcategory:     w.Subcategory,
		OrderNo:         w.OrderNo,
		InvoiceNo:       w.InvoiceNo,
		CreatedAt:       w.CreatedAt.Format(time.RFC3339),
	}
	if w.OrderDate != nil {
		dto.OrderDate = w.OrderDate.Format("2006-01-02")
	}
	return dto
}

func toDivisionSummaryDTO(s works.DivisionSummary) DivisionSummaryDTO {
	return DivisionSummaryDTO{
		Division:    toDivisionDTO(s.Division),
		TotalWorks:  s.TotalWorks,
		Pipeline:    s.Pipeline,
		Running:     s.Running,
		Completed:   s.Completed,
		RoadCount:   s.RoadCount,
		BridgeCount: s.BridgeCount,
		TotalCost:   moneyDTO(s.TotalCost),
	}
}

func toQuotationDTO(q works.Quotation) QuotationDTO {
	return QuotationDTO{
		ID:              q.ID,
		UBQN:            q.UBQN,
		Section:         q.Section,
		QuotationDate:   q.QuotationDate.Format("2006-01-02"),
		ClientName:      q.ClientName,
		Subject:         q.Subject,
		ConsultancyCost: moneyDTO(q.ConsultancyCost),
		DivisionID:      q.DivisionID,
		VersionNo:       q.VersionNo,
	}
}

func toEmployeeDTO(e org.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Role:       e.Role,
		DivisionID: e.DivisionID,
		Phone:      e.Phone,
		Active:     e.Active,
	}
}

func toPositionDTO(p org.Position) PositionDTO {
	return PositionDTO{
		ID:            p.ID,
		PositionName:  p.PositionName,
		PositionOrder: p.PositionOrder,
		EmployeeID:    p.EmployeeID,
	}
}
