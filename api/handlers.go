/*
handlers.go - HTTP API handlers for the back-office server

PURPOSE:
  Exposes the domain services via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Auth:
    POST   /api/auth/login                      Issue a session token
    GET    /api/auth/me                         Current user

  Users (admin):
    GET    /api/users                           List users
    POST   /api/users                           Create user
    PUT    /api/users/{id}/role                 Change a user's role

  Dashboard:
    GET    /api/dashboard                       Division summaries + third-party roll-up

  Works:
    GET    /api/divisions                       List divisions
    POST   /api/divisions                       Create division
    GET    /api/works?division=RNB&status=Running
    POST   /api/works                           Create work
    GET    /api/works/{id}
    PUT    /api/works/{id}
    DELETE /api/works/{id}

  Quotations:
    GET    /api/quotations                      List registry
    POST   /api/quotations                      Register (assigns UBQN serial)

  Org:
    GET    /api/employees                       Roster
    POST   /api/employees
    GET    /api/hierarchy                       Ordered positions
    POST   /api/hierarchy                       Assign/update a position

  Third party:
    GET    /api/thirdparty/summary              Global roll-up
    GET    /api/thirdparty/contractors          List contractors
    POST   /api/thirdparty/contractors          Create (assigns UBTP serial)
    GET    /api/thirdparty/contractors/{id}     Contractor + aggregate
    DELETE /api/thirdparty/contractors/{id}     Cascade delete
    GET    /api/thirdparty/contractors/{id}/works
    POST   /api/thirdparty/contractors/{id}/works
    GET    /api/thirdparty/works/{id}/ledger    Work + transactions + figures
    PUT    /api/thirdparty/works/{id}
    DELETE /api/thirdparty/works/{id}
    POST   /api/thirdparty/works/{id}/payments  Record payment

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing/invalid session (middleware)
  - 403: Capability denied (middleware)
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup, middleware and capability gating
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ubce/backoffice/auth"
	"github.com/ubce/backoffice/ledger"
	"github.com/ubce/backoffice/money"
	"github.com/ubce/backoffice/org"
	"github.com/ubce/backoffice/thirdparty"
	"github.com/ubce/backoffice/works"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all service dependencies for HTTP handlers.
type Handler struct {
	ThirdParty *thirdparty.Service
	Works      *works.Service
	Org        *org.Service
	Auth       *auth.Service

	log zerolog.Logger
}

// NewHandler creates a handler over the domain services.
func NewHandler(tp *thirdparty.Service, wk *works.Service, o *org.Service, a *auth.Service, log zerolog.Logger) *Handler {
	return &Handler{
		ThirdParty: tp,
		Works:      wk,
		Org:        o,
		Auth:       a,
		log:        log.With().Str("component", "api").Logger(),
	}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login verifies credentials and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token, user, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Always the same message; never reveal whether the email exists.
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  UserDTO{ID: user.ID, Email: user.Email, Name: user.Name, Role: string(user.Role)},
	})
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	writeJSON(w, http.StatusOK, UserDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)})
}

// ListUsers returns all user accounts.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Auth.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list users", err)
		return
	}
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = UserDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateUser registers a new user account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	u, err := h.Auth.CreateUser(r.Context(), req.Email, req.Name, req.Password, auth.Role(req.Role))
	if err != nil {
		h.writeDomainError(w, "Failed to create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, UserDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)})
}

// ChangeUserRole reassigns a user's role.
func (h *Handler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Auth.ChangeRole(r.Context(), chi.URLParam(r, "id"), auth.Role(req.Role)); err != nil {
		h.writeDomainError(w, "Failed to change role", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DASHBOARD
// =============================================================================

// Dashboard returns the landing-page roll-up.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.Works.Dashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to summarize works", err)
		return
	}
	global, err := h.ThirdParty.GetGlobalSummary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to summarize third-party ledger", err)
		return
	}

	out := DashboardDTO{
		Divisions:  make([]DivisionSummaryDTO, len(divisions)),
		ThirdParty: toGlobalSummaryDTO(*global),
	}
	for i, d := range divisions {
		out.Divisions[i] = toDivisionSummaryDTO(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// WORKS HANDLERS
// =============================================================================

// ListDivisions returns all divisions.
func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	divisions, err := h.Works.ListDivisions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list divisions", err)
		return
	}
	dtos := make([]DivisionDTO, len(divisions))
	for i, d := range divisions {
		dtos[i] = toDivisionDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateDivision registers a new division.
func (h *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	var req CreateDivisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Name and code are required", nil)
		return
	}

	d, err := h.Works.CreateDivision(r.Context(), req.Name, req.Code, req.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create division", err)
		return
	}
	writeJSON(w, http.StatusCreated, toDivisionDTO(*d))
}

// ListWorks returns the roster, narrowed by ?division= and ?status=.
func (h *Handler) ListWorks(w http.ResponseWriter, r *http.Request) {
	division := r.URL.Query().Get("division")
	status := r.URL.Query().Get("status")

	list, err := h.Works.ListWorks(r.Context(), division, status)
	if err != nil {
		h.writeDomainError(w, "Failed to list works", err)
		return
	}
	dtos := make([]WorkDTO, len(list))
	for i, wk := range list {
		dtos[i] = toWorkDTO(wk)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWork returns a single work.
func (h *Handler) GetWork(w http.ResponseWriter, r *http.Request) {
	wk, err := h.Works.GetWork(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get work", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkDTO(*wk))
}

// CreateWork adds a work to the roster.
func (h *Handler) CreateWork(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeWorkInput(w, r)
	if !ok {
		return
	}
	wk, err := h.Works.CreateWork(r.Context(), in)
	if err != nil {
		h.writeDomainError(w, "Failed to create work", err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkDTO(*wk))
}

// UpdateWork edits a work in place.
func (h *Handler) UpdateWork(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeWorkInput(w, r)
	if !ok {
		return
	}
	wk, err := h.Works.UpdateWork(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeDomainError(w, "Failed to update work", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkDTO(*wk))
}

// DeleteWork removes a work from the roster.
func (h *Handler) DeleteWork(w http.ResponseWriter, r *http.Request) {
	if err := h.Works.DeleteWork(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, "Failed to delete work", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeWorkInput(w http.ResponseWriter, r *http.Request) (works.WorkInput, bool) {
	var req WorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return works.WorkInput{}, false
	}

	in := works.WorkInput{
		UBQN:            req.UBQN,
		DivisionID:      req.DivisionID,
		WorkName:        req.WorkName,
		ClientName:      req.ClientName,
		ConsultancyCost: money.New(req.ConsultancyCost),
		Status:          works.WorkStatus(req.Status),
		Subcategory:     req.Subcategory,
		OrderNo:         req.OrderNo,
		InvoiceNo:       req.InvoiceNo,
	}
	if req.OrderDate != "" {
		d, err := time.Parse("2006-01-02", req.OrderDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid order_date format (use YYYY-MM-DD)", err)
			return works.WorkInput{}, false
		}
		in.OrderDate = &d
	}
	return in, true
}

// =============================================================================
// QUOTATION HANDLERS
// =============================================================================

// ListQuotations returns the registry, newest first.
func (h *Handler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Works.ListQuotations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list quotations", err)
		return
	}
	dtos := make([]QuotationDTO, len(list))
	for i, q := range list {
		dtos[i] = toQuotationDTO(q)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RegisterQuotation records a registry entry and assigns its UBQN serial.
func (h *Handler) RegisterQuotation(w http.ResponseWriter, r *http.Request) {
	var req QuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := time.Parse("2006-01-02", req.QuotationDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid quotation_date format (use YYYY-MM-DD)", err)
		return
	}

	q, err := h.Works.RegisterQuotation(r.Context(), works.QuotationInput{
		Section:         req.Section,
		QuotationDate:   date,
		ClientName:      req.ClientName,
		Subject:         req.Subject,
		ConsultancyCost: money.New(req.ConsultancyCost),
		DivisionID:      req.DivisionID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to register quotation", err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuotationDTO(*q))
}

// =============================================================================
// ORG HANDLERS
// =============================================================================

// ListEmployees returns the roster.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.Org.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	dtos := make([]EmployeeDTO, len(list))
	for i, e := range list {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee adds a roster record.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	e, err := h.Org.CreateEmployee(r.Context(), org.EmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		DivisionID: req.DivisionID,
		Phone:      req.Phone,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*e))
}

// Hierarchy returns the positions ordered top-down.
func (h *Handler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Org.Hierarchy(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load hierarchy", err)
		return
	}
	dtos := make([]PositionDTO, len(positions))
	for i, p := range positions {
		dtos[i] = toPositionDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// AssignPosition creates or updates one rung of the hierarchy.
func (h *Handler) AssignPosition(w http.ResponseWriter, r *http.Request) {
	var req AssignPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, err := h.Org.AssignPosition(r.Context(), req.ID, req.PositionName, req.PositionOrder, req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to assign position", err)
		return
	}
	writeJSON(w, http.StatusOK, toPositionDTO(*p))
}

// =============================================================================
// THIRD-PARTY HANDLERS
// =============================================================================

// GlobalSummary returns the roll-up across every contractor.
func (h *Handler) GlobalSummary(w http.ResponseWriter, r *http.Request) {
	g, err := h.ThirdParty.GetGlobalSummary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute summary", err)
		return
	}
	writeJSON(w, http.StatusOK, toGlobalSummaryDTO(*g))
}

// ListContractors returns all contractors.
func (h *Handler) ListContractors(w http.ResponseWriter, r *http.Request) {
	list, err := h.ThirdParty.ListContractors(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list contractors", err)
		return
	}
	dtos := make([]ContractorDTO, len(list))
	for i, c := range list {
		dtos[i] = toContractorDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateContractor registers a contractor and assigns its UBTP serial.
func (h *Handler) CreateContractor(w http.ResponseWriter, r *http.Request) {
	var req CreateContractorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	c, err := h.ThirdParty.CreateContractor(r.Context(), thirdparty.ContractorInput{
		Name:          req.Name,
		Qualification: req.Qualification,
		Category:      thirdparty.Category(req.Category),
		AadharNumber:  req.AadharNumber,
		PANNumber:     req.PANNumber,
		Age:           req.Age,
		Gender:        req.Gender,
		Mobile:        req.Mobile,
		Email:         req.Email,
		Address:       req.Address,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to create contractor", err)
		return
	}
	writeJSON(w, http.StatusCreated, toContractorDTO(*c))
}

// UpdateContractor edits a contractor's details in place.
func (h *Handler) UpdateContractor(w http.ResponseWriter, r *http.Request) {
	var req CreateContractorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	c, err := h.ThirdParty.UpdateContractor(r.Context(), chi.URLParam(r, "id"), thirdparty.ContractorInput{
		Name:          req.Name,
		Qualification: req.Qualification,
		Category:      thirdparty.Category(req.Category),
		AadharNumber:  req.AadharNumber,
		PANNumber:     req.PANNumber,
		Age:           req.Age,
		Gender:        req.Gender,
		Mobile:        req.Mobile,
		Email:         req.Email,
		Address:       req.Address,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to update contractor", err)
		return
	}
	writeJSON(w, http.StatusOK, toContractorDTO(*c))
}

// GetContractor returns a contractor with its ledger aggregate.
func (h *Handler) GetContractor(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ThirdParty.GetContractorSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to get contractor", err)
		return
	}
	writeJSON(w, http.StatusOK, toContractorSummaryDTO(*summary))
}

// DeleteContractor removes a contractor, its work orders and transactions.
func (h *Handler) DeleteContractor(w http.ResponseWriter, r *http.Request) {
	if err := h.ThirdParty.DeleteContractor(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, "Failed to delete contractor", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListWorkOrders returns a contractor's work orders.
func (h *Handler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.ThirdParty.ListWorkOrders(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list work orders", err)
		return
	}
	dtos := make([]WorkOrderDTO, len(list))
	for i, wo := range list {
		dtos[i] = toWorkOrderDTO(wo)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateWorkOrder adds a work order under a contractor.
func (h *Handler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req WorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wo, err := h.ThirdParty.CreateWorkOrder(r.Context(), chi.URLParam(r, "id"), thirdparty.WorkOrderInput{
		QtNo:           req.QtNo,
		WorkName:       req.WorkName,
		ClientName:     req.ClientName,
		QuotedAmount:   money.New(req.QuotedAmount),
		SanctionAmount: money.New(req.SanctionAmount),
	})
	if err != nil {
		h.writeDomainError(w, "Failed to create work order", err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkOrderDTO(*wo))
}

// UpdateWorkOrder edits a work order's descriptive fields and amounts.
func (h *Handler) UpdateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req WorkOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	wo, err := h.ThirdParty.UpdateWorkOrderAmounts(r.Context(), chi.URLParam(r, "id"), thirdparty.WorkOrderInput{
		QtNo:           req.QtNo,
		WorkName:       req.WorkName,
		ClientName:     req.ClientName,
		QuotedAmount:   money.New(req.QuotedAmount),
		SanctionAmount: money.New(req.SanctionAmount),
	})
	if err != nil {
		h.writeDomainError(w, "Failed to update work order", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkOrderDTO(*wo))
}

// DeleteWorkOrder removes a work order and its transactions.
func (h *Handler) DeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.ThirdParty.DeleteWorkOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, "Failed to delete work order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLedger returns a work order with its transactions and computed figures.
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	l, err := h.ThirdParty.GetLedger(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "Failed to load ledger", err)
		return
	}

	out := WorkLedgerDTO{
		Work:         toWorkOrderDTO(l.Work),
		Transactions: make([]TransactionDTO, len(l.Transactions)),
		Figures:      toFiguresDTO(l.Result),
	}
	for i, tx := range l.Transactions {
		out.Transactions[i] = toTransactionDTO(tx)
	}
	writeJSON(w, http.StatusOK, out)
}

// RecordPayment appends a payment and runs the stage-promotion workflow.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		d, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid payment_date format (use YYYY-MM-DD)", err)
			return
		}
		paymentDate = d
	}

	tx, err := h.ThirdParty.RecordPayment(r.Context(), chi.URLParam(r, "id"), thirdparty.PaymentInput{
		Stage:       ledger.Stage(req.Stage),
		Amount:      money.New(req.Amount),
		PaymentDate: paymentDate,
		Mode:        thirdparty.PaymentMode(req.Mode),
		Ref:         req.Ref,
		Remarks:     req.Remarks,
	})
	if err != nil {
		h.writeDomainError(w, "Failed to record payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(*tx))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case isClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.log.Error().Err(err).Msg(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func isNotFound(err error) bool {
	return thirdparty.IsNotFound(err) ||
		errors.Is(err, works.ErrWorkNotFound) ||
		errors.Is(err, works.ErrDivisionNotFound) ||
		errors.Is(err, works.ErrQuotationNotFound) ||
		errors.Is(err, org.ErrEmployeeNotFound) ||
		errors.Is(err, auth.ErrUserNotFound)
}

func isClientError(err error) bool {
	return thirdparty.IsClientError(err) ||
		errors.Is(err, works.ErrInvalidStatus) ||
		errors.Is(err, auth.ErrInvalidRole)
}
