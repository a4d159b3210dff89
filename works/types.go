/*
Package works covers the consultancy side of the back office: organizational
divisions, the main works roster, the quotation registry, and the dashboard
summaries computed over them.

The financial-status aggregation here is the structural cousin of the
third-party ledger fold: fetch everything, derive figures in memory on every
read, persist nothing derived.
*/
package works

import (
	"time"

	"github.com/ubce/backoffice/money"
)

// WorkStatus is the lifecycle state of a consultancy work.
type WorkStatus string

const (
	StatusPipeline  WorkStatus = "Pipeline"
	StatusRunning   WorkStatus = "Running"
	StatusCompleted WorkStatus = "Completed"
)

func (s WorkStatus) Valid() bool {
	switch s {
	case StatusPipeline, StatusRunning, StatusCompleted:
		return true
	}
	return false
}

// Division is an organizational unit works belong to.
type Division struct {
	ID          string
	Name        string
	Code        string // short code used in filters, e.g. "RNB"
	Description string
	CreatedAt   time.Time
}

// Work is a consultancy project in a division.
type Work struct {
	ID              string
	UBQN            string // human reference number
	DivisionID      string
	WorkName        string
	ClientName      string
	ConsultancyCost money.Amount
	Status          WorkStatus
	// Subcategory splits Roads & Bridges works into "Road" and "Bridge".
	Subcategory string
	OrderNo     string
	OrderDate   *time.Time
	InvoiceNo   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Quotation is a registry entry for an issued quotation.
type Quotation struct {
	ID              string
	UBQN            string
	Section         string
	QuotationDate   time.Time
	ClientName      string
	Subject         string
	ConsultancyCost money.Amount
	DivisionID      string
	VersionNo       int
	CreatedAt       time.Time
}
