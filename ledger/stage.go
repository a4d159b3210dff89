/*
Package ledger implements the staged-payment ledger engine.

PURPOSE:
  Third-party work orders are paid out in four fixed stages, each gating 25%
  of the sanctioned amount. This package holds the stage schedule and the pure
  computation that turns (sanctioned amount, recorded payments) into the
  figures finance staff act on: total paid, active stage, amount required to
  clear the active stage, and the stage/global balances.

KEY CONCEPTS (stage.go):
  - Stage: one of the four fixed milestones, numbered 1..4.
  - Cumulative threshold: stage N is cleared once total payments reach
    25% x N of the sanctioned amount.

CANONICAL STAGE RULE:
  The active stage is derived by a top-down >= threshold ladder (engine.go).
  A floor-division variant existed historically and disagrees with the ladder
  at exact boundaries; only the ladder is exported. See engine_test.go for the
  boundary cases that pin this down.

DESIGN PRINCIPLES:
  1. Purity: no I/O, no state. Same inputs, same outputs, every call site.
  2. Precision: all math in decimals via the money package.
  3. Degrade, don't throw: malformed amounts count as zero.

SEE ALSO:
  - engine.go: per-work computation
  - aggregate.go: per-contractor and global folds
  - thirdparty package: the workflow that records payments
*/
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/ubce/backoffice/money"
)

// =============================================================================
// STAGE SCHEDULE - Fixed 4-stage, 25%-increment payment milestones
// =============================================================================

// Stage is a payment milestone, numbered 1 through 4.
type Stage int

const (
	StageMobilisation    Stage = 1
	StageReportSubmitted Stage = 2
	StageReportCleared   Stage = 3
	StagePaymentCleared  Stage = 4

	// StageCount is the number of stages in the schedule.
	StageCount = 4
)

// stageFraction is the share of the sanctioned amount gated by each stage.
var stageFraction = decimal.RequireFromString("0.25")

var stageLabels = map[Stage]string{
	StageMobilisation:    "Mobilisation",
	StageReportSubmitted: "Report Submitted",
	StageReportCleared:   "Report Cleared",
	StagePaymentCleared:  "Payment Cleared",
}

// Stages returns the schedule in order.
func Stages() []Stage {
	return []Stage{StageMobilisation, StageReportSubmitted, StageReportCleared, StagePaymentCleared}
}

// Valid reports whether s is within the fixed schedule.
func (s Stage) Valid() bool {
	return s >= StageMobilisation && s <= StagePaymentCleared
}

// Label returns the human name of the stage, or "" for an invalid stage.
func (s Stage) Label() string {
	return stageLabels[s]
}

// Fraction returns the cumulative share of the sanctioned amount required to
// clear this stage: 0.25 x stage number.
func (s Stage) Fraction() decimal.Decimal {
	return stageFraction.Mul(decimal.NewFromInt(int64(s)))
}

// CumulativeThreshold returns the total payment required to clear this stage.
func (s Stage) CumulativeThreshold(sanctioned money.Amount) money.Amount {
	return sanctioned.Mul(s.Fraction())
}

// Next returns the following stage and whether one exists.
func (s Stage) Next() (Stage, bool) {
	if s >= StagePaymentCleared {
		return s, false
	}
	return s + 1, true
}

// StageValue returns one stage's worth of the sanctioned amount (25%).
// The payment workflow compares a stage-scoped paid total against this.
func StageValue(sanctioned money.Amount) money.Amount {
	return sanctioned.Mul(stageFraction)
}
