/*
engine.go - Per-work-order ledger computation

PURPOSE:
  The single source of truth for "where does this work order stand". Every
  consumer - the work-order detail view, the contractor roll-up, the global
  dashboard - calls Compute and reads the same Result. The figures are never
  persisted; they are recomputed from the transaction list on every read.

THE THRESHOLD LADDER:
  activeStage starts at 1 and is promoted by comparing total paid against the
  cumulative thresholds top-down with >=:

      paid >= 75% of sanctioned  ->  stage 4
      paid >= 50%                ->  stage 3
      paid >= 25%                ->  stage 2
      otherwise                  ->  stage 1

  Exact boundaries therefore promote: paying exactly 25% moves the work to
  stage 2. A zero sanctioned amount makes every threshold zero, so any ledger
  (including an empty one) sits at stage 4.

BALANCES:
  CurrentStageBalance = requiredForActiveStage - totalPaid
      > 0  amount still due to clear the active stage
      < 0  advance paid into or past the active stage
      = 0  settled
  NetBalance = sanctioned - totalPaid (signed). PendingAmount and
  AdvanceAmount are the floored projections of the same quantity; which one a
  view shows is the caller's choice.
*/
package ledger

import "github.com/ubce/backoffice/money"

// =============================================================================
// RESULT - Computed state of one work order's ledger
// =============================================================================

// Result is the computed financial state of a single work order.
type Result struct {
	Sanctioned money.Amount

	// TotalPaid is the sum of all recorded payment amounts, negatives
	// coerced to zero.
	TotalPaid money.Amount

	// ActiveStage is the highest stage whose cumulative threshold has been
	// met, clamped to [1, StageCount].
	ActiveStage Stage

	// RequiredForActiveStage is the cumulative payment needed to clear the
	// active stage: sanctioned x 0.25 x activeStage.
	RequiredForActiveStage money.Amount

	// CurrentStageBalance is RequiredForActiveStage - TotalPaid.
	CurrentStageBalance money.Amount

	// NetBalance is Sanctioned - TotalPaid, signed. Negative means the
	// contractor has been paid past the full sanctioned amount.
	NetBalance money.Amount
}

// PendingAmount is the outstanding liability floored at zero.
func (r Result) PendingAmount() money.Amount { return r.NetBalance.FloorZero() }

// AdvanceAmount is the overpayment past the sanctioned amount, floored at zero.
func (r Result) AdvanceAmount() money.Amount { return r.NetBalance.Neg().FloorZero() }

// Settled reports whether the active stage is exactly cleared.
func (r Result) Settled() bool { return r.CurrentStageBalance.IsZero() }

// Advance reports whether payments have run ahead of the active stage.
func (r Result) Advance() bool { return r.CurrentStageBalance.IsNegative() }

// =============================================================================
// COMPUTATION
// =============================================================================

// Compute derives the ledger state for one work order from its sanctioned
// amount and the amounts of its recorded payments. Pure: no I/O, no hidden
// state, deterministic for identical input.
func Compute(sanctioned money.Amount, payments []money.Amount) Result {
	sanctioned = sanctioned.Sanitize()

	totalPaid := money.Zero()
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Sanitize())
	}

	active := ActiveStageFor(sanctioned, totalPaid)
	required := active.CumulativeThreshold(sanctioned)

	return Result{
		Sanctioned:             sanctioned,
		TotalPaid:              totalPaid,
		ActiveStage:            active,
		RequiredForActiveStage: required,
		CurrentStageBalance:    required.Sub(totalPaid),
		NetBalance:             sanctioned.Sub(totalPaid),
	}
}

// ActiveStageFor evaluates the threshold ladder. The result is always within
// [StageMobilisation, StagePaymentCleared] and non-decreasing in paid.
func ActiveStageFor(sanctioned, paid money.Amount) Stage {
	// Top-down so an exact boundary promotes to the higher stage.
	for _, s := range []Stage{StagePaymentCleared, StageReportCleared, StageReportSubmitted} {
		// Clearing stage N-1's threshold makes stage N the active one,
		// except at the top where stage 4 is both threshold and cap.
		prev := s - 1
		if paid.GreaterThanOrEqual(prev.CumulativeThreshold(sanctioned)) {
			return s
		}
	}
	return StageMobilisation
}
