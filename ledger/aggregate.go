/*
aggregate.go - Folding per-work ledgers into contractor and global totals

PURPOSE:
  Roll-ups for the contractor detail view and the global dashboard.

ORDER OF OPERATIONS (the invariant that matters):
  Each work order is computed through the engine FIRST, then the per-work
  requiredForActiveStage figures are summed. Feeding pre-summed sanctioned and
  paid totals through a single engine call gives a different, wrong answer,
  because each work order sits at its own active stage. aggregate_test.go
  carries the two-work counterexample.

NO DOUBLE COUNTING:
  A transaction belongs to exactly one work order and a work order to exactly
  one contractor, so folding per work and merging per contractor counts every
  rupee once.
*/
package ledger

import "github.com/ubce/backoffice/money"

// WorkFigures is the per-work input to a fold: the sanctioned amount and the
// work's recorded payment amounts.
type WorkFigures struct {
	Sanctioned money.Amount
	Payments   []money.Amount
}

// Aggregate is the folded state of a set of work orders.
type Aggregate struct {
	WorkCount       int
	TotalSanctioned money.Amount
	TotalPaid       money.Amount

	// TotalRequired is the sum of each work's requiredForActiveStage.
	TotalRequired money.Amount
}

// Fold computes every work's ledger and sums the results.
func Fold(works []WorkFigures) Aggregate {
	agg := Aggregate{}
	for _, w := range works {
		r := Compute(w.Sanctioned, w.Payments)
		agg.WorkCount++
		agg.TotalSanctioned = agg.TotalSanctioned.Add(r.Sanctioned)
		agg.TotalPaid = agg.TotalPaid.Add(r.TotalPaid)
		agg.TotalRequired = agg.TotalRequired.Add(r.RequiredForActiveStage)
	}
	return agg
}

// Merge combines two aggregates, e.g. per-contractor roll-ups into the global
// dashboard figures.
func (a Aggregate) Merge(b Aggregate) Aggregate {
	return Aggregate{
		WorkCount:       a.WorkCount + b.WorkCount,
		TotalSanctioned: a.TotalSanctioned.Add(b.TotalSanctioned),
		TotalPaid:       a.TotalPaid.Add(b.TotalPaid),
		TotalRequired:   a.TotalRequired.Add(b.TotalRequired),
	}
}

// CurrentBalance is (sum of per-work stage requirements) - (total paid),
// signed. Positive means money is due for active stages right now.
func (a Aggregate) CurrentBalance() money.Amount {
	return a.TotalRequired.Sub(a.TotalPaid)
}

// CurrentBalanceDue is CurrentBalance floored at zero.
func (a Aggregate) CurrentBalanceDue() money.Amount {
	return a.CurrentBalance().FloorZero()
}

// TotalBalance is total sanctioned - total paid, signed.
func (a Aggregate) TotalBalance() money.Amount {
	return a.TotalSanctioned.Sub(a.TotalPaid)
}

// PendingAmount is TotalBalance floored at zero.
func (a Aggregate) PendingAmount() money.Amount {
	return a.TotalBalance().FloorZero()
}

// AdvanceAmount is the aggregate overpayment floored at zero.
func (a Aggregate) AdvanceAmount() money.Amount {
	return a.TotalBalance().Neg().FloorZero()
}
