package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ubce/backoffice/ledger"
)

func TestFold_ContractorAggregation(t *testing.T) {
	// GIVEN: two work orders at different stages
	//   W1: sanctioned 1,00,000, paid 10,000  -> stage 1, required 25,000
	//   W2: sanctioned 2,00,000, paid 1,60,000 -> stage 4 (80% >= 75%), required 2,00,000
	agg := ledger.Fold([]ledger.WorkFigures{
		{Sanctioned: rupees(100000), Payments: amounts(10000)},
		{Sanctioned: rupees(200000), Payments: amounts(100000, 60000)},
	})

	assert.Equal(t, 2, agg.WorkCount)
	assert.True(t, agg.TotalSanctioned.Equal(rupees(300000)))
	assert.True(t, agg.TotalPaid.Equal(rupees(170000)))
	assert.True(t, agg.TotalRequired.Equal(rupees(225000)))
	assert.True(t, agg.CurrentBalance().Equal(rupees(55000)), "55,000 due for active stages")
	assert.True(t, agg.TotalBalance().Equal(rupees(130000)))
}

// Summing per-work requirements is NOT the same as running the engine once
// over combined totals. Each work carries its own active stage.
func TestFold_NotEquivalentToSingleEngineCall(t *testing.T) {
	works := []ledger.WorkFigures{
		{Sanctioned: rupees(100000), Payments: nil},             // stage 1, required 25,000
		{Sanctioned: rupees(100000), Payments: amounts(100000)}, // stage 4, required 1,00,000
	}
	agg := ledger.Fold(works)
	combined := ledger.Compute(rupees(200000), amounts(100000))

	// Fold: required 1,25,000. Single call over the sums: paid is 50% of the
	// combined sanction -> stage 3 -> required 1,50,000. The fold is correct.
	assert.True(t, agg.TotalRequired.Equal(rupees(125000)))
	assert.True(t, combined.RequiredForActiveStage.Equal(rupees(150000)))
	assert.False(t, agg.TotalRequired.Equal(combined.RequiredForActiveStage))
}

func TestMerge_GlobalAcrossContractors(t *testing.T) {
	contractorA := ledger.Fold([]ledger.WorkFigures{
		{Sanctioned: rupees(100000), Payments: amounts(25000)},
	})
	contractorB := ledger.Fold([]ledger.WorkFigures{
		{Sanctioned: rupees(50000), Payments: amounts(50000)},
		{Sanctioned: rupees(80000), Payments: nil},
	})

	global := contractorA.Merge(contractorB)

	assert.Equal(t, 3, global.WorkCount)
	assert.True(t, global.TotalSanctioned.Equal(rupees(230000)))
	assert.True(t, global.TotalPaid.Equal(rupees(75000)))
	// A: stage 2, required 50,000. B1: stage 4, required 50,000. B2: stage 1, required 20,000.
	assert.True(t, global.TotalRequired.Equal(rupees(120000)))
	assert.True(t, global.CurrentBalance().Equal(rupees(45000)))
}

func TestAggregate_FlooredViews(t *testing.T) {
	overpaid := ledger.Fold([]ledger.WorkFigures{
		{Sanctioned: rupees(100000), Payments: amounts(130000)},
	})

	assert.True(t, overpaid.TotalBalance().Equal(rupees(-30000)))
	assert.True(t, overpaid.PendingAmount().IsZero())
	assert.True(t, overpaid.AdvanceAmount().Equal(rupees(30000)))
	assert.True(t, overpaid.CurrentBalanceDue().IsZero())
}

func TestFold_Empty(t *testing.T) {
	agg := ledger.Fold(nil)

	assert.Equal(t, 0, agg.WorkCount)
	assert.True(t, agg.TotalSanctioned.IsZero())
	assert.True(t, agg.CurrentBalance().IsZero())
}
