package ledger_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubce/backoffice/ledger"
	"github.com/ubce/backoffice/money"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func amounts(values ...float64) []money.Amount {
	out := make([]money.Amount, len(values))
	for i, v := range values {
		out[i] = money.New(v)
	}
	return out
}

func rupees(v float64) money.Amount { return money.New(v) }

// =============================================================================
// SCENARIO TESTS
// =============================================================================

func TestCompute_SingleWorkOrder(t *testing.T) {
	// GIVEN: sanctioned 1,00,000 with a single 25,000 payment (exactly 25%)
	// THEN: the >= ladder promotes to stage 2; 50,000 is required to clear it
	r := ledger.Compute(rupees(100000), amounts(25000))

	assert.Equal(t, ledger.StageReportSubmitted, r.ActiveStage)
	assert.True(t, r.RequiredForActiveStage.Equal(rupees(50000)))
	assert.True(t, r.CurrentStageBalance.Equal(rupees(25000)), "25,000 still due for stage 2")
	assert.True(t, r.NetBalance.Equal(rupees(75000)))
}

func TestCompute_BoundaryExactness(t *testing.T) {
	// GIVEN: sanctioned 40,000 paid exactly 30,000 (75%)
	// THEN: stage 4 is active, 10,000 due to finish
	r := ledger.Compute(rupees(40000), amounts(10000, 10000, 10000))

	assert.Equal(t, ledger.StagePaymentCleared, r.ActiveStage)
	assert.True(t, r.RequiredForActiveStage.Equal(rupees(40000)))
	assert.True(t, r.CurrentStageBalance.Equal(rupees(10000)))
	assert.True(t, r.NetBalance.Equal(rupees(10000)))
}

func TestCompute_NoPayments(t *testing.T) {
	r := ledger.Compute(rupees(80000), nil)

	assert.Equal(t, ledger.StageMobilisation, r.ActiveStage)
	assert.True(t, r.TotalPaid.IsZero())
	assert.True(t, r.CurrentStageBalance.Equal(rupees(20000)), "stage 1 fully due")
	assert.True(t, r.NetBalance.Equal(rupees(80000)))
}

func TestCompute_FullyPaid(t *testing.T) {
	r := ledger.Compute(rupees(100000), amounts(25000, 25000, 25000, 25000))

	assert.Equal(t, ledger.StagePaymentCleared, r.ActiveStage)
	assert.True(t, r.CurrentStageBalance.IsZero())
	assert.True(t, r.NetBalance.IsZero())
	assert.True(t, r.Settled())
}

func TestCompute_Overpayment(t *testing.T) {
	r := ledger.Compute(rupees(100000), amounts(120000))

	assert.Equal(t, ledger.StagePaymentCleared, r.ActiveStage)
	assert.True(t, r.NetBalance.IsNegative())
	assert.False(t, r.CurrentStageBalance.IsPositive())
	assert.True(t, r.PendingAmount().IsZero(), "floored view drops the credit")
	assert.True(t, r.AdvanceAmount().Equal(rupees(20000)), "signed view keeps it")
}

func TestCompute_ZeroSanctioned(t *testing.T) {
	// Every threshold evaluates to zero, so any ledger sits at stage 4.
	for _, paid := range []float64{0, 5000} {
		r := ledger.Compute(money.Zero(), amounts(paid))

		assert.Equal(t, ledger.StagePaymentCleared, r.ActiveStage)
		assert.True(t, r.RequiredForActiveStage.IsZero())
		assert.True(t, r.CurrentStageBalance.Equal(rupees(-paid)))
		assert.True(t, r.NetBalance.Equal(rupees(-paid)))
	}
}

func TestCompute_MalformedAmountsCoerceToZero(t *testing.T) {
	r := ledger.Compute(rupees(100000), []money.Amount{
		money.New(25000),
		money.New(-5000),        // negative: ignored
		money.New(math.NaN()),   // NaN: ignored
		money.New(math.Inf(1)),  // Inf: ignored
	})

	assert.True(t, r.TotalPaid.Equal(rupees(25000)))
	assert.Equal(t, ledger.StageReportSubmitted, r.ActiveStage)
}

func TestCompute_NegativeSanctionedTreatedAsZero(t *testing.T) {
	r := ledger.Compute(rupees(-100000), amounts(1000))

	assert.Equal(t, ledger.StagePaymentCleared, r.ActiveStage)
	assert.True(t, r.Sanctioned.IsZero())
}

// =============================================================================
// PROPERTY TESTS
// =============================================================================

func TestActiveStage_MonotonicAndBounded(t *testing.T) {
	sanctioned := rupees(100000)

	prev := ledger.StageMobilisation
	for paid := 0.0; paid <= 150000; paid += 2500 {
		s := ledger.ActiveStageFor(sanctioned, rupees(paid))

		require.True(t, s.Valid(), "stage out of range at paid=%v", paid)
		require.GreaterOrEqual(t, int(s), int(prev), "stage regressed at paid=%v", paid)
		prev = s
	}
	assert.Equal(t, ledger.StagePaymentCleared, prev)
}

func TestCompute_RequiredMatchesActiveStageThreshold(t *testing.T) {
	for _, paid := range []float64{0, 10000, 25000, 40000, 50000, 74999, 75000, 100000, 130000} {
		r := ledger.Compute(rupees(100000), amounts(paid))
		want := r.ActiveStage.CumulativeThreshold(r.Sanctioned)
		assert.True(t, r.RequiredForActiveStage.Equal(want), "paid=%v", paid)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	sanctioned := rupees(90000)
	payments := amounts(10000, 20000, 5000)

	first := ledger.Compute(sanctioned, payments)
	second := ledger.Compute(sanctioned, payments)

	assert.Equal(t, first, second)
}

// The floor-division form floor(paid/stageValue)+1 was used by one historical
// view and disagrees with the ladder at exact boundaries. This pins down why
// the ladder is the only exported rule: at paid == 100% the floor form yields
// 5 before clamping, and just under a boundary it lags the ladder's promotion
// at the boundary itself.
func TestActiveStage_LadderDisagreesWithFloorDivisionAtBoundaries(t *testing.T) {
	sanctioned := rupees(100000)

	floorStage := func(paid float64) int {
		s := int(math.Floor(paid/25000)) + 1
		if s > ledger.StageCount {
			s = ledger.StageCount
		}
		return s
	}

	// Exact full payment: both clamp to 4, but only after the floor form
	// overshoots to 5.
	assert.Equal(t, 5, int(math.Floor(100000.0/25000))+1)
	assert.Equal(t, ledger.StagePaymentCleared, ledger.ActiveStageFor(sanctioned, rupees(100000)))

	// At 75% both agree on 4; at 74,999 the ladder stays at 3 and so does
	// the floor form - the divergence is exactly the overshoot above.
	assert.Equal(t, 4, floorStage(75000))
	assert.Equal(t, ledger.StagePaymentCleared, ledger.ActiveStageFor(sanctioned, rupees(75000)))
	assert.Equal(t, 3, floorStage(74999))
	assert.Equal(t, ledger.StageReportCleared, ledger.ActiveStageFor(sanctioned, rupees(74999)))
}

// =============================================================================
// STAGE SCHEDULE
// =============================================================================

func TestStage_Labels(t *testing.T) {
	assert.Equal(t, "Mobilisation", ledger.StageMobilisation.Label())
	assert.Equal(t, "Report Submitted", ledger.StageReportSubmitted.Label())
	assert.Equal(t, "Report Cleared", ledger.StageReportCleared.Label())
	assert.Equal(t, "Payment Cleared", ledger.StagePaymentCleared.Label())
}

func TestStage_Validity(t *testing.T) {
	assert.False(t, ledger.Stage(0).Valid())
	assert.False(t, ledger.Stage(5).Valid())
	for _, s := range ledger.Stages() {
		assert.True(t, s.Valid())
	}
}

func TestStage_CumulativeThreshold(t *testing.T) {
	sanctioned := rupees(100000)
	want := []float64{25000, 50000, 75000, 100000}
	for i, s := range ledger.Stages() {
		assert.True(t, s.CumulativeThreshold(sanctioned).Equal(rupees(want[i])))
	}
}

func TestStageValue(t *testing.T) {
	assert.True(t, ledger.StageValue(rupees(100000)).Equal(rupees(25000)))
}
