package works_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ubce/backoffice/money"
	"github.com/ubce/backoffice/works"
)

func fixtureDivisions() []works.Division {
	return []works.Division{
		{ID: "d1", Name: "Roads & Bridges", Code: "RNB"},
		{ID: "d2", Name: "Buildings", Code: "BLD"},
	}
}

func fixtureWorks() []works.Work {
	return []works.Work{
		{ID: "w1", DivisionID: "d1", Status: works.StatusRunning, Subcategory: "Road", ConsultancyCost: money.New(500000)},
		{ID: "w2", DivisionID: "d1", Status: works.StatusPipeline, Subcategory: "Bridge", ConsultancyCost: money.New(250000)},
		{ID: "w3", DivisionID: "d1", Status: works.StatusCompleted, Subcategory: "Road", ConsultancyCost: money.New(100000)},
		{ID: "w4", DivisionID: "d2", Status: works.StatusRunning, ConsultancyCost: money.New(75000)},
	}
}

func TestSummarize(t *testing.T) {
	summaries := works.Summarize(fixtureDivisions(), fixtureWorks())

	assert.Len(t, summaries, 2)

	rnb := summaries[0]
	assert.Equal(t, "RNB", rnb.Division.Code)
	assert.Equal(t, 3, rnb.TotalWorks)
	assert.Equal(t, 1, rnb.Pipeline)
	assert.Equal(t, 1, rnb.Running)
	assert.Equal(t, 1, rnb.Completed)
	assert.Equal(t, 2, rnb.RoadCount)
	assert.Equal(t, 1, rnb.BridgeCount)
	assert.True(t, rnb.TotalCost.Equal(money.New(850000)))

	bld := summaries[1]
	assert.Equal(t, 1, bld.TotalWorks)
	assert.True(t, bld.TotalCost.Equal(money.New(75000)))
}

func TestSummarize_EmptyDivision(t *testing.T) {
	summaries := works.Summarize(fixtureDivisions(), nil)

	assert.Equal(t, 0, summaries[0].TotalWorks)
	assert.True(t, summaries[0].TotalCost.IsZero())
}

func TestFilter(t *testing.T) {
	all := fixtureWorks()

	assert.Len(t, works.Filter(all, "", "all"), 4)
	assert.Len(t, works.Filter(all, "d1", ""), 3)
	assert.Len(t, works.Filter(all, "d1", "Running"), 1)
	assert.Len(t, works.Filter(all, "", "Completed"), 1)
	assert.Empty(t, works.Filter(all, "d2", "Pipeline"))
}
