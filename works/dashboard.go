/*
dashboard.go - Division summaries for the landing dashboard

Pure folds over the works roster: status counts and total consultancy cost
per division, with the Road/Bridge split for the Roads & Bridges division.
Computed on every read, never stored.
*/
package works

import "github.com/ubce/backoffice/money"

// DivisionSummary is the per-division card on the dashboard.
type DivisionSummary struct {
	Division   Division
	TotalWorks int
	Pipeline   int
	Running    int
	Completed  int
	TotalCost  money.Amount

	// Subcategory counts; populated for divisions that use subcategories.
	RoadCount   int
	BridgeCount int
}

// Summarize folds the works roster into one summary per division, in the
// order the divisions are given.
func Summarize(divisions []Division, all []Work) []DivisionSummary {
	byDivision := make(map[string][]Work)
	for _, w := range all {
		byDivision[w.DivisionID] = append(byDivision[w.DivisionID], w)
	}

	out := make([]DivisionSummary, len(divisions))
	for i, d := range divisions {
		s := DivisionSummary{Division: d}
		for _, w := range byDivision[d.ID] {
			s.TotalWorks++
			s.TotalCost = s.TotalCost.Add(w.ConsultancyCost.Sanitize())
			switch w.Status {
			case StatusPipeline:
				s.Pipeline++
			case StatusRunning:
				s.Running++
			case StatusCompleted:
				s.Completed++
			}
			switch w.Subcategory {
			case "Road":
				s.RoadCount++
			case "Bridge":
				s.BridgeCount++
			}
		}
		out[i] = s
	}
	return out
}

// Filter narrows the roster to one division and/or status. Empty selectors
// match everything, mirroring the roster view's filter bar.
func Filter(all []Work, divisionID, status string) []Work {
	var out []Work
	for _, w := range all {
		if divisionID != "" && w.DivisionID != divisionID {
			continue
		}
		if status != "" && status != "all" && string(w.Status) != status {
			continue
		}
		out = append(out, w)
	}
	return out
}
