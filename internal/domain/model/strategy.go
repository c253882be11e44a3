package model

// Strategy names a solution selection rule and a slot in the report.
type Strategy string

const (
	StrategyLargestFirst  Strategy = "largest-first"
	StrategySmallestFirst Strategy = "smallest-first"
	StrategyOldestFirst   Strategy = "oldest-first"
	StrategyYoungestFirst Strategy = "youngest-first"
	StrategyRandom        Strategy = "random"
	StrategyGreedy        Strategy = "greedy"
)

// DraftOrder is the priority in which strategies pick from the exhaustive search results.
var DraftOrder = []Strategy{
	StrategyLargestFirst,
	StrategyOldestFirst,
	StrategySmallestFirst,
	StrategyYoungestFirst,
	StrategyRandom,
}

// ReportOrder is the fixed order of the strategy slots in every report.
var ReportOrder = append(append([]Strategy{}, DraftOrder...), StrategyGreedy)

// IsValid reports whether s is one of the known strategies.
func (s Strategy) IsValid() bool {
	for _, known := range ReportOrder {
		if s == known {
			return true
		}
	}
	return false
}
