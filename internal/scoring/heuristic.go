package scoring

import "strings"

// Heuristic tier thresholds on (scam ratio, match count).
const (
	highRatioThreshold   = 0.10
	mediumRatioThreshold = 0.05
	highCountThreshold   = 5
	mediumCountThreshold = 2

	lowTierConfidence     = 0.3
	veryLowTierConfidence = 0.1

	boostCap = 0.95
)

// ruleScore is the heuristic scorer's verdict before model combination.
type ruleScore struct {
	confidence float64
	isScam     bool
	level      RiskLevel
	reasons    []string
	matchCount int
	wordCount  int
}

// scoreHeuristics runs the rule-based scorer over the indicator matches
// and secondary signal counts. text is the original input, lowered its
// lower-cased form, indicators the scanner output.
//
// Reason ordering is part of the contract: up to three matched indicator
// phrases first, then boost reasons in urgency/guarantee/payment order.
func scoreHeuristics(text, lowered string, indicators []string) ruleScore {
	matchCount := len(indicators)
	wordCount := len(strings.Fields(text))

	scamRatio := float64(matchCount) / float64(max(wordCount, 1))

	var rs ruleScore
	rs.matchCount = matchCount
	rs.wordCount = wordCount

	switch {
	case scamRatio > highRatioThreshold || matchCount > highCountThreshold:
		rs.level = RiskHigh
		rs.isScam = true
		rs.confidence = min(0.9, 0.5+scamRatio*2)
	case scamRatio > mediumRatioThreshold || matchCount > mediumCountThreshold:
		rs.level = RiskMedium
		rs.isScam = true
		rs.confidence = min(0.7, 0.3+scamRatio*2)
	case matchCount > 0:
		rs.level = RiskLow
		rs.confidence = lowTierConfidence
	default:
		rs.level = RiskVeryLow
		rs.confidence = veryLowTierConfidence
	}

	if len(indicators) > maxReasonIndicators {
		rs.reasons = append(rs.reasons, indicators[:maxReasonIndicators]...)
	} else {
		rs.reasons = append(rs.reasons, indicators...)
	}

	// Additive boosts, applied independently, each re-capped afterwards.
	if countPresent(lowered, urgentWords) > 2 {
		rs.reasons = append(rs.reasons, "Contains multiple urgent/desperate language")
		rs.confidence = min(boostCap, rs.confidence+0.20)
	}
	if countPresent(lowered, guaranteeWords) > 1 {
		rs.reasons = append(rs.reasons, "Contains unrealistic guarantees")
		rs.confidence = min(boostCap, rs.confidence+0.15)
	}
	if countPresent(lowered, paymentWords) > 2 {
		rs.reasons = append(rs.reasons, "Mentions payment requirements")
		rs.confidence = min(boostCap, rs.confidence+0.25)
	}

	return rs
}
