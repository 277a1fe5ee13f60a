package scoring

// RiskLevel is the ordered severity classification of a posting.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "Very Low"
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
)

// ConfidenceSource records which signals contributed to the final confidence.
type ConfidenceSource string

const (
	SourceRuleOnly ConfidenceSource = "rule-only"
	SourceCombined ConfidenceSource = "combined"
)

// Result is the output of one scoring pass. It is never mutated after
// being returned.
type Result struct {
	IsScam              bool             `json:"is_scam"`
	Confidence          float64          `json:"confidence"`
	RiskLevel           RiskLevel        `json:"risk_level"`
	Reasons             []string         `json:"reasons"`
	ScamIndicatorsFound int              `json:"scam_indicators_found"`
	TotalWords          int              `json:"total_words"`
	MLConfidence        float64          `json:"ml_confidence"`
	RuleBasedConfidence float64          `json:"rule_based_confidence"`
	ConfidenceSource    ConfidenceSource `json:"confidence_source"`
}
