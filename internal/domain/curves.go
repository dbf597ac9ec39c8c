package domain

type RiskTier string

const (
	RiskTier_Low      RiskTier = "LOW"
	RiskTier_Medium   RiskTier = "MEDIUM"
	RiskTier_High     RiskTier = "HIGH"
	RiskTier_VeryHigh RiskTier = "VERY_HIGH"
	RiskTier_Unknown  RiskTier = "UNKNOWN"
)

type SchoolTier string

const (
	SchoolTier_1 SchoolTier = "TIER_1"
	SchoolTier_2 SchoolTier = "TIER_2"
	SchoolTier_3 SchoolTier = "TIER_3"
)

type DefaultCurve struct {
	// CumulativeDefaultPct has one entry per loan year, cumulative, in
	// percent (e.g. [1.5, 3.2, 4.1]).
	CumulativeDefaultPct []float64 `json:"cumulativeDefaultPct"`
}

type PrepaymentCurve struct {
	// ValuesPct is annual CPR in percent, one entry per loan year.
	ValuesPct []float64 `json:"valuesPct"`
}

type RecoveryProfile struct {
	GrossRecoveryPct  float64 `json:"grossRecoveryPct"` // 0-100
	RecoveryLagMonths int     `json:"recoveryLagMonths"`
}

// RiskCurve is the externally supplied curve set for one risk tier. Read-only
// configuration data.
type RiskCurve struct {
	RiskPremiumBps  float64         `json:"riskPremiumBps"`
	DefaultCurve    DefaultCurve    `json:"defaultCurve"`
	PrepaymentCurve PrepaymentCurve `json:"prepaymentCurve"`
	Recovery        RecoveryProfile `json:"recovery"`
}

type CurveTable map[RiskTier]RiskCurve
