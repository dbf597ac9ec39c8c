package domain

// Assumptions is the effective, immutable valuation profile. It is resolved
// once per valuation call by layering: code defaults, then system overrides
// from config, then per-request user overrides. Nothing reads a partially
// merged profile.
type Assumptions struct {
	// Per-tier overrides. When absent for a tier, the risk curve value wins.
	RecoveryRate   map[RiskTier]float64 `json:"recoveryRate"`   // 0-1
	RiskPremiumBps map[RiskTier]float64 `json:"riskPremiumBps"` // overrides curve base premium

	ServicingCostBps     float64 `json:"servicingCostBps"` // annual bps on balance
	SetupFee             float64 `json:"setupFee"`         // one-time, USD
	PrepaymentMultiplier float64 `json:"prepaymentMultiplier"`
	PrepaySeasoningYears float64 `json:"prepaySeasoningYears"`

	BaseRiskFreeRate float64 `json:"baseRiskFreeRate"` // annual, as a fraction

	// Risk premium components, in bps unless noted.
	FicoBorrowerAdjustmentBps float64 `json:"ficoBorrowerAdjustmentBps"`
	FicoCosignerAdjustmentBps float64 `json:"ficoCosignerAdjustmentBps"`
	GraduateAdjustmentBps     float64 `json:"graduateAdjustmentBps"`
	SchoolTierMultiplier      float64 `json:"schoolTierMultiplier"`

	DegreeAdjustmentsBps       map[string]float64     `json:"degreeAdjustmentsBps"`
	SchoolAdjustmentsBps       map[SchoolTier]float64 `json:"schoolAdjustmentsBps"`
	YearInSchoolAdjustmentsBps map[int]float64        `json:"yearInSchoolAdjustmentsBps"`

	// School tier thresholds.
	GraduationRateThreshold float64 `json:"graduationRateThreshold"` // 0-1
	EarningsThreshold       float64 `json:"earningsThreshold"`       // annual USD
}

// DefaultAssumptions is the base layer of the profile stack.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RecoveryRate:   map[RiskTier]float64{},
		RiskPremiumBps: map[RiskTier]float64{},

		ServicingCostBps:     50,
		SetupFee:             100,
		PrepaymentMultiplier: 1.0,
		PrepaySeasoningYears: 2.5,

		BaseRiskFreeRate: 0.04,

		FicoBorrowerAdjustmentBps: 25,
		FicoCosignerAdjustmentBps: 15,
		GraduateAdjustmentBps:     -25,
		SchoolTierMultiplier:      1.0,

		DegreeAdjustmentsBps: map[string]float64{
			"STEM":     -25,
			"BUSINESS": 0,
			"OTHER":    25,
		},
		SchoolAdjustmentsBps: map[SchoolTier]float64{
			SchoolTier_1: 0,
			SchoolTier_2: 50,
			SchoolTier_3: 100,
		},
		YearInSchoolAdjustmentsBps: map[int]float64{
			1: 50,
			2: 25,
			3: 0,
			4: -25,
			5: -25,
		},

		GraduationRateThreshold: 0.70,
		EarningsThreshold:       50000,
	}
}

// AssumptionOverrides is one override layer. Pointer fields distinguish "not
// set" from zero; map entries merge key-wise over the lower layer.
type AssumptionOverrides struct {
	RecoveryRate   map[RiskTier]float64 `json:"recoveryRate,omitempty"`
	RiskPremiumBps map[RiskTier]float64 `json:"riskPremiumBps,omitempty"`

	ServicingCostBps     *float64 `json:"servicingCostBps,omitempty"`
	SetupFee             *float64 `json:"setupFee,omitempty"`
	PrepaymentMultiplier *float64 `json:"prepaymentMultiplier,omitempty"`
	PrepaySeasoningYears *float64 `json:"prepaySeasoningYears,omitempty"`

	BaseRiskFreeRate *float64 `json:"baseRiskFreeRate,omitempty"`

	FicoBorrowerAdjustmentBps *float64 `json:"ficoBorrowerAdjustmentBps,omitempty"`
	FicoCosignerAdjustmentBps *float64 `json:"ficoCosignerAdjustmentBps,omitempty"`
	GraduateAdjustmentBps     *float64 `json:"graduateAdjustmentBps,omitempty"`
	SchoolTierMultiplier      *float64 `json:"schoolTierMultiplier,omitempty"`

	DegreeAdjustmentsBps       map[string]float64     `json:"degreeAdjustmentsBps,omitempty"`
	SchoolAdjustmentsBps       map[SchoolTier]float64 `json:"schoolAdjustmentsBps,omitempty"`
	YearInSchoolAdjustmentsBps map[int]float64        `json:"yearInSchoolAdjustmentsBps,omitempty"`

	GraduationRateThreshold *float64 `json:"graduationRateThreshold,omitempty"`
	EarningsThreshold       *float64 `json:"earningsThreshold,omitempty"`
}

// Apply layers o on top of a and returns the merged profile. The receiver is
// not mutated; maps are copied before merging.
func (a Assumptions) Apply(o *AssumptionOverrides) Assumptions {
	out := a
	out.RecoveryRate = copyTierMap(a.RecoveryRate)
	out.RiskPremiumBps = copyTierMap(a.RiskPremiumBps)
	out.DegreeAdjustmentsBps = copyStringMap(a.DegreeAdjustmentsBps)
	out.SchoolAdjustmentsBps = copySchoolMap(a.SchoolAdjustmentsBps)
	out.YearInSchoolAdjustmentsBps = copyIntMap(a.YearInSchoolAdjustmentsBps)

	if o == nil {
		return out
	}

	for k, v := range o.RecoveryRate {
		out.RecoveryRate[k] = v
	}
	for k, v := range o.RiskPremiumBps {
		out.RiskPremiumBps[k] = v
	}
	for k, v := range o.DegreeAdjustmentsBps {
		out.DegreeAdjustmentsBps[k] = v
	}
	for k, v := range o.SchoolAdjustmentsBps {
		out.SchoolAdjustmentsBps[k] = v
	}
	for k, v := range o.YearInSchoolAdjustmentsBps {
		out.YearInSchoolAdjustmentsBps[k] = v
	}

	if o.ServicingCostBps != nil {
		out.ServicingCostBps = *o.ServicingCostBps
	}
	if o.SetupFee != nil {
		out.SetupFee = *o.SetupFee
	}
	if o.PrepaymentMultiplier != nil {
		out.PrepaymentMultiplier = *o.PrepaymentMultiplier
	}
	if o.PrepaySeasoningYears != nil {
		out.PrepaySeasoningYears = *o.PrepaySeasoningYears
	}
	if o.BaseRiskFreeRate != nil {
		out.BaseRiskFreeRate = *o.BaseRiskFreeRate
	}
	if o.FicoBorrowerAdjustmentBps != nil {
		out.FicoBorrowerAdjustmentBps = *o.FicoBorrowerAdjustmentBps
	}
	if o.FicoCosignerAdjustmentBps != nil {
		out.FicoCosignerAdjustmentBps = *o.FicoCosignerAdjustmentBps
	}
	if o.GraduateAdjustmentBps != nil {
		out.GraduateAdjustmentBps = *o.GraduateAdjustmentBps
	}
	if o.SchoolTierMultiplier != nil {
		out.SchoolTierMultiplier = *o.SchoolTierMultiplier
	}
	if o.GraduationRateThreshold != nil {
		out.GraduationRateThreshold = *o.GraduationRateThreshold
	}
	if o.EarningsThreshold != nil {
		out.EarningsThreshold = *o.EarningsThreshold
	}

	return out
}

func copyTierMap(in map[RiskTier]float64) map[RiskTier]float64 {
	out := make(map[RiskTier]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyStringMap(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copySchoolMap(in map[SchoolTier]float64) map[SchoolTier]float64 {
	out := make(map[SchoolTier]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyIntMap(in map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
