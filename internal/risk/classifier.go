package risk

import (
	"strconv"
	"strings"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
)

// fico letter bands, best to worst
type ficoBand string

const (
	band_A ficoBand = "A"
	band_B ficoBand = "B"
	band_C ficoBand = "C"
	band_D ficoBand = "D"
	band_E ficoBand = "E"
)

const (
	borrowerFicoWeight = 0.70
	cosignerFicoWeight = 0.30
)

// BlendedFico weights borrower at 70% and cosigner at 30%, but never below
// the borrower's own score: a strong cosigner can only help.
func BlendedFico(b domain.Borrower) float64 {
	if b.CosignerFico <= 0 {
		return b.BorrowerFico
	}
	blend := borrowerFicoWeight*b.BorrowerFico + cosignerFicoWeight*b.CosignerFico
	if b.BorrowerFico > blend {
		return b.BorrowerFico
	}
	return blend
}

func ficoToBand(fico float64) ficoBand {
	switch {
	case fico >= 760:
		return band_A
	case fico >= 720:
		return band_B
	case fico >= 680:
		return band_C
	case fico >= 640:
		return band_D
	default:
		return band_E
	}
}

// gradeLevelCodes maps letter grade-level codes to numeric years.
var gradeLevelCodes = map[string]int{
	"FR":        1,
	"FRESHMAN":  1,
	"SO":        2,
	"SOPHOMORE": 2,
	"JR":        3,
	"JUNIOR":    3,
	"SR":        4,
	"SENIOR":    4,
	"GR":        5,
	"GRAD":      5,
	"GRADUATE":  5,
}

// YearInSchool parses a numeric year or a letter grade-level code.
// Unrecognized input defaults to first year.
func YearInSchool(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 1
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 {
		if n > 5 {
			return 5
		}
		return n
	}
	if year, ok := gradeLevelCodes[strings.ToUpper(s)]; ok {
		return year
	}
	return 1
}

// DeriveRiskTier maps blended FICO and year-in-school to a risk tier.
//
// Base mapping: band A with 3+ years in school is LOW; bands A/B are MEDIUM;
// C/D are HIGH; E is VERY_HIGH. Two overrides apply after the base mapping:
// blended FICO of 780+ forces LOW regardless of year, and 720+ downgrades a
// HIGH result to MEDIUM.
func DeriveRiskTier(b domain.Borrower, _ domain.Assumptions) domain.RiskTier {
	fico := BlendedFico(b)
	band := ficoToBand(fico)
	year := YearInSchool(b.YearInSchool)

	var tier domain.RiskTier
	switch {
	case band == band_A && year >= 3:
		tier = domain.RiskTier_Low
	case band == band_A || band == band_B:
		tier = domain.RiskTier_Medium
	case band == band_C || band == band_D:
		tier = domain.RiskTier_High
	default:
		tier = domain.RiskTier_VeryHigh
	}

	if fico >= 780 {
		return domain.RiskTier_Low
	}
	if fico >= 720 && tier == domain.RiskTier_High {
		return domain.RiskTier_Medium
	}
	return tier
}

// SchoolTier classifies an institution from graduation rate and median
// earnings. Tier 1 requires both thresholds met; Tier 2 requires either at
// 80% of its threshold; everything else is Tier 3.
func SchoolTier(rec domain.SchoolRecord, a domain.Assumptions) domain.SchoolTier {
	gradOK := rec.GraduationRate >= a.GraduationRateThreshold
	earnOK := rec.MedianEarnings >= a.EarningsThreshold
	if gradOK && earnOK {
		return domain.SchoolTier_1
	}
	if rec.GraduationRate >= 0.8*a.GraduationRateThreshold ||
		rec.MedianEarnings >= 0.8*a.EarningsThreshold {
		return domain.SchoolTier_2
	}
	return domain.SchoolTier_3
}
